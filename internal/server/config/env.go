package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overrides config with environment variables that are set and
// non-empty. Values that fail to parse are ignored.
//
//	PORT               HTTP port (bound on all interfaces)
//	GRPC_ADDR          gRPC health address
//	METRICS_ADDR       worker metrics address
//	DB_DSN             PostgreSQL DSN
//	REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
//	FOLDER_PATH        local storage root
//	STORAGE_BACKEND    "local" or "s3"
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//	SESSION_TTL        session lifetime, e.g. "24h"
//	QUEUE_NAME         thumbnail queue key
//	WORKER_CONCURRENCY number of thumbnail consumers
//	LOG_BACKEND        "slog" or "zap"
//	LOG_FILE           rotated log file path
func parseEnv(config *Config) {
	if v, ok := lookup("PORT"); ok {
		if _, err := strconv.Atoi(v); err == nil {
			config.EndpointAddrHTTP = ":" + v
		}
	}
	envString(&config.EndpointAddrGRPC, "GRPC_ADDR")
	envString(&config.EndpointAddrMetrics, "METRICS_ADDR")
	envString(&config.DatabaseDSN, "DB_DSN")
	envString(&config.RedisAddr, "REDIS_ADDR")
	envString(&config.RedisPassword, "REDIS_PASSWORD")
	envInt(&config.RedisDB, "REDIS_DB")
	envString(&config.FolderPath, "FOLDER_PATH")
	envString(&config.StorageBackend, "STORAGE_BACKEND")
	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	if v, ok := lookup("SESSION_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionValidityDuration = d
		}
	}
	envString(&config.QueueName, "QUEUE_NAME")
	envInt(&config.WorkerConcurrency, "WORKER_CONCURRENCY")
	envString(&config.LogBackend, "LOG_BACKEND")
	envString(&config.LogFile, "LOG_FILE")
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func envString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v, ok := lookup(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
