package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
	"github.com/dmitrijs2005/filesmanager/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations are
// timex.Duration so both "24h" and integer nanoseconds are accepted.
// Only keys present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        *string         `json:"endpoint_addr_grpc"`
	EndpointAddrMetrics     *string         `json:"endpoint_addr_metrics"`
	DatabaseDSN             *string         `json:"database_dsn"`
	RedisAddr               *string         `json:"redis_addr"`
	RedisPassword           *string         `json:"redis_password"`
	RedisDB                 *int            `json:"redis_db"`
	FolderPath              *string         `json:"folder_path"`
	StorageBackend          *string         `json:"storage_backend"`
	S3RootUser              *string         `json:"s3_root_user"`
	S3RootPassword          *string         `json:"s3_root_password"`
	S3Bucket                *string         `json:"s3_bucket"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	QueueName               *string         `json:"queue_name"`
	WorkerConcurrency       *int            `json:"worker_concurrency"`
	LogBackend              *string         `json:"log_backend"`
	LogFile                 *string         `json:"log_file"`
}

// parseJson loads the file named by -c/-config into config. Without the
// flag nothing is loaded. An unreadable file or invalid JSON panics, since
// the process cannot start with a configuration it was told to use.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrMetrics, c.EndpointAddrMetrics)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setInt(&config.RedisDB, c.RedisDB)
	setString(&config.FolderPath, c.FolderPath)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	setString(&config.QueueName, c.QueueName)
	setInt(&config.WorkerConcurrency, c.WorkerConcurrency)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogFile, c.LogFile)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
