package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("PORT", "5001")
	t.Setenv("GRPC_ADDR", ":6000")
	t.Setenv("DB_DSN", "postgres://x")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("FOLDER_PATH", "/data")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("S3_BUCKET", "bucket")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("LOG_BACKEND", "zap")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":5001", c.EndpointAddrHTTP)
	assert.Equal(t, ":6000", c.EndpointAddrGRPC)
	assert.Equal(t, "postgres://x", c.DatabaseDSN)
	assert.Equal(t, "redis:6379", c.RedisAddr)
	assert.Equal(t, 2, c.RedisDB)
	assert.Equal(t, "/data", c.FolderPath)
	assert.Equal(t, StorageS3, c.StorageBackend)
	assert.Equal(t, "bucket", c.S3Bucket)
	assert.Equal(t, 2*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, "zap", c.LogBackend)
}

func TestParseEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("FOLDER_PATH", "")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	assert.Equal(t, 0, c.RedisDB)
	assert.Equal(t, 24*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, "/tmp/files_manager", c.FolderPath)
}
