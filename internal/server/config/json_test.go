package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := writeTempJSON(t, dir, "config.json", map[string]any{
		"endpoint_addr_http":        ":8000",
		"database_dsn":              "postgres://files",
		"redis_addr":                "cache:6379",
		"redis_db":                  3,
		"folder_path":               "/var/files",
		"storage_backend":           "s3",
		"s3_bucket":                 "thumbs",
		"session_validity_duration": "12h",
		"worker_concurrency":        2,
		"log_backend":               "zap",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://files", cfg.DatabaseDSN)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, "/var/files", cfg.FolderPath)
		assert.Equal(t, "s3", cfg.StorageBackend)
		assert.Equal(t, "thumbs", cfg.S3Bucket)
		assert.Equal(t, 12*time.Hour, cfg.SessionValidityDuration)
		assert.Equal(t, 2, cfg.WorkerConcurrency)
		assert.Equal(t, "zap", cfg.LogBackend)
	})

	t.Run("keys absent from the file keep their values", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, "fileQueue", cfg.QueueName)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{FolderPath: "/keep"}
		parseJson(cfg)

		assert.Equal(t, "/keep", cfg.FolderPath)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "absent.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
