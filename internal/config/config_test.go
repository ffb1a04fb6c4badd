package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
http-port: "8081"
history:
  backend: redis
  key: alice
redis:
  host: cache
  port: "6380"
`)

		config, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, "8081", config.HTTPPort)
		assert.Equal(t, HistoryBackendRedis, config.History.Backend)
		assert.Equal(t, "alice", config.History.Key)
		assert.Equal(t, "cache:6380", config.Redis.GetRedisAddr())
	})

	t.Run("Missing values fall back to defaults", func(t *testing.T) {
		config, err := Load(writeConfig(t, "log-level: warn\n"))

		require.NoError(t, err)
		assert.Equal(t, HistoryBackendFile, config.History.Backend)
		assert.Equal(t, "default", config.History.Key)
		assert.Equal(t, "./data/history.json", config.History.FilePath)
		assert.Equal(t, "localhost:6379", config.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		t.Setenv("HISTORY_BACKEND", HistoryBackendSQLite)
		t.Setenv("SQLITE_STORAGE_PATH", "/tmp/solitaire.db")

		config, err := Load(writeConfig(t, "history:\n  backend: file\n"))

		require.NoError(t, err)
		assert.Equal(t, HistoryBackendSQLite, config.History.Backend)
		assert.Equal(t, "/tmp/solitaire.db", config.SQLiteStoragePath)
	})

	t.Run("Environment only", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "7000")

		config, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "7000", config.HTTPPort)
	})

	t.Run("Unknown history backend", func(t *testing.T) {
		_, err := Load(writeConfig(t, "history:\n  backend: postgres\n"))

		require.ErrorIs(t, err, ErrUnknownHistoryBackend)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})
}
