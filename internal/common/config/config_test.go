package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCfg(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apiserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeCfg(t, `
port: 5000
database:
  type: sqlite
  dbname: ./data/sqlite.db
  max_retries: 3
  retry_interval: 2s
jwt:
  secret_key: this-is-a-very-long-secret-key-for-testing
  duration: 24h
`)

	cfg, cfgPath, err := LoadConfig[APIServerConfig](path)
	require.NoError(t, err)
	assert.Equal(t, path, cfgPath)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 3, cfg.Database.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Database.RetryInterval.Std())
	assert.Equal(t, 24*time.Hour, cfg.JWT.Duration.Std())
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	t.Setenv("AM_DB_TYPE", "postgres")
	path := writeCfg(t, `
database:
  type: ${AM_DB_TYPE:memory}
  host: ${AM_DB_HOST:localhost}
`)

	cfg, _, err := LoadConfig[APIServerConfig](path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	// Unset variables fall back to the default after the colon.
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig[APIServerConfig](filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	pg := DatabaseConfig{
		Type: "postgres", Host: "db", Port: 5432,
		User: "airmaint", Password: "secret", DBName: "airmaint", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://airmaint:secret@db:5432/airmaint?sslmode=disable", pg.GetDSN())

	my := DatabaseConfig{
		Type: "mysql", Host: "db", Port: 3306,
		User: "root", Password: "secret", DBName: "airmaint",
	}
	assert.Equal(t, "root:secret@tcp(db:3306)/airmaint?charset=utf8mb4&parseTime=True&loc=Local", my.GetDSN())

	lite := DatabaseConfig{Type: "sqlite", DBName: filepath.Join(t.TempDir(), "data", "sqlite.db")}
	assert.Equal(t, lite.DBName, lite.GetDSN())

	mem := DatabaseConfig{Type: "memory"}
	assert.Empty(t, mem.GetDSN())
}
