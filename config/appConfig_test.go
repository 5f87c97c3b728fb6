package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STONEPAY_API_BASE_URL", "https://api.stonepay.example")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.stonepay.example", cfg.Backend.BaseURL)
	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Addr)
	assert.Equal(t, "file", cfg.Persistence.Driver)
	assert.Equal(t, []int{5, 10, 20}, cfg.Table.ItemsPerPage)
	assert.Equal(t, 7, cfg.Dashboard.Days)
	assert.Equal(t, 5, cfg.Backend.Burst)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: https://file.example
  requests_per_second: 2
server:
  addr: ":8080"
persistence:
  driver: memory
table:
  items_per_page: [25, 50]
`)
	t.Setenv("STONEPAY_API_BASE_URL", "https://env.example")
	t.Setenv("POSTGRES_HOST", "db.internal")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.Backend.BaseURL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Persistence.Driver)
	assert.Equal(t, 2.0, cfg.Backend.RequestsPerSecond)
	assert.Equal(t, []int{25, 50}, cfg.Table.ItemsPerPage)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "5432", cfg.Postgres.Port)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("STONEPAY_API_BASE_URL", "")
	_, err := LoadConfig(writeConfig(t, "server:\n  addr: \":1\"\n"))
	assert.ErrorContains(t, err, "base_url")

	t.Setenv("STONEPAY_API_BASE_URL", "https://api.example")
	_, err = LoadConfig(writeConfig(t, "persistence:\n  driver: redis\n"))
	assert.ErrorContains(t, err, "redis")

	_, err = LoadConfig(writeConfig(t, "table:\n  items_per_page: [10, 0]\n"))
	assert.Error(t, err)
}

func TestConnectionStrings(t *testing.T) {
	pg := PostgresConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", pg.GetConnectionString())

	my := MySQLConfig{Host: "h", Port: "3306", User: "u", Password: "p", DBName: "d", Params: "parseTime=True"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?parseTime=True", my.GetConnectionString())
	assert.Equal(t, "mysql", my.DriverName())
}
