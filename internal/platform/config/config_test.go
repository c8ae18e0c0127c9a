package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, "roster", cfg.Store.MongoDatabase)
	assert.Equal(t, "UTC", cfg.Attendance.Location.String())
	assert.True(t, cfg.Attendance.CascadeOnDelete)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, "http://localhost:8000", cfg.Dashboard.APIURL)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(envOf(map[string]string{
		"ROSTER_ADDR":               ":9090",
		"ROSTER_STORE":              "Postgres",
		"ROSTER_DATABASE_URL":       "postgres://roster@localhost/roster?sslmode=disable",
		"ROSTER_TIMEZONE":           "Asia/Kolkata",
		"ROSTER_CASCADE_ATTENDANCE": "false",
		"ROSTER_LOG_LEVEL":          "debug",
		"ROSTER_API_URL":            "http://api.internal:8000/",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "Asia/Kolkata", cfg.Attendance.Location.String())
	assert.False(t, cfg.Attendance.CascadeOnDelete)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "http://api.internal:8000", cfg.Dashboard.APIURL)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":        {"ROSTER_STORE": "dynamo"},
		"postgres without dsn":  {"ROSTER_STORE": "postgres"},
		"unknown timezone":      {"ROSTER_TIMEZONE": "Mars/Olympus"},
		"unparseable log level": {"ROSTER_LOG_LEVEL": "loud"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(envOf(env))
			assert.Error(t, err)
		})
	}
}
