package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/air-alert-monitor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "tok-123"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Token)
	assert.Equal(t, SourceAlerts, cfg.Source)
	assert.Equal(t, "https://api.alerts.in.ua", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0, cfg.FetchRetries)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, domain.PolicyNoDuration, cfg.MissingStartPolicy)
	assert.Equal(t, "Europe/Kyiv", cfg.Location.String())
	assert.Equal(t, "https://alerts.in.ua/", cfg.MapURL)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("ALERTS_TOKEN", testToken)
	t.Setenv("ALERTS_SOURCE", "iot")
	t.Setenv("ALERTS_BASE_URL", "http://localhost:8081")
	t.Setenv("FETCH_TIMEOUT", "2s")
	t.Setenv("FETCH_RETRIES", "2")
	t.Setenv("REFRESH_INTERVAL", "1m")
	t.Setenv("MISSING_START_POLICY", "exclude")
	t.Setenv("DISPLAY_TIMEZONE", "UTC")
	t.Setenv("MAP_URL", "https://map.example.com/")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_FILE", "/tmp/air-alerts.log")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testToken, cfg.Token)
	assert.Equal(t, SourceIoT, cfg.Source)
	assert.Equal(t, "http://localhost:8081", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 2, cfg.FetchRetries)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, domain.PolicyExclude, cfg.MissingStartPolicy)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "https://map.example.com/", cfg.MapURL)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "/tmp/air-alerts.log", cfg.LogFile)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"SHUTDOWN_TIMEOUT", "-1s"},
		{"FETCH_TIMEOUT", "bad"},
		{"FETCH_TIMEOUT", "0s"},
		{"FETCH_RETRIES", "-1"},
		{"FETCH_RETRIES", "6"},
		{"FETCH_RETRIES", "many"},
		{"REFRESH_INTERVAL", "500ms"},
		{"REFRESH_INTERVAL", "soon"},
		{"ALERTS_SOURCE", "telegram"},
		{"MISSING_START_POLICY", "guess"},
		{"DISPLAY_TIMEZONE", "Mars/Olympus_Mons"},
		{"ALERTS_BASE_URL", "api.alerts.in.ua"},
		{"MAP_URL", "ftp://alerts.in.ua/"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_MinimumRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "1s")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.RefreshInterval)
}
