package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // DISPLAY_TIMEZONE must resolve on hosts without a zoneinfo database

	"github.com/couchcryptid/air-alert-monitor/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Source selects which alerts.in.ua endpoint is polled.
type Source string

const (
	SourceAlerts Source = "alerts"
	SourceIoT    Source = "iot"
)

const (
	minRefreshInterval = time.Second
	maxFetchRetries    = 5
)

// Config holds all monitor settings, populated from environment variables.
type Config struct {
	Token        string
	Source       Source
	BaseURL      string
	FetchTimeout time.Duration
	FetchRetries int

	RefreshInterval    time.Duration
	MissingStartPolicy domain.MissingStartPolicy
	Location           *time.Location
	MapURL             string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	LogFile         string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parsePositiveDuration("REFRESH_INTERVAL", "30s")
	if err != nil {
		return nil, err
	}
	if refreshInterval < minRefreshInterval {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: must be at least %s", minRefreshInterval)
	}

	retries, err := parseFetchRetries()
	if err != nil {
		return nil, err
	}

	source := Source(sharedcfg.EnvOrDefault("ALERTS_SOURCE", string(SourceAlerts)))
	if source != SourceAlerts && source != SourceIoT {
		return nil, fmt.Errorf("invalid ALERTS_SOURCE %q: must be alerts or iot", source)
	}

	policy, err := domain.ParseMissingStartPolicy(sharedcfg.EnvOrDefault("MISSING_START_POLICY", string(domain.PolicyNoDuration)))
	if err != nil {
		return nil, fmt.Errorf("invalid MISSING_START_POLICY: %w", err)
	}

	tz := sharedcfg.EnvOrDefault("DISPLAY_TIMEZONE", "Europe/Kyiv")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tz, err)
	}

	cfg := &Config{
		Token:        os.Getenv("ALERTS_TOKEN"),
		Source:       source,
		BaseURL:      sharedcfg.EnvOrDefault("ALERTS_BASE_URL", "https://api.alerts.in.ua"),
		FetchTimeout: fetchTimeout,
		FetchRetries: retries,

		RefreshInterval:    refreshInterval,
		MissingStartPolicy: policy,
		Location:           loc,
		MapURL:             sharedcfg.EnvOrDefault("MAP_URL", "https://alerts.in.ua/"),

		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		LogFile:         os.Getenv("LOG_FILE"),
		ShutdownTimeout: shutdownTimeout,
	}

	if err := validateURL("ALERTS_BASE_URL", cfg.BaseURL); err != nil {
		return nil, err
	}
	if err := validateURL("MAP_URL", cfg.MapURL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseFetchRetries() (int, error) {
	s := os.Getenv("FETCH_RETRIES")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > maxFetchRetries {
		return 0, fmt.Errorf("invalid FETCH_RETRIES: must be 0-%d", maxFetchRetries)
	}
	return n, nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("invalid " + key + ": must be an absolute http(s) URL")
	}
	return nil
}
