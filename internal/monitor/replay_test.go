package monitor_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/air-alert-monitor/internal/adapter/alertsinua"
	"github.com/couchcryptid/air-alert-monitor/internal/config"
	"github.com/couchcryptid/air-alert-monitor/internal/domain"
	"github.com/couchcryptid/air-alert-monitor/internal/monitor"
	"github.com/couchcryptid/air-alert-monitor/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_ReplaysSavedPayloads(t *testing.T) {
	cases := []struct {
		name   string
		file   string
		source config.Source
		policy domain.MissingStartPolicy
		want   string
	}{
		{
			name:   "active alerts",
			file:   "active_alerts.json",
			source: config.SourceAlerts,
			policy: domain.PolicyNoDuration,
			want: "Повітряні тривоги\n" +
				"Херсонська область — ⚠ ЧАСТКОВА 4 хв\n" +
				"Харківська область — 🚨 ТРИВОГА 47 хв\n" +
				"Луганська область — 🚨 ТРИВОГА\n" +
				"Автономна Республіка Крим — 🚨 ТРИВОГА\n" +
				"\n" +
				"Оновлено 08:00:00\n",
		},
		{
			name:   "iot status",
			file:   "iot_status.json",
			source: config.SourceIoT,
			policy: domain.PolicyNoDuration,
			want: "Повітряні тривоги\n" +
				"Сумська область — ⚠ ЧАСТКОВА\n" +
				"Харківська область — 🚨 ТРИВОГА\n" +
				"Автономна Республіка Крим — 🚨 ТРИВОГА\n" +
				"Луганська область — 🚨 ТРИВОГА\n" +
				"\n" +
				"Оновлено 08:00:00\n",
		},
		{
			name:   "iot status with hidden starts",
			file:   "iot_status.json",
			source: config.SourceIoT,
			policy: domain.PolicyHide,
			want: "Повітряні тривоги\n" +
				"Автономна Республіка Крим — 🚨 ТРИВОГА\n" +
				"Луганська область — 🚨 ТРИВОГА\n" +
				"Регіонів без часу початку: 2\n" +
				"\n" +
				"Оновлено 08:00:00\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			metrics := observability.NewMetricsForTesting()
			cfg := testConfig()
			cfg.MissingStartPolicy = tc.policy

			src := alertsinua.NewFileSource(filepath.Join("testdata", tc.file), tc.source, logger, metrics)
			m := monitor.New(src, cfg, clockwork.NewFakeClockAt(testNow), logger, metrics)

			panel, err := m.Refresh(context.Background())
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, panel.PlainText()); diff != "" {
				t.Errorf("panel mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMonitor_ReplayMalformedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"alerts": [`), 0o600))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	src := alertsinua.NewFileSource(path, config.SourceAlerts, logger, metrics)
	m := monitor.New(src, testConfig(), clockwork.NewFakeClockAt(testNow), logger, metrics)

	panel, err := m.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrDecode)

	assert.Equal(t, domain.ColorError, panel.Border)
	assert.InDelta(t, 1, metricValue(t, metrics.RefreshesTotal.WithLabelValues("fetch_error")), 0)
	assert.InDelta(t, 1, metricValue(t, metrics.FetchErrors.WithLabelValues("decode")), 0)
}
