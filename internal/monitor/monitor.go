package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/air-alert-monitor/internal/config"
	"github.com/couchcryptid/air-alert-monitor/internal/domain"
	"github.com/couchcryptid/air-alert-monitor/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/jonboulle/clockwork"
)

// ErrRefreshInFlight is returned by Refresh when another refresh has not finished yet.
var ErrRefreshInFlight = errors.New("refresh already in flight")

const (
	initialRetryBackoff = 500 * time.Millisecond
	maxRetryBackoff     = 5 * time.Second
)

// Fetcher returns the raw alert records for one refresh cycle.
type Fetcher interface {
	FetchRecords(ctx context.Context) ([]domain.RawAlertRecord, error)
}

// Display receives each finished panel.
type Display interface {
	Show(panel domain.Panel)
}

// Monitor runs the fetch-reconcile-format cycle on a fixed interval.
type Monitor struct {
	fetcher Fetcher
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	interval     time.Duration
	policy       domain.MissingStartPolicy
	loc          *time.Location
	retries      int
	retryBackoff time.Duration

	inFlight atomic.Bool
	ready    atomic.Bool
	latest   atomic.Pointer[domain.Panel]
	trigger  chan struct{}
}

// New creates a Monitor. The clock drives both the refresh ticker and the
// "now" used for elapsed minutes.
func New(f Fetcher, cfg *config.Config, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Monitor {
	return &Monitor{
		fetcher:      f,
		clock:        clock,
		logger:       logger,
		metrics:      metrics,
		interval:     cfg.RefreshInterval,
		policy:       cfg.MissingStartPolicy,
		loc:          cfg.Location,
		retries:      cfg.FetchRetries,
		retryBackoff: initialRetryBackoff,
		trigger:      make(chan struct{}, 1),
	}
}

// CheckReadiness returns nil once at least one refresh has produced an alert
// panel, or an error describing why the monitor is not yet ready.
func (m *Monitor) CheckReadiness(_ context.Context) error {
	if !m.ready.Load() {
		return errors.New("monitor has not completed a successful refresh yet")
	}
	return nil
}

// Latest returns the most recent panel, if any refresh has finished.
func (m *Monitor) Latest() (domain.Panel, bool) {
	p := m.latest.Load()
	if p == nil {
		return domain.Panel{}, false
	}
	return *p, true
}

// Trigger requests an immediate refresh from Run. Requests made while one is
// already pending are coalesced.
func (m *Monitor) Trigger() {
	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

// Run refreshes immediately, then on every tick or trigger, handing each
// panel to display. It returns when the context is cancelled.
func (m *Monitor) Run(ctx context.Context, display Display) error {
	m.logger.Info("monitor started", "interval", m.interval, "missing_start_policy", m.policy)
	m.metrics.MonitorRunning.Set(1)
	defer m.metrics.MonitorRunning.Set(0)

	ticker := m.clock.NewTicker(m.interval)
	defer ticker.Stop()

	m.cycle(ctx, display)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			m.cycle(ctx, display)
		case <-m.trigger:
			m.logger.Debug("manual refresh requested")
			m.cycle(ctx, display)
		}
	}
}

func (m *Monitor) cycle(ctx context.Context, display Display) {
	panel, err := m.Refresh(ctx)
	if errors.Is(err, ErrRefreshInFlight) || ctx.Err() != nil {
		return
	}
	display.Show(panel)
}

// Refresh runs one cycle and returns the resulting panel. A failed fetch still
// yields a panel (the error panel) alongside the error; only
// ErrRefreshInFlight comes back without one.
func (m *Monitor) Refresh(ctx context.Context) (domain.Panel, error) {
	if !m.inFlight.CompareAndSwap(false, true) {
		m.metrics.RefreshesSkipped.Inc()
		m.logger.Debug("refresh skipped, previous still running")
		return domain.Panel{}, ErrRefreshInFlight
	}
	defer m.inFlight.Store(false)

	start := m.clock.Now()
	records, err := m.fetch(ctx)
	now := m.clock.Now()

	var panel domain.Panel
	if err != nil {
		m.recordFailure(err)
		panel = domain.ErrorPanel(err, now, m.loc)
	} else {
		p := domain.PartitionStatuses(domain.Reconcile(records), now, m.policy)
		m.recordSuccess(p, now)
		panel = domain.Format(p, now, m.loc)
	}

	m.metrics.RefreshDuration.Observe(m.clock.Since(start).Seconds())
	m.latest.Store(&panel)
	return panel, err
}

// fetch calls the fetcher, retrying transient failures with exponential backoff.
func (m *Monitor) fetch(ctx context.Context) ([]domain.RawAlertRecord, error) {
	backoff := m.retryBackoff
	for attempt := 1; ; attempt++ {
		records, err := m.fetcher.FetchRecords(ctx)
		if err == nil || attempt > m.retries || !retryable(err) {
			return records, err
		}

		m.logger.Warn("fetch failed, retrying", "error", err, "attempt", attempt, "backoff", backoff)
		if !retry.SleepWithContext(ctx, backoff) {
			return nil, err
		}
		backoff = retry.NextBackoff(backoff, maxRetryBackoff)
	}
}

func (m *Monitor) recordFailure(err error) {
	outcome := "error"
	var fetchErr *domain.FetchError
	var anomaly *domain.DataAnomaly
	switch {
	case errors.As(err, &fetchErr):
		outcome = "fetch_error"
		m.metrics.FetchErrors.WithLabelValues(fetchErr.Reason()).Inc()
	case errors.As(err, &anomaly):
		outcome = "anomaly"
	}

	m.metrics.RefreshesTotal.WithLabelValues(outcome).Inc()
	m.logger.Warn("refresh failed", "error", err, "outcome", outcome)
}

func (m *Monitor) recordSuccess(p domain.Partition, now time.Time) {
	for _, a := range p.Anomalies {
		m.metrics.DataAnomalies.WithLabelValues(string(a.Kind)).Inc()
		m.logger.Warn("data anomaly", "kind", a.Kind, "region", a.Region, "detail", a.Detail)
	}

	var full, partial int
	for _, e := range p.Timed {
		if e.Kind == domain.KindFull {
			full++
		} else {
			partial++
		}
	}
	m.metrics.ActiveRegions.WithLabelValues(string(domain.KindFull)).Set(float64(full))
	m.metrics.ActiveRegions.WithLabelValues(string(domain.KindPartial)).Set(float64(partial))
	m.metrics.ActiveRegions.WithLabelValues("excluded").Set(float64(len(p.Excluded)))
	m.metrics.ActiveRegions.WithLabelValues("hidden").Set(float64(p.Hidden))

	m.metrics.RefreshesTotal.WithLabelValues("success").Inc()
	m.metrics.LastSuccessTimestamp.Set(float64(now.Unix()))
	m.ready.Store(true)

	m.logger.Debug("refresh complete", "timed", len(p.Timed), "excluded", len(p.Excluded), "hidden", p.Hidden)
}

func retryable(err error) bool {
	var fetchErr *domain.FetchError
	return errors.As(err, &fetchErr) && fetchErr.Retryable()
}
