package alertsinua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/air-alert-monitor/internal/config"
	"github.com/couchcryptid/air-alert-monitor/internal/domain"
	"github.com/couchcryptid/air-alert-monitor/internal/observability"
)

const (
	activeAlertsPath = "/v1/alerts/active.json"
	iotStatusPath    = "/v1/iot/active_air_raid_alerts_by_oblast.json"

	// maxErrorBody caps the response excerpt kept for non-2xx statuses.
	maxErrorBody = 4 << 10
)

// Client fetches active alerts from the alerts.in.ua API.
type Client struct {
	decoder
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an alerts.in.ua client for the configured source.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		decoder: decoder{source: cfg.Source, logger: logger, metrics: metrics},
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// FetchRecords performs one request and decodes the body. Transport and HTTP
// failures are returned as *domain.FetchError; a malformed IoT payload is
// returned as *domain.DataAnomaly.
func (c *Client) FetchRecords(ctx context.Context) ([]domain.RawAlertRecord, error) {
	op, path := opFor(c.source), activeAlertsPath
	if c.source == config.SourceIoT {
		path = iotStatusPath
	}

	body, err := c.get(ctx, op, path)
	if err != nil {
		return nil, err
	}

	records, err := c.decode(body)
	if errors.Is(err, domain.ErrDecode) {
		return nil, &domain.FetchError{Op: op, Err: err}
	}
	return records, err
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	u := c.baseURL + path + "?" + url.Values{"token": {c.token}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("create request: %w", c.redact(err))}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIRequestDuration.WithLabelValues(string(c.source)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: c.redact(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.FetchError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       c.scrub(strings.TrimSpace(strings.ToValidUTF8(string(excerpt), ""))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("read body: %w", c.redact(err))}
	}
	return body, nil
}

// redact strips the query string from URLs carried by transport errors so
// the token never reaches logs or the panel.
func (c *Client) redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if i := strings.IndexByte(uerr.URL, '?'); i >= 0 {
			uerr.URL = uerr.URL[:i]
		}
	}
	return err
}

func (c *Client) scrub(s string) string {
	if c.token == "" {
		return s
	}
	return strings.ReplaceAll(s, c.token, "[REDACTED]")
}

func opFor(source config.Source) string {
	if source == config.SourceIoT {
		return "iot status"
	}
	return "active alerts"
}
