package alertsinua

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/air-alert-monitor/internal/config"
	"github.com/couchcryptid/air-alert-monitor/internal/domain"
	"github.com/couchcryptid/air-alert-monitor/internal/observability"
)

// locationTypeOblast marks an alert that covers a whole oblast.
const locationTypeOblast = "oblast"

// decoder turns a response body of either API variant into raw records.
// Recoverable oddities are logged and counted; only structural problems are
// returned as errors.
type decoder struct {
	source  config.Source
	logger  *slog.Logger
	metrics *observability.Metrics
}

func (d decoder) decode(body []byte) ([]domain.RawAlertRecord, error) {
	if d.source == config.SourceIoT {
		return d.decodeIoT(body)
	}
	return d.decodeActive(body)
}

func (d decoder) decodeActive(body []byte) ([]domain.RawAlertRecord, error) {
	var resp activeAlertsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	records := make([]domain.RawAlertRecord, 0, len(resp.Alerts))
	for _, a := range resp.Alerts {
		region := a.LocationOblast
		if region == "" {
			region = a.LocationTitle
		}

		kind := domain.KindPartial
		if a.LocationType == locationTypeOblast {
			kind = domain.KindFull
		}

		records = append(records, domain.RawAlertRecord{
			Region:    region,
			Kind:      kind,
			StartedAt: d.parseStart(region, a.StartedAt),
		})
	}
	return records, nil
}

// parseStart returns the zero time when the timestamp is missing or invalid.
func (d decoder) parseStart(region, s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		d.anomaly(domain.DataAnomaly{
			Kind:   domain.AnomalyUnparseableStart,
			Region: region,
			Detail: fmt.Sprintf("started_at %q: %v", s, err),
		})
		return time.Time{}
	}
	return t.UTC()
}

// decodeIoT maps the per-oblast status string onto the fixed region order.
// The API returns a JSON string; a bare text body is accepted as well.
func (d decoder) decodeIoT(body []byte) ([]domain.RawAlertRecord, error) {
	body = bytes.TrimSpace(body)
	status := string(body)
	if len(body) > 0 && body[0] == '"' {
		if err := json.Unmarshal(body, &status); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
		}
	}

	codes := []rune(status)
	if len(codes) != len(domain.IoTRegions) {
		a := domain.DataAnomaly{
			Kind:   domain.AnomalyPayloadLength,
			Detail: fmt.Sprintf("got %d status codes, want %d", len(codes), len(domain.IoTRegions)),
		}
		d.anomaly(a)
		return nil, &a
	}

	var records []domain.RawAlertRecord
	for i, code := range codes {
		region := domain.IoTRegions[i]
		switch code {
		case 'A':
			records = append(records, domain.RawAlertRecord{Region: region, Kind: domain.KindFull})
		case 'P':
			records = append(records, domain.RawAlertRecord{Region: region, Kind: domain.KindPartial})
		case 'N':
		default:
			d.anomaly(domain.DataAnomaly{
				Kind:   domain.AnomalyUnknownCode,
				Region: region,
				Detail: fmt.Sprintf("status code %q treated as no alert", code),
			})
		}
	}
	return records, nil
}

func (d decoder) anomaly(a domain.DataAnomaly) {
	d.metrics.DataAnomalies.WithLabelValues(string(a.Kind)).Inc()
	d.logger.Warn("data anomaly", "kind", a.Kind, "region", a.Region, "detail", a.Detail)
}

// alerts.in.ua API response types.

type activeAlertsResponse struct {
	Alerts []alert `json:"alerts"`
}

type alert struct {
	LocationTitle  string `json:"location_title"`
	LocationType   string `json:"location_type"`
	LocationOblast string `json:"location_oblast"`
	StartedAt      string `json:"started_at"`
}
