package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FetchError reports a failed request to the alerts API: a network error,
// timeout, non-2xx status, or a body that could not be decoded.
type FetchError struct {
	Op         string // endpoint that failed, e.g. "active alerts"
	StatusCode int    // 0 when no response was received
	Body       string // response excerpt for non-2xx statuses
	Err        error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fetch %s", e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
		if e.Body != "" {
			fmt.Fprintf(&b, ": %s", e.Body)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrDecode marks a response body that could not be decoded.
var ErrDecode = errors.New("decode response")

// Reason classifies the failure for metrics: "status", "timeout", "decode" or "network".
func (e *FetchError) Reason() string {
	var timeout interface{ Timeout() bool }
	switch {
	case e.StatusCode != 0:
		return "status"
	case errors.Is(e.Err, context.DeadlineExceeded),
		errors.As(e.Err, &timeout) && timeout.Timeout():
		return "timeout"
	case errors.Is(e.Err, ErrDecode):
		return "decode"
	default:
		return "network"
	}
}

// Retryable reports whether a second attempt may succeed: transport failures,
// timeouts, rate limiting and server errors. Client errors and undecodable
// bodies are final.
func (e *FetchError) Retryable() bool {
	switch e.Reason() {
	case "status":
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
	case "decode":
		return false
	default:
		return true
	}
}

// AnomalyKind names a class of unexpected but recoverable data.
type AnomalyKind string

const (
	AnomalyFutureStart      AnomalyKind = "future_start"
	AnomalyUnparseableStart AnomalyKind = "unparseable_start"
	AnomalyUnknownCode      AnomalyKind = "unknown_code"
	AnomalyPayloadLength    AnomalyKind = "payload_length"
)

// DataAnomaly describes data that was normalized instead of trusted. Most
// anomalies are clamped and only logged; a payload-length mismatch is returned
// as an error and shown on the panel.
type DataAnomaly struct {
	Kind   AnomalyKind
	Region string
	Detail string
}

func (a *DataAnomaly) Error() string {
	if a.Region == "" {
		return fmt.Sprintf("data anomaly (%s): %s", a.Kind, a.Detail)
	}
	return fmt.Sprintf("data anomaly (%s) in %s: %s", a.Kind, a.Region, a.Detail)
}
