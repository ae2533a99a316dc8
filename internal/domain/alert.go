package domain

import "time"

// AlertKind is the severity of an active alert in a region.
type AlertKind string

const (
	KindFull    AlertKind = "full"
	KindPartial AlertKind = "partial"
)

// Label returns the panel label for the kind.
func (k AlertKind) Label() string {
	if k == KindFull {
		return "🚨 ТРИВОГА"
	}
	return "⚠ ЧАСТКОВА"
}

// RawAlertRecord is one alert event as received from the API.
type RawAlertRecord struct {
	Region    string
	Kind      AlertKind
	StartedAt time.Time // zero when the source carries no start time
}

// HasStart reports whether the record carries a start timestamp.
func (r RawAlertRecord) HasStart() bool {
	return !r.StartedAt.IsZero()
}

// RegionStatus is the reconciled state of a single region for one refresh cycle.
type RegionStatus struct {
	Region    string
	Kind      AlertKind
	StartedAt time.Time
}

// HasStart reports whether the winning record carried a start timestamp.
func (s RegionStatus) HasStart() bool {
	return !s.StartedAt.IsZero()
}

// TimedEntry is a region displayed with its alert duration.
type TimedEntry struct {
	Region      string
	Kind        AlertKind
	Minutes     int
	HasDuration bool // false only for regions without a start under PolicyNoDuration
}

// ExcludedEntry is a region displayed without a duration.
type ExcludedEntry struct {
	Region string
	Kind   AlertKind
}

// ColorTag is a renderer-neutral color hint for a display line.
type ColorTag string

const (
	ColorFull    ColorTag = "full"
	ColorPartial ColorTag = "partial"
	ColorClear   ColorTag = "clear"
	ColorError   ColorTag = "error"
	ColorMuted   ColorTag = "muted"
)

// ColorFor maps an alert kind to its line color.
func ColorFor(k AlertKind) ColorTag {
	if k == KindFull {
		return ColorFull
	}
	return ColorPartial
}

// DisplayLine is a single line of panel text plus its color.
type DisplayLine struct {
	Text  string
	Color ColorTag
}

// Panel is the finished content of one refresh cycle. It is immutable once
// built and is handed to the display as-is.
type Panel struct {
	Title     string
	Border    ColorTag
	Lines     []DisplayLine
	Footer    DisplayLine
	UpdatedAt time.Time
}
