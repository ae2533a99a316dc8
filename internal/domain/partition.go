package domain

import (
	"fmt"
	"time"
)

// MissingStartPolicy decides how a non-excluded region without a start
// timestamp is displayed.
type MissingStartPolicy string

const (
	// PolicyNoDuration shows the region among timed entries without minutes.
	PolicyNoDuration MissingStartPolicy = "no_duration"
	// PolicyHide drops the region from the panel and only counts it.
	PolicyHide MissingStartPolicy = "hide"
	// PolicyExclude lists the region with the excluded entries.
	PolicyExclude MissingStartPolicy = "exclude"
)

// ParseMissingStartPolicy validates a policy name.
func ParseMissingStartPolicy(s string) (MissingStartPolicy, error) {
	switch p := MissingStartPolicy(s); p {
	case PolicyNoDuration, PolicyHide, PolicyExclude:
		return p, nil
	default:
		return "", fmt.Errorf("unknown missing start policy %q", s)
	}
}

// Partition splits reconciled statuses into timed and excluded entries.
// Hidden counts active regions left out under PolicyHide.
type Partition struct {
	Timed     []TimedEntry
	Excluded  []ExcludedEntry
	Hidden    int
	Anomalies []DataAnomaly
}

// Empty reports whether no region has an active alert.
func (p Partition) Empty() bool {
	return len(p.Timed) == 0 && len(p.Excluded) == 0 && p.Hidden == 0
}

// PartitionStatuses computes elapsed minutes at now for every region with a
// start time. Excluded regions never get a duration. A start in the future is
// clamped to zero minutes and recorded as an anomaly.
func PartitionStatuses(statuses []RegionStatus, now time.Time, policy MissingStartPolicy) Partition {
	var p Partition
	for _, s := range statuses {
		if IsExcluded(s.Region) {
			p.Excluded = append(p.Excluded, ExcludedEntry{Region: s.Region, Kind: s.Kind})
			continue
		}

		if !s.HasStart() {
			switch policy {
			case PolicyHide:
				p.Hidden++
			case PolicyExclude:
				p.Excluded = append(p.Excluded, ExcludedEntry{Region: s.Region, Kind: s.Kind})
			default:
				p.Timed = append(p.Timed, TimedEntry{Region: s.Region, Kind: s.Kind})
			}
			continue
		}

		minutes, anomaly := elapsedMinutes(s, now)
		if anomaly != nil {
			p.Anomalies = append(p.Anomalies, *anomaly)
		}
		p.Timed = append(p.Timed, TimedEntry{
			Region:      s.Region,
			Kind:        s.Kind,
			Minutes:     minutes,
			HasDuration: true,
		})
	}
	return p
}

// elapsedMinutes returns whole minutes between the status start and now.
func elapsedMinutes(s RegionStatus, now time.Time) (int, *DataAnomaly) {
	d := now.Sub(s.StartedAt)
	if d < 0 {
		return 0, &DataAnomaly{
			Kind:   AnomalyFutureStart,
			Region: s.Region,
			Detail: fmt.Sprintf("started_at %s is %s ahead of now", s.StartedAt.UTC().Format(time.RFC3339), -d),
		}
	}
	return int(d / time.Minute), nil
}
