package domain

// Reconcile merges raw alert records into one status per region.
//
// Records are visited in payload order. The first record for a region is kept
// as-is; after that a full alert replaces a partial one (kind and start), and a
// region that is already full ignores everything else. Records without a
// region are dropped. The result lists regions in first-seen order.
func Reconcile(records []RawAlertRecord) []RegionStatus {
	out := make([]RegionStatus, 0, len(records))
	index := make(map[string]int, len(records))

	for _, rec := range records {
		region := NormalizeRegion(rec.Region)
		if region == "" {
			continue
		}

		i, seen := index[region]
		if !seen {
			index[region] = len(out)
			out = append(out, RegionStatus{Region: region, Kind: rec.Kind, StartedAt: rec.StartedAt})
			continue
		}

		if out[i].Kind == KindFull {
			continue
		}
		if rec.Kind == KindFull {
			out[i].Kind = KindFull
			out[i].StartedAt = rec.StartedAt
		}
	}
	return out
}
