// Package domain models air-raid alert state published by alerts.in.ua.
//
// # Data Source
//
// Alerts come from the public alerts.in.ua API. Two read-only endpoints are
// supported, selected by ALERTS_SOURCE:
//
//	alerts: /v1/alerts/active.json              one JSON object per alert
//	iot:    /v1/iot/active_air_raid_alerts_by_oblast.json
//	                                            one status character per oblast
//
// Both take the access token as the "token" query parameter.
//
// # API Conventions
//
// Active alerts:
//
//	{"alerts": [{"location_title": "Бериславський район",
//	             "location_type": "raion",
//	             "location_oblast": "Херсонська область",
//	             "started_at": "2024-05-01T08:15:31.000Z", ...}]}
//
//	The oblast is taken from location_oblast, falling back to location_title.
//	An alert whose location_type is "oblast" covers the whole region and is a
//	full alert; any smaller unit (raion, hromada, city) makes it partial.
//	started_at is RFC 3339 in UTC.
//
// IoT status string:
//
//	"ANNNNNNNNNNNANNNNNNNPNNNNNN"
//
//	Each character is aligned positionally with [IoTRegions]:
//	A = full alert, P = partial alert, N = no alert. The string carries no
//	start times, so every record decoded from it has a zero StartedAt.
//
// # Reconciliation
//
// A region may appear in many alert records. [Reconcile] keeps one status per
// region: a full alert always wins over a partial one, and once a region is
// full later partial records are ignored. Output preserves first-seen order,
// which is the tie-break for everything downstream.
//
// # Durations
//
// Elapsed time is floor((now - started_at) / 1 minute). Starts in the future
// are clamped to zero and reported as a [DataAnomaly]. Regions in
// [ExcludedRegions] are shown without a duration regardless of data, and
// records without a start follow the configured [MissingStartPolicy].
//
// # Region Names
//
// Names are compared after trimming and Unicode NFC normalization so that
// decomposed Cyrillic (e.g. "і" + U+0308 for "ї") matches the fixed lists.
package domain
