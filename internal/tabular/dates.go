package tabular

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts is the ordered parser list shared by every date resolution
// site: first layout that parses wins. Covers ISO dates, compact ERP dates,
// European dotted and slashed forms, and ISO datetimes.
var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"02.01.2006",
	"01/02/2006",
	"02/01/2006",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate resolves a normalized cell value to a date. Integer values cover
// compact numeric dates that survived coercion (20240115); string values run
// through the layout chain. ok is false when the value is absent or no
// layout matches.
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case int64:
		return parseDateString(fmt.Sprintf("%d", v))
	case string:
		return parseDateString(v)
	default:
		return time.Time{}, false
	}
}

func parseDateString(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		candidate := raw
		if len(candidate) > len(layout) {
			candidate = candidate[:len(layout)]
		}
		if ts, err := time.Parse(layout, candidate); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// timestampLayouts covers full activity-log timestamps, which carry time and
// zone information the date chain does not.
var timestampLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.000000-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
}

// ParseTimestamp resolves an activity-log timestamp string through the
// layout chain; ok is false when nothing matches.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
