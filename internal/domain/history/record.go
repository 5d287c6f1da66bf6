package history

import (
	"fmt"
	"strings"
	"time"
)

// Record is one normalized history row. Records exist only for the lifetime
// of the request that produced them.
type Record struct {
	URL           string
	Title         string
	LastVisitedAt time.Time
}

// QuerySpec narrows an extraction. Zero values mean no filtering.
type QuerySpec struct {
	Keyword string
	Since   time.Time
}

// NoMatchMessage is rendered for an empty result set
const NoMatchMessage = "No matching history found."

// chromiumEpoch is the zero point of Chromium-family visit timestamps,
// stored as microseconds since 1601-01-01 UTC.
var chromiumEpoch = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)

// chromiumEpochOffsetSeconds is the span between the Chromium and Unix
// epochs. The conversions below work in integer seconds and microseconds:
// a time.Duration tops out around 292 years and cannot bridge the two.
const chromiumEpochOffsetSeconds = 11644473600

// toChromiumMicros converts a wall-clock time to the store's internal epoch.
func toChromiumMicros(t time.Time) int64 {
	return (t.Unix()+chromiumEpochOffsetSeconds)*1e6 + int64(t.Nanosecond())/1e3
}

// fromChromiumMicros converts a raw visit timestamp to a time.Time.
func fromChromiumMicros(micros int64) time.Time {
	return time.Unix(micros/1e6-chromiumEpochOffsetSeconds, micros%1e6*1e3).UTC()
}

// FormatRecords renders records for the user, one per line, newest first.
func FormatRecords(records []Record) string {
	if len(records) == 0 {
		return NoMatchMessage
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s (%s) - Last visited: %s",
			r.Title, r.URL, r.LastVisitedAt.UTC().Format("2006-01-02 15:04:05")))
	}
	return strings.Join(lines, "\n")
}
