// Package quota decides whether a new post is currently permitted.
package quota

import (
	"time"

	"linkedin-poster/internal/config"
	"linkedin-poster/internal/history"
)

// MayPostNow reports whether a post is permitted at now, given the recorded
// history and the schedule config. It is a pure check with no side effects;
// the caller decides separately whether to publish and record.
//
// Policy, in order: the working-hours window [start, end) in local time is
// checked first, then the daily cap over records whose local calendar date
// matches now's.
func MayPostNow(records []history.PostRecord, cfg *config.Config, now time.Time) bool {
	if cfg.WorkingHoursOnly {
		hour := now.Hour()
		if hour < cfg.WorkingHoursStart || hour >= cfg.WorkingHoursEnd {
			return false
		}
	}

	today := 0
	for _, record := range records {
		if history.SameDay(record.Timestamp, now) {
			today++
		}
	}
	return today < cfg.MaxPostsPerDay
}
