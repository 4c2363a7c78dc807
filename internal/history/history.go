// Package history keeps the in-memory, append-only log of publish attempts.
// It is the sole input for the quota check and the statistics display.
package history

import (
	"sync"
	"time"
)

// Status is the outcome of one publish attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// excerptLimit bounds the content excerpt stored with each record.
const excerptLimit = 100

// PostRecord describes one attempted publication. Records are appended in
// chronological order and never mutated or removed.
type PostRecord struct {
	Timestamp time.Time
	Excerpt   string
	Status    Status
}

// Stats is a summary over the full history.
type Stats struct {
	TotalPosts      int
	TodayPosts      int
	SuccessfulPosts int
	SuccessRate     float64
	LastPost        time.Time
}

// History is the append-only record log. The scheduler loop is the only
// writer; the mutex exists because the interactive menu reads statistics
// while the loop runs.
type History struct {
	mu      sync.Mutex
	records []PostRecord
}

// New returns an empty History.
func New() *History {
	return &History{}
}

// Append adds a record to the log.
func (h *History) Append(record PostRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
}

// Records returns a copy of the record log in insertion order.
func (h *History) Records() []PostRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]PostRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Stats summarizes the history relative to now's local calendar date.
func (h *History) Stats(now time.Time) Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := Stats{TotalPosts: len(h.records)}
	for _, record := range h.records {
		if SameDay(record.Timestamp, now) {
			stats.TodayPosts++
		}
		if record.Status == StatusSuccess {
			stats.SuccessfulPosts++
		}
		if record.Timestamp.After(stats.LastPost) {
			stats.LastPost = record.Timestamp
		}
	}
	if stats.TotalPosts > 0 {
		stats.SuccessRate = float64(stats.SuccessfulPosts) / float64(stats.TotalPosts) * 100
	}
	return stats
}

// Excerpt truncates content to the stored excerpt length.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLimit {
		return content
	}
	return string(runes[:excerptLimit]) + "..."
}

// SameDay reports whether two instants fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
