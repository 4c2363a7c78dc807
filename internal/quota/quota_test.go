package quota

import (
	"testing"
	"time"

	"linkedin-poster/internal/config"
	"linkedin-poster/internal/history"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *config.Config {
	cfg := config.Default()
	cfg.MaxPostsPerDay = 24
	cfg.WorkingHoursOnly = false
	return cfg
}

func recordsOn(day time.Time, n int) []history.PostRecord {
	records := make([]history.PostRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, history.PostRecord{
			Timestamp: day.Add(time.Duration(i) * time.Minute),
			Status:    history.StatusSuccess,
		})
	}
	return records
}

func TestWorkingHoursWindow(t *testing.T) {
	cfg := baseConfig()
	cfg.WorkingHoursOnly = true
	cfg.WorkingHoursStart = 9
	cfg.WorkingHoursEnd = 18

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		hour int
		want bool
	}{
		{"before window", 8, false},
		{"window start is inclusive", 9, true},
		{"inside window", 13, true},
		{"window end is exclusive", 18, false},
		{"late evening", 23, false},
		{"midnight", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := day.Add(time.Duration(tt.hour) * time.Hour)
			assert.Equal(t, tt.want, MayPostNow(nil, cfg, now))
		})
	}
}

func TestWorkingHoursDenyRegardlessOfHistory(t *testing.T) {
	cfg := baseConfig()
	cfg.WorkingHoursOnly = true

	now := time.Date(2024, 3, 15, 6, 0, 0, 0, time.Local)
	assert.False(t, MayPostNow(nil, cfg, now))
	assert.False(t, MayPostNow(recordsOn(now, 3), cfg, now))
}

func TestDailyCap(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxPostsPerDay = 5

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	assert.True(t, MayPostNow(recordsOn(now, 4), cfg, now), "one below the cap must be permitted")
	assert.False(t, MayPostNow(recordsOn(now, 5), cfg, now), "at the cap must be denied")
	assert.False(t, MayPostNow(recordsOn(now, 6), cfg, now))
}

func TestDailyCapCountsOnlyToday(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxPostsPerDay = 1

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	assert.True(t, MayPostNow(recordsOn(yesterday, 10), cfg, now),
		"records from previous days must not count against today's cap")
}

func TestFailedAttemptsCountAgainstCap(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxPostsPerDay = 1

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	records := []history.PostRecord{{Timestamp: now.Add(-time.Hour), Status: history.StatusFailed}}

	assert.False(t, MayPostNow(records, cfg, now))
}

func TestZeroCapDeniesEverything(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxPostsPerDay = 0

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	assert.False(t, MayPostNow(nil, cfg, now))
}
