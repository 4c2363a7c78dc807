package history

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPreservesInsertionOrder(t *testing.T) {
	hist := New()
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

	for i := 0; i < 3; i++ {
		hist.Append(PostRecord{Timestamp: base.Add(time.Duration(i) * time.Hour), Status: StatusSuccess})
	}

	records := hist.Records()
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].Timestamp.After(records[i-1].Timestamp))
	}
}

func TestRecordsReturnsACopy(t *testing.T) {
	hist := New()
	hist.Append(PostRecord{Timestamp: time.Now(), Status: StatusSuccess})

	records := hist.Records()
	records[0].Status = StatusFailed

	assert.Equal(t, StatusSuccess, hist.Records()[0].Status)
}

func TestStats(t *testing.T) {
	hist := New()
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	hist.Append(PostRecord{Timestamp: yesterday, Status: StatusSuccess})
	hist.Append(PostRecord{Timestamp: now.Add(-2 * time.Hour), Status: StatusFailed})
	hist.Append(PostRecord{Timestamp: now.Add(-time.Hour), Status: StatusSuccess})

	stats := hist.Stats(now)
	assert.Equal(t, 3, stats.TotalPosts)
	assert.Equal(t, 2, stats.TodayPosts)
	assert.Equal(t, 2, stats.SuccessfulPosts)
	assert.InDelta(t, 66.6, stats.SuccessRate, 0.1)
	assert.Equal(t, now.Add(-time.Hour), stats.LastPost)
}

func TestStatsEmpty(t *testing.T) {
	stats := New().Stats(time.Now())
	assert.Zero(t, stats.TotalPosts)
	assert.Zero(t, stats.SuccessRate)
	assert.True(t, stats.LastPost.IsZero())
}

func TestExcerpt(t *testing.T) {
	short := "🔐 short post"
	assert.Equal(t, short, Excerpt(short))

	long := strings.Repeat("a", 150)
	got := Excerpt(long)
	assert.Equal(t, strings.Repeat("a", 100)+"...", got)

	// Truncation must not split multi-byte runes.
	emoji := strings.Repeat("🛡️", 120)
	assert.True(t, len([]rune(Excerpt(emoji))) <= 103)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 15, 0, 0, 1, 0, time.Local)
	b := time.Date(2024, 3, 15, 23, 59, 59, 0, time.Local)
	c := time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}
