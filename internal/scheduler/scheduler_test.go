package scheduler

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"linkedin-poster/internal/config"
	"linkedin-poster/internal/database/models"
	"linkedin-poster/internal/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test doubles ---

type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
	ticks chan time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, ticks: make(chan time.Time)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	return &fakeTicker{ticks: c.ticks}
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.slept...)
}

type fakeTicker struct {
	ticks chan time.Time
}

func (t *fakeTicker) C() <-chan time.Time { return t.ticks }
func (t *fakeTicker) Stop()               {}

type stubPublisher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *stubPublisher) CreatePost(ctx context.Context, content string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return "urn:li:share:1", nil
}

func (p *stubPublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type stubSelector struct {
	topics []string
}

func (s *stubSelector) Select(topic string) (string, error) {
	s.topics = append(s.topics, topic)
	return "post about " + topic, nil
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []models.PostLog
}

func (l *recordingLogger) LogPublishedPost(entry models.PostLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.AccessToken = "tok"
	cfg.PersonID = "urn:li:person:me"
	cfg.Topics = []string{"ciberseguranca"}
	cfg.RandomDelayMinutes = 0
	cfg.WorkingHoursOnly = false
	cfg.MaxPostsPerDay = 24
	return cfg
}

func newTestScheduler(t *testing.T, cfg *config.Config, pub *stubPublisher, clock *fakeClock) (*Scheduler, *history.History) {
	t.Helper()
	hist := history.New()
	sched, err := New(Deps{
		Config:    cfg,
		Selector:  &stubSelector{},
		Publisher: pub,
		History:   hist,
		Clock:     clock,
		Rand:      rand.New(rand.NewSource(7)),
	})
	require.NoError(t, err)
	return sched, hist
}

// --- Tests ---

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Deps{})
	require.Error(t, err)

	_, err = New(Deps{Config: testConfig(), Selector: &stubSelector{}, Publisher: &stubPublisher{}})
	require.Error(t, err, "history is required")
}

func TestCycleRecordsSuccess(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	pub := &stubPublisher{}
	sched, hist := newTestScheduler(t, testConfig(), pub, clock)

	sched.runCycle(context.Background())

	records := hist.Records()
	require.Len(t, records, 1)
	assert.Equal(t, history.StatusSuccess, records[0].Status)
	assert.Equal(t, "post about ciberseguranca", records[0].Excerpt)
	assert.Equal(t, 1, pub.callCount())
}

func TestCycleRecordsFailure(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	pub := &stubPublisher{err: assert.AnError}
	sched, hist := newTestScheduler(t, testConfig(), pub, clock)

	sched.runCycle(context.Background())

	records := hist.Records()
	require.Len(t, records, 1)
	assert.Equal(t, history.StatusFailed, records[0].Status)
}

func TestQuotaDeniedCycleHasNoSideEffects(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPostsPerDay = 0

	clock := newFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	pub := &stubPublisher{}
	sched, hist := newTestScheduler(t, cfg, pub, clock)

	sched.runCycle(context.Background())

	assert.Zero(t, pub.callCount(), "denied cycle must not touch the network")
	assert.Empty(t, hist.Records(), "denied cycle must not append a record")
}

func TestDailyCapStopsSecondCycle(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPostsPerDay = 1

	clock := newFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	pub := &stubPublisher{}
	sched, hist := newTestScheduler(t, cfg, pub, clock)

	sched.runCycle(context.Background())
	sched.runCycle(context.Background())

	records := hist.Records()
	require.Len(t, records, 1)
	assert.Equal(t, history.StatusSuccess, records[0].Status)
	assert.Equal(t, 1, pub.callCount(), "second cycle on the same day must be denied")
}

func TestJitterBoundedByCeiling(t *testing.T) {
	cfg := testConfig()
	cfg.RandomDelayMinutes = 10

	clock := newFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	sched, _ := newTestScheduler(t, cfg, &stubPublisher{}, clock)

	for i := 0; i < 20; i++ {
		sched.runCycle(context.Background())
	}

	sleeps := clock.sleeps()
	require.NotEmpty(t, sleeps)
	for _, d := range sleeps {
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 10*time.Minute)
	}
}

func TestNoJitterWhenDisabled(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	sched, _ := newTestScheduler(t, testConfig(), &stubPublisher{}, clock)

	sched.runCycle(context.Background())
	assert.Empty(t, clock.sleeps())
}

func TestPostLoggerMirrorsAttempts(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	logger := &recordingLogger{}
	hist := history.New()
	sched, err := New(Deps{
		Config:     testConfig(),
		Selector:   &stubSelector{},
		Publisher:  &stubPublisher{},
		History:    hist,
		PostLogger: logger,
		Clock:      clock,
		Rand:       rand.New(rand.NewSource(7)),
	})
	require.NoError(t, err)

	sched.runCycle(context.Background())

	require.Len(t, logger.entries, 1)
	assert.Equal(t, "urn:li:person:me", logger.entries[0].PersonURN)
	assert.Equal(t, "ciberseguranca", logger.entries[0].Topic)
	assert.Equal(t, "success", logger.entries[0].Status)
	assert.Equal(t, "urn:li:share:1", logger.entries[0].PostID)
}

func TestRunExecutesCyclePerTickAndStopsOnCancel(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	pub := &stubPublisher{}
	sched, hist := newTestScheduler(t, testConfig(), pub, clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	clock.ticks <- clock.Now()
	clock.ticks <- clock.Now()

	require.Eventually(t, func() bool { return pub.callCount() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	assert.Len(t, hist.Records(), 2)
}

func TestRunPostImmediately(t *testing.T) {
	cfg := testConfig()
	cfg.PostImmediately = true

	clock := newFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	pub := &stubPublisher{}
	sched, _ := newTestScheduler(t, cfg, pub, clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return pub.callCount() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
