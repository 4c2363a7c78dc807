// Package scheduler drives the periodic posting loop: pick a topic, select
// content, check the quota, wait the jitter, publish, record.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"runtime/debug"
	"time"

	"linkedin-poster/internal/config"
	dbi "linkedin-poster/internal/database"
	"linkedin-poster/internal/database/models"
	"linkedin-poster/internal/history"
	"linkedin-poster/internal/quota"

	"github.com/getsentry/sentry-go"
)

// Publisher performs the authenticated post-creation call.
type Publisher interface {
	CreatePost(ctx context.Context, content string) (string, error)
}

// Selector returns one content item for an optional topic key.
type Selector interface {
	Select(topic string) (string, error)
}

// Scheduler runs posting cycles on a fixed interval until its context is
// cancelled. Cycles are strictly sequential; each one fully completes before
// the next tick is considered.
type Scheduler struct {
	cfg        *config.Config
	selector   Selector
	publisher  Publisher
	hist       *history.History
	postLogger dbi.PostLogger // optional durable mirror, may be nil
	clock      Clock
	rng        *rand.Rand
}

// Deps holds the dependencies required by the Scheduler.
type Deps struct {
	Config     *config.Config
	Selector   Selector
	Publisher  Publisher
	History    *history.History
	PostLogger dbi.PostLogger
	Clock      Clock
	Rand       *rand.Rand
}

// New creates a Scheduler from its dependencies.
// Returns an error if a required dependency is missing.
func New(deps Deps) (*Scheduler, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if deps.Selector == nil {
		return nil, fmt.Errorf("content selector cannot be nil")
	}
	if deps.Publisher == nil {
		return nil, fmt.Errorf("publisher cannot be nil")
	}
	if deps.History == nil {
		return nil, fmt.Errorf("post history cannot be nil")
	}
	if deps.Clock == nil {
		deps.Clock = RealClock{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Scheduler{
		cfg:        deps.Config,
		selector:   deps.Selector,
		publisher:  deps.Publisher,
		hist:       deps.History,
		postLogger: deps.PostLogger,
		clock:      deps.Clock,
		rng:        deps.Rand,
	}, nil
}

// Run blocks, executing one posting cycle per tick until ctx is cancelled.
// A failed cycle is logged and reported but never stops the loop.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("Automation started, posting every %s", s.cfg.Interval())

	if s.cfg.PostImmediately {
		log.Println("Running initial posting cycle...")
		s.runCycle(ctx)
	}

	ticker := s.clock.NewTicker(s.cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Automation stopped")
			return
		case <-ticker.C():
			s.runCycle(ctx)
		}
	}
}

// runCycle performs one select -> gate -> jitter -> publish -> record cycle.
// Panics inside a cycle are contained so the scheduling loop survives.
func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC recovered in posting cycle: %v\n%s", r, debug.Stack())
			sentry.CurrentHub().Recover(r)
			sentry.Flush(2 * time.Second)
		}
	}()

	topic := s.pickTopic()

	content, err := s.selector.Select(topic)
	if err != nil {
		log.Printf("Failed to select content for topic %q: %v", topic, err)
		sentry.CaptureException(fmt.Errorf("content selection failed: %w", err))
		return
	}

	// Quota denial ends the cycle with no network call and no record.
	if !quota.MayPostNow(s.hist.Records(), s.cfg, s.clock.Now()) {
		log.Println("Posting denied by quota (working hours or daily cap)")
		return
	}

	if ceiling := s.cfg.JitterCeiling(); ceiling > 0 {
		delay := time.Duration(s.rng.Int63n(int64(ceiling) + 1))
		log.Printf("Waiting %s before posting...", delay.Round(time.Second))
		s.clock.Sleep(ctx, delay)
		if ctx.Err() != nil {
			return
		}
	}

	postID, err := s.publisher.CreatePost(ctx, content)
	status := history.StatusSuccess
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		status = history.StatusFailed
		log.Printf("Failed to publish post about %q: %v", topic, err)
		sentry.CaptureException(fmt.Errorf("publish failed: %w", err))
	} else {
		log.Printf("Post about %q published successfully", topic)
	}

	now := s.clock.Now()
	s.hist.Append(history.PostRecord{
		Timestamp: now,
		Excerpt:   history.Excerpt(content),
		Status:    status,
	})

	if s.postLogger != nil {
		entry := models.PostLog{
			PersonURN:   s.cfg.PersonID,
			Topic:       topic,
			Excerpt:     history.Excerpt(content),
			Status:      string(status),
			PostID:      postID,
			PublishedAt: now,
		}
		if err := s.postLogger.LogPublishedPost(entry); err != nil {
			log.Printf("Failed to mirror post log: %v", err)
		}
	}
}

// pickTopic chooses one active topic uniformly, or returns "" when no active
// topics are configured so selection falls back to the whole corpus.
func (s *Scheduler) pickTopic() string {
	if len(s.cfg.Topics) == 0 {
		return ""
	}
	return s.cfg.Topics[s.rng.Intn(len(s.cfg.Topics))]
}
