// Package scheduler fires a job once a day at a fixed wall-clock time.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"daily-weather-image/internal/common/errors"
	"daily-weather-image/internal/common/logger"
)

// DefaultPollInterval is how often the wait loop checks the clock. A fire may
// be up to this late, never early.
const DefaultPollInterval = time.Minute

// Job is one daily run. It must not panic; failures are its own to report.
type Job func(ctx context.Context)

type Config struct {
	At           string // HH:MM
	Location     *time.Location
	PollInterval time.Duration
	// LedgerName scopes ledger keys, normally the city.
	LedgerName string
}

type Dependencies struct {
	Clock  Clock
	Ledger Ledger
	Logger logger.Logger
}

type Scheduler struct {
	hour, minute int
	loc          *time.Location
	poll         time.Duration
	ledgerName   string

	job    Job
	clock  Clock
	ledger Ledger
	logger logger.Logger

	mu      sync.Mutex
	nextRun time.Time
}

// ParseFireTime parses a 24h HH:MM value.
func ParseFireTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		if err == nil {
			err = fmt.Errorf("expected HH:MM")
		}
		return 0, 0, errors.NewScheduleInvalidError(s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// New arms a scheduler for the next occurrence of cfg.At after now.
func New(cfg Config, job Job, deps Dependencies) (*Scheduler, error) {
	hour, minute, err := ParseFireTime(cfg.At)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("scheduler: job is required")
	}

	s := &Scheduler{
		hour:       hour,
		minute:     minute,
		loc:        cfg.Location,
		poll:       cfg.PollInterval,
		ledgerName: cfg.LedgerName,
		job:        job,
		clock:      deps.Clock,
		ledger:     deps.Ledger,
		logger:     deps.Logger,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.poll <= 0 {
		s.poll = DefaultPollInterval
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.ledger == nil {
		s.ledger = NewMemoryLedger()
	}
	if s.logger == nil {
		s.logger = logger.NewNoOpLogger()
	}

	s.nextRun = s.nextAfter(s.clock.Now())
	return s, nil
}

// NextRun is the armed fire time.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

// nextAfter is the first HH:MM strictly after now in the scheduler's zone.
func (s *Scheduler) nextAfter(now time.Time) time.Time {
	now = now.In(s.loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, s.loc)
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, s.hour, s.minute, 0, 0, s.loc)
	}
	return next
}

// Tick runs the job if the armed time has been reached, then re-arms for the
// next day. It reports whether the job ran.
func (s *Scheduler) Tick(ctx context.Context) bool {
	s.mu.Lock()
	due := s.nextRun
	s.mu.Unlock()

	now := s.clock.Now()
	if now.Before(due) {
		return false
	}

	ran := false
	key := LedgerKey(s.ledgerName, due)
	claimed, err := s.ledger.Claim(ctx, key)
	switch {
	case err != nil:
		s.logger.Warn("Fire ledger unavailable, running anyway", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		fallthrough
	case claimed:
		s.job(ctx)
		ran = true
	default:
		s.logger.Info("Daily run already claimed, skipping", map[string]interface{}{
			"key": key,
		})
	}

	s.mu.Lock()
	s.nextRun = s.nextAfter(s.clock.Now())
	next := s.nextRun
	s.mu.Unlock()

	s.logger.Info("Next run armed", map[string]interface{}{
		"nextRun": next.Format(time.RFC3339),
	})
	return ran
}

// Start checks the clock immediately and then every poll interval until ctx
// is cancelled. The job runs on the calling goroutine, so runs never overlap.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("Scheduler started", map[string]interface{}{
		"at":      fmt.Sprintf("%02d:%02d", s.hour, s.minute),
		"nextRun": s.NextRun().Format(time.RFC3339),
		"poll":    s.poll.String(),
	})

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			break
		}
		s.Tick(ctx)

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}

	s.logger.Info("Scheduler stopped", nil)
	return nil
}
