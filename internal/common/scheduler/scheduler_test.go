package scheduler

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"daily-weather-image/internal/common/errors"
	"daily-weather-image/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type failingLedger struct{}

func (failingLedger) Claim(context.Context, string) (bool, error) {
	return false, stderrors.New("redis: connection refused")
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, time.UTC)
}

func newTestScheduler(t *testing.T, clock Clock, ledger Ledger, job Job) *Scheduler {
	t.Helper()
	s, err := New(Config{At: "08:00", Location: time.UTC, LedgerName: "杭州市"}, job, Dependencies{
		Clock:  clock,
		Ledger: ledger,
		Logger: logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return s
}

func TestParseFireTime(t *testing.T) {
	tests := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{in: "08:00", h: 8, m: 0},
		{in: "23:59", h: 23, m: 59},
		{in: "00:00", h: 0, m: 0},
		{in: "8:00", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "08:60", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, err := ParseFireTime(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeScheduleInvalid, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.h, h)
			assert.Equal(t, tt.m, m)
		})
	}
}

func TestNew_ArmsNextOccurrence(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{name: "before fire time", now: at(10, 7, 0), want: at(10, 8, 0)},
		{name: "exactly at fire time", now: at(10, 8, 0), want: at(11, 8, 0)},
		{name: "after fire time", now: at(10, 9, 30), want: at(11, 8, 0)},
		{name: "month end", now: at(31, 23, 0), want: time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScheduler(t, newFakeClock(tt.now), nil, func(context.Context) {})
			assert.Equal(t, tt.want, s.NextRun())
		})
	}
}

func TestTick_NeverFiresBeforeFireTime(t *testing.T) {
	clock := newFakeClock(at(10, 6, 0))
	var runs int
	s := newTestScheduler(t, clock, nil, func(context.Context) { runs++ })

	for clock.Now().Before(at(10, 8, 0)) {
		assert.False(t, s.Tick(context.Background()))
		clock.Advance(time.Minute)
	}
	assert.Equal(t, 0, runs)
}

func TestTick_FiresExactlyOncePerDay(t *testing.T) {
	clock := newFakeClock(at(10, 7, 58))
	var runs int
	s := newTestScheduler(t, clock, nil, func(context.Context) { runs++ })

	// Walk the clock through the rest of the day one minute at a time.
	for clock.Now().Before(at(11, 0, 0)) {
		s.Tick(context.Background())
		clock.Advance(time.Minute)
	}
	assert.Equal(t, 1, runs)
	assert.Equal(t, at(11, 8, 0), s.NextRun())

	clock.Advance(8*time.Hour + 30*time.Second)
	assert.True(t, s.Tick(context.Background()))
	assert.Equal(t, 2, runs)
}

func TestTick_FiresLateNeverEarly(t *testing.T) {
	clock := newFakeClock(at(10, 7, 59))
	var firedAt time.Time
	s := newTestScheduler(t, clock, nil, func(context.Context) { firedAt = clock.Now() })

	clock.Advance(59 * time.Second)
	assert.False(t, s.Tick(context.Background()))

	clock.Advance(45 * time.Second)
	assert.True(t, s.Tick(context.Background()))
	assert.False(t, firedAt.Before(at(10, 8, 0)))
}

func TestTick_SharedLedgerPreventsDoubleFire(t *testing.T) {
	clock := newFakeClock(at(10, 7, 0))
	ledger := NewMemoryLedger()
	var runs int32
	job := func(context.Context) { atomic.AddInt32(&runs, 1) }

	a := newTestScheduler(t, clock, ledger, job)
	b := newTestScheduler(t, clock, ledger, job)

	clock.Advance(time.Hour + time.Minute)
	assert.True(t, a.Tick(context.Background()))
	assert.False(t, b.Tick(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
	assert.Equal(t, at(11, 8, 0), b.NextRun(), "skipped scheduler still re-arms")
}

func TestTick_LedgerErrorStillFires(t *testing.T) {
	clock := newFakeClock(at(10, 7, 0))
	var runs int
	s := newTestScheduler(t, clock, failingLedger{}, func(context.Context) { runs++ })

	clock.Advance(2 * time.Hour)
	assert.True(t, s.Tick(context.Background()))
	assert.Equal(t, 1, runs)
}

func TestStart_RunsUntilCancelled(t *testing.T) {
	clock := newFakeClock(at(10, 8, 0).Add(-time.Second))
	fired := make(chan struct{}, 4)

	s, err := New(Config{At: "08:00", Location: time.UTC, PollInterval: time.Millisecond},
		func(context.Context) { fired <- struct{}{} },
		Dependencies{Clock: clock, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	clock.Advance(2 * time.Second)
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not fire")
	}

	// Same day: polling keeps going but nothing more fires.
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, fired, 0)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{At: "8am"}, func(context.Context) {}, Dependencies{})
	assert.Error(t, err)

	_, err = New(Config{At: "08:00"}, nil, Dependencies{})
	assert.Error(t, err)
}
