package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"daily-weather-image/internal/common/database"
)

// DefaultLedgerTTL keeps a fire record for two days.
const DefaultLedgerTTL = 48 * time.Hour

// Ledger records which daily fires have happened. Claim returns true for the
// first caller of a key and false afterwards.
type Ledger interface {
	Claim(ctx context.Context, key string) (bool, error)
}

// LedgerKey names the fire of city on the given day.
func LedgerKey(city string, day time.Time) string {
	return fmt.Sprintf("weather-report:%s:%s", city, day.Format("2006-01-02"))
}

// MemoryLedger is a process-local Ledger.
type MemoryLedger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{seen: make(map[string]struct{})}
}

func (l *MemoryLedger) Claim(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[key]; ok {
		return false, nil
	}
	l.seen[key] = struct{}{}
	return true, nil
}

// RedisLedger shares fire records across restarts and processes.
type RedisLedger struct {
	client *database.RedisClient
	ttl    time.Duration
}

func NewRedisLedger(client *database.RedisClient, ttl time.Duration) *RedisLedger {
	if ttl <= 0 {
		ttl = DefaultLedgerTTL
	}
	return &RedisLedger{client: client, ttl: ttl}
}

func (l *RedisLedger) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), l.ttl)
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return ok, nil
}
