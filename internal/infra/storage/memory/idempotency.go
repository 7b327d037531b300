package memory

import (
	"context"
	"sync"
	"time"

	"bookify/internal/app/middleware"
)

type idempotencyEntry struct {
	value     any
	expiresAt time.Time
}

// IdempotencyStore keeps processed-command results with a TTL.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]idempotencyEntry
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{ttl: ttl, entries: make(map[string]idempotencyEntry)}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (s *IdempotencyStore) Put(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = idempotencyEntry{value: value, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
