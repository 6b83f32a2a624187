package ginserver

import (
	"sync"
	"time"
)

// IdempotencyStore remembers booking responses per user+key so a retried
// POST returns the original result instead of creating a second stay.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	ttl     time.Duration
}

type idempotencyEntry struct {
	status  int
	payload []byte
	savedAt time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{entries: make(map[string]idempotencyEntry), ttl: ttl}
}

func (s *IdempotencyStore) get(key string) (idempotencyEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return idempotencyEntry{}, false
	}
	if time.Since(entry.savedAt) > s.ttl {
		delete(s.entries, key)
		return idempotencyEntry{}, false
	}
	return entry, true
}

func (s *IdempotencyStore) put(key string, status int, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = idempotencyEntry{status: status, payload: payload, savedAt: time.Now()}
}
