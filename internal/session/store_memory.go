package session

import (
	"context"
	"sync"
	"time"

	"schemereg/pkg/platform/sentinel"
)

type memoryEntry struct {
	data      []byte
	ttl       time.Duration
	expiresAt time.Time
}

// InMemoryStore keeps sessions in process. Reads slide the expiry like the Redis store.
type InMemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// MemoryOption configures an InMemoryStore.
type MemoryOption func(*InMemoryStore)

// WithClock overrides the store clock, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *InMemoryStore) {
		s.now = now
	}
}

// NewInMemory creates an empty in-memory store.
func NewInMemory(opts ...MemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	now := s.now()
	if !now.Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, sentinel.ErrNotFound
	}
	e.expiresAt = now.Add(e.ttl)
	s.entries[key] = e
	return append([]byte(nil), e.data...), nil
}

func (s *InMemoryStore) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		data:      append([]byte(nil), data...),
		ttl:       ttl,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
