package session

import (
	"context"
	"sync"
	"time"

	"calcpad/internal/keypad"
)

// MemoryStore keeps sessions in process. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

// memoryEntry is a stored state; a zero expires never expires.
type memoryEntry struct {
	state   keypad.State
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

type MemoryOption func(*MemoryStore)

// WithMemoryTTL expires sessions not saved for ttl. Expired sessions are
// dropped on Load and List, and swept whenever a new session is saved.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		s.ttl = ttl
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Save(ctx context.Context, id string, state keypad.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, ok := s.data[id]; !ok {
		s.pruneLocked(now)
	}

	entry := memoryEntry{state: state.Clone()}
	if s.ttl > 0 {
		entry.expires = now.Add(s.ttl)
	}
	s.data[id] = entry
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (keypad.State, error) {
	s.mu.RLock()
	entry, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return keypad.State{}, ErrNotFound
	}
	if now := s.now(); entry.expired(now) {
		s.mu.Lock()
		if current, ok := s.data[id]; ok && current.expired(now) {
			delete(s.data, id)
		}
		s.mu.Unlock()
		return keypad.State{}, ErrNotFound
	}
	return entry.state.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, entry := range s.data {
		if entry.expired(now) {
			delete(s.data, id)
		}
	}
}
