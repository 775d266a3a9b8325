package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"mindscreen/internal/model"
)

type memoryEntry struct {
	session  *model.ScreeningSession
	storedAt time.Time
}

// MemorySessionStore keeps sessions for the life of the process. Entries
// older than ttl read as missing and are removed by Prune; when maxEntries
// is reached the oldest entry is evicted on Set.
type MemorySessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemorySessionStore creates an in-memory store. maxEntries <= 0 means unbounded.
func NewMemorySessionStore(ttl time.Duration, maxEntries int) *MemorySessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemorySessionStore{
		sessions:   make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *MemorySessionStore) Get(_ context.Context, key string) (*model.ScreeningSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[key]
	if !ok || s.expired(e) {
		return nil, model.ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

func (s *MemorySessionStore) Set(_ context.Context, session *model.ScreeningSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.Key]; !exists && s.maxEntries > 0 && len(s.sessions) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.sessions[session.Key] = memoryEntry{session: session.Clone(), storedAt: s.now()}
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
	return nil
}

// Len returns the number of stored entries, expired ones included
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Prune removes expired entries and returns how many were dropped
func (s *MemorySessionStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.sessions {
		if s.expired(e) {
			delete(s.sessions, k)
			removed++
		}
	}
	return removed
}

// RunJanitor prunes on every tick until ctx is done
func (s *MemorySessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Prune(); n > 0 {
				log.Printf("[SessionStore] pruned %d expired sessions", n)
			}
		}
	}
}

func (s *MemorySessionStore) expired(e memoryEntry) bool {
	return s.now().Sub(e.storedAt) > s.ttl
}

func (s *MemorySessionStore) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range s.sessions {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.storedAt, true
		}
	}
	if found {
		delete(s.sessions, oldestKey)
	}
}
