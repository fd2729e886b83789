package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionStore keeps per-owner in-memory objects such as import pipelines
// and manual batches. Lookups by another owner behave as not found.
type sessionStore[T any] struct {
	mu       sync.Mutex
	entries  map[uuid.UUID]*sessionEntry[T]
	max      int
	notFound error
	now      func() time.Time
}

type sessionEntry[T any] struct {
	value      T
	owner      string
	lastAccess time.Time
}

func newSessionStore[T any](max int, notFound error, now func() time.Time) *sessionStore[T] {
	if now == nil {
		now = time.Now
	}
	return &sessionStore[T]{
		entries:  make(map[uuid.UUID]*sessionEntry[T]),
		max:      max,
		notFound: notFound,
		now:      now,
	}
}

// put stores v. When the store is full the least recently used entry is
// evicted and returned.
func (s *sessionStore[T]) put(id uuid.UUID, owner string, v T) (evicted []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.max > 0 && len(s.entries) >= s.max {
		var oldestID uuid.UUID
		var oldest *sessionEntry[T]
		for eid, e := range s.entries {
			if oldest == nil || e.lastAccess.Before(oldest.lastAccess) {
				oldestID, oldest = eid, e
			}
		}
		delete(s.entries, oldestID)
		evicted = append(evicted, oldest.value)
	}
	s.entries[id] = &sessionEntry[T]{value: v, owner: owner, lastAccess: s.now()}
	return evicted
}

func (s *sessionStore[T]) get(id uuid.UUID, owner string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.owner != owner {
		var zero T
		return zero, s.notFound
	}
	e.lastAccess = s.now()
	return e.value, nil
}

func (s *sessionStore[T]) remove(id uuid.UUID, owner string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.owner != owner {
		var zero T
		return zero, s.notFound
	}
	delete(s.entries, id)
	return e.value, nil
}

// sweep removes entries idle for longer than ttl and returns them.
func (s *sessionStore[T]) sweep(ttl time.Duration) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-ttl)
	var expired []T
	for id, e := range s.entries {
		if e.lastAccess.Before(cutoff) {
			delete(s.entries, id)
			expired = append(expired, e.value)
		}
	}
	return expired
}

func (s *sessionStore[T]) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
