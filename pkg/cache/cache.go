// Package cache provides a small in-memory TTL store.
//
// Entries expire TTL after they were stored and are dropped on read once
// expired. The store is safe for concurrent use; expiry-on-read and
// evict-on-delete are atomic with respect to concurrent readers of the same
// key. State is process-local and lost on restart.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Store maps string keys to values with a fixed TTL.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Store whose entries expire ttl after Put.
func New[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewWithClock creates a Store with an injected clock. Tests use this to age
// entries without sleeping.
func NewWithClock[V any](ttl time.Duration, now func() time.Time) *Store[V] {
	s := New[V](ttl)
	s.now = now
	return s
}

// Get returns the live value for key. An expired entry is removed and
// reported as absent.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if s.now().Sub(e.storedAt) > s.ttl {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, stamping it with the current time. An existing
// entry is overwritten.
func (s *Store[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[V]{value: value, storedAt: s.now()}
}

// Evict removes key. Absent keys are a no-op.
func (s *Store[V]) Evict(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear drops all entries.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[V])
}

// Len reports the number of stored entries, expired or not.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
