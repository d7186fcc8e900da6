package throttle

import (
	"fmt"
	"sync"
	"time"
)

// DefaultCooldown is the minimum gap between two announcements of the same
// event for the same entity.
const DefaultCooldown = 5 * time.Minute

// MaxEntryAge is how long a last-fired timestamp is kept before the periodic
// sweep drops it.
const MaxEntryAge = 24 * time.Hour

// Store holds last-fired timestamps per throttle key. It is an interface so
// tests can substitute a fresh store instead of relying on process-wide
// state.
type Store interface {
	Get(key string) (time.Time, bool)
	Set(key string, firedAt time.Time)
	DeleteOlderThan(cutoff time.Time) int
}

// MemoryStore is the default Store: a mutex-guarded in-memory map. State is
// process-local and resets on restart; callers must treat throttling as
// best-effort noise reduction, never as a correctness guarantee.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

func (s *MemoryStore) Get(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.entries[key]
	return t, ok
}

func (s *MemoryStore) Set(key string, firedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = firedAt
}

func (s *MemoryStore) DeleteOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, firedAt := range s.entries {
		if firedAt.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Throttle rate-limits how often an event may be (re-)announced for a given
// entity. The clock is injectable for deterministic tests.
type Throttle struct {
	store Store
	now   func() time.Time
}

func New(store Store, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{store: store, now: now}
}

// NewDefault returns a throttle backed by a fresh in-memory store and the
// wall clock.
func NewDefault() *Throttle {
	return New(NewMemoryStore(), time.Now)
}

// CanTriggerEvent reports whether the event may fire for the entity and, if
// so, records the firing time. It returns false without mutating state while
// the cooldown for that key is still running.
func (t *Throttle) CanTriggerEvent(entityID, eventType string, cooldown time.Duration) bool {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	key := fmt.Sprintf("%s_%s", entityID, eventType)
	now := t.now()
	if last, ok := t.store.Get(key); ok && now.Sub(last) < cooldown {
		return false
	}
	t.store.Set(key, now)
	return true
}

// Sweep drops entries older than maxAge to bound memory growth. It is meant
// to run periodically (the scheduler runs it hourly).
func (t *Throttle) Sweep(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = MaxEntryAge
	}
	return t.store.DeleteOlderThan(t.now().Add(-maxAge))
}
