// internal/engine/store.go
package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps the sessions of connected browsers and expires idle ones.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns a store whose sessions expire after ttl without activity.
// A non-positive ttl disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open mounts page in a new session with a random id.
func (st *Store) Open(page Page) *Session {
	s := NewSession(uuid.NewString(), page)
	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
	sessionsOpen.Inc()
	return s
}

// Get returns a live session.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Close drops a session.
func (st *Store) Close(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; ok {
		delete(st.sessions, id)
		sessionsOpen.Dec()
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the ttl and returns how many
// were dropped.
func (st *Store) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	dropped := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			sessionsOpen.Dec()
			dropped++
		}
	}
	return dropped
}
