// Package store holds the in-memory state containers for the booking
// service: the session store (who is signed in) and the booking store
// (draft details, booking history, status transitions).
//
// Both stores expose an observer-style Subscribe so HTTP handlers and
// tests can react to mutations without polling. State is process-local
// and lost on restart; there is deliberately no persistence beneath it.
package store

import (
	"sync"

	"github.com/arjun/bikewash/internal/model"
)

// SessionStore tracks the single active Principal for one session and
// gates admin-only views.
//
// Concurrency: the legacy flow has one logical writer per session, but
// requests for the same session can overlap on the server, so access is
// guarded by an RWMutex.
type SessionStore struct {
	mu        sync.RWMutex
	principal *model.Principal

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewSessionStore returns an empty (guest) session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{subs: make(map[int]func())}
}

// Login replaces any existing Principal unconditionally. There is no
// merge and no duplicate-session detection; credential checks happen
// upstream in the auth service.
func (s *SessionStore) Login(p model.Principal) {
	s.mu.Lock()
	s.principal = &p
	s.mu.Unlock()
	s.notify()
}

// Logout clears the Principal. Idempotent: logging out a guest session
// is a no-op, not an error.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	changed := s.principal != nil
	s.principal = nil
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Current returns a copy of the active Principal, if any.
func (s *SessionStore) Current() (model.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return model.Principal{}, false
	}
	return *s.principal, true
}

// IsAuthenticated reports whether a Principal is active.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal != nil
}

// IsAdmin is false whenever no Principal is present.
func (s *SessionStore) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal != nil && s.principal.IsAdmin
}

// Subscribe registers fn to run after every mutation. The returned
// function unsubscribes; calling it more than once is harmless.
func (s *SessionStore) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// notify invokes subscribers outside the state lock, in registration
// order.
func (s *SessionStore) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
