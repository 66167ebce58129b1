package service

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/arjun/bikewash/internal/model"
	"github.com/arjun/bikewash/internal/store"
)

// ErrSessionNotFound is returned when a token does not resolve to a
// live server-side session.
var ErrSessionNotFound = errors.New("session not found")

// Session pairs the two state containers owned by one signed-in client:
// its session store (principal) and its booking store (draft + history).
// Every booking belongs to the session that created it.
type Session struct {
	ID        string
	Auth      *store.SessionStore
	Bookings  *store.BookingStore
	CreatedAt time.Time
}

// SessionManager owns the registry of live sessions. Sessions are
// process-local and vanish on restart, matching the store lifecycle.
type SessionManager struct {
	auth *AuthService

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates an empty registry.
func NewSessionManager(auth *AuthService) *SessionManager {
	return &SessionManager{
		auth:     auth,
		sessions: make(map[string]*Session),
	}
}

// Open creates a session for the principal and returns it with a
// signed bearer token. Each login opens a fresh session with empty
// booking state.
func (m *SessionManager) Open(p model.Principal) (*Session, string, error) {
	sess := &Session{
		ID:        NewSessionID(),
		Auth:      store.NewSessionStore(),
		Bookings:  store.NewBookingStore(),
		CreatedAt: time.Now(),
	}
	sess.Auth.Login(p)

	token, err := m.auth.SignSessionToken(p, sess.ID)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	log.Printf("[session] opened %s for principal %s (admin=%v)", sess.ID, p.ID, p.IsAdmin)
	return sess, token, nil
}

// Resolve verifies the bearer token and returns the live session it
// points at.
func (m *SessionManager) Resolve(token string) (*Session, error) {
	id, err := m.auth.VerifySessionToken(token)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close logs the principal out and removes the session from the
// registry. Closing an unknown session is a no-op: logout is
// idempotent end to end.
func (m *SessionManager) Close(token string) {
	id, err := m.auth.VerifySessionToken(token)
	if err != nil {
		return
	}

	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		sess.Auth.Logout()
		log.Printf("[session] closed %s", id)
	}
}

// Sessions returns a snapshot of all live sessions, for the admin
// dashboard's cross-session booking view.
func (m *SessionManager) Sessions() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// AllBookings flattens every session's history, for the admin view.
// Ordering across sessions follows creation time.
func (m *SessionManager) AllBookings() []model.Booking {
	sessions := m.Sessions()
	var all []model.Booking
	for _, s := range sessions {
		all = append(all, s.Bookings.Bookings()...)
	}
	sortBookingsByCreation(all)
	return all
}

// FindBooking locates a booking by id across every session. Used by
// admin status updates, which are not scoped to one session.
func (m *SessionManager) FindBooking(id string) (*Session, model.Booking, error) {
	for _, s := range m.Sessions() {
		if b, err := s.Bookings.Booking(id); err == nil {
			return s, b, nil
		}
	}
	return nil, model.Booking{}, store.ErrBookingNotFound
}

func sortBookingsByCreation(bookings []model.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
}
