package service

import (
	"errors"
	"testing"

	"github.com/arjun/bikewash/internal/model"
)

func testManager() *SessionManager {
	return NewSessionManager(NewAuthService(testAuthConfig()))
}

func TestOpenAndResolve(t *testing.T) {
	m := testManager()

	p := model.Principal{ID: "u-1", DisplayName: "Alice", Email: "alice@example.com"}
	sess, token, err := m.Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, ok := sess.Auth.Current(); !ok || got.ID != "u-1" {
		t.Errorf("session principal = %+v, %v", got, ok)
	}

	resolved, err := m.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.ID != sess.ID {
		t.Errorf("resolved %q, want %q", resolved.ID, sess.ID)
	}
}

func TestResolve_BadToken(t *testing.T) {
	m := testManager()
	if _, err := m.Resolve("garbage"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	m := testManager()
	_, token, _ := m.Open(model.Principal{ID: "u-1"})

	m.Close(token)
	m.Close(token) // second close is a no-op

	if _, err := m.Resolve(token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("closed session still resolves: %v", err)
	}
}

func TestAllBookings_AcrossSessions(t *testing.T) {
	m := testManager()

	s1, _, _ := m.Open(model.Principal{ID: "u-1"})
	s2, _, _ := m.Open(model.Principal{ID: "u-2"})

	center := model.WashCenter{ID: "c1", Prices: model.ServicePrices{PickupDrop: 2500}}
	s1.Bookings.SelectWashCenter(center)
	s2.Bookings.SelectWashCenter(center)

	b1, err := s1.Bookings.CreateBooking()
	if err != nil {
		t.Fatalf("CreateBooking s1: %v", err)
	}
	b2, err := s2.Bookings.CreateBooking()
	if err != nil {
		t.Fatalf("CreateBooking s2: %v", err)
	}

	all := m.AllBookings()
	if len(all) != 2 {
		t.Fatalf("AllBookings = %d entries, want 2", len(all))
	}

	// FindBooking locates each booking in its owning session.
	owner, found, err := m.FindBooking(b1.ID)
	if err != nil || owner.ID != s1.ID || found.ID != b1.ID {
		t.Errorf("FindBooking(b1) = %v, %v, %v", owner, found, err)
	}
	if _, _, err := m.FindBooking(b2.ID); err != nil {
		t.Errorf("FindBooking(b2): %v", err)
	}
	if _, _, err := m.FindBooking("nope"); err == nil {
		t.Errorf("FindBooking(unknown) succeeded")
	}
}
