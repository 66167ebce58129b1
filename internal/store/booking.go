package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arjun/bikewash/internal/model"
)

// ─── Booking Store Errors ───────────────────────────────────

var (
	// ErrNoCenterSelected is returned when a booking is created before
	// a wash center has been chosen.
	ErrNoCenterSelected = errors.New("no wash center selected")

	// ErrBookingNotFound is returned when the booking id matches nothing
	// in the history.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingTerminal is returned when mutating a completed or
	// cancelled booking.
	ErrBookingTerminal = errors.New("booking is in a terminal state")

	// ErrInvalidTransition is returned when the target status is not
	// reachable from the current one.
	ErrInvalidTransition = errors.New("illegal status transition")

	// ErrNoActiveBooking is returned when cancelling with no current
	// booking tracked.
	ErrNoActiveBooking = errors.New("no active booking")

	// ErrInvalidServiceType is returned for unknown service types.
	ErrInvalidServiceType = errors.New("invalid service type")
)

// Fixed offsets from the creation instant; never recomputed.
const (
	PickupOffset  = 30 * time.Minute
	DropoffOffset = 120 * time.Minute
)

// ─── Draft ──────────────────────────────────────────────────

// Draft is a read-only view of the scratch state the next booking will
// be created from.
type Draft struct {
	Customer    model.CustomerDetails `json:"customer_details"`
	Bike        model.BikeDetails     `json:"bike_details"`
	Center      *model.WashCenter     `json:"wash_center,omitempty"`
	ServiceType model.ServiceType     `json:"service_type"`
}

// ─── BookingStore ───────────────────────────────────────────

// BookingStore owns the scratch booking draft, the creation algorithm,
// the booking history, and status transitions for one session.
//
// Bookings are snapshotted by value at creation: later draft edits must
// not retroactively change a created booking. The history keeps
// insertion (creation) order. The "current" booking is a pointer into
// the same history, never a separate entity.
type BookingStore struct {
	mu          sync.RWMutex
	customer    model.CustomerDetails
	bike        model.BikeDetails
	center      *model.WashCenter
	serviceType model.ServiceType
	bookings    []model.Booking
	currentID   string

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int

	// Injected for tests; default to time.Now and uuid.
	now   func() time.Time
	newID func() string
}

// NewBookingStore returns a store with an empty draft. The service type
// defaults to pickup+drop, matching the most common flow.
func NewBookingStore() *BookingStore {
	return &BookingStore{
		serviceType: model.ServicePickupDrop,
		subs:        make(map[int]func()),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// ─── Draft mutation ─────────────────────────────────────────

// UpdateCustomerDetails shallow-merges the provided fields into the
// draft. Nil fields are left untouched. No validation; always succeeds.
func (s *BookingStore) UpdateCustomerDetails(p model.CustomerDetailsPatch) {
	s.mu.Lock()
	if p.Name != nil {
		s.customer.Name = *p.Name
	}
	if p.Phone != nil {
		s.customer.Phone = *p.Phone
	}
	if p.Address != nil {
		s.customer.Address = *p.Address
	}
	s.mu.Unlock()
	s.notify()
}

// UpdateBikeDetails shallow-merges the provided fields into the draft.
func (s *BookingStore) UpdateBikeDetails(p model.BikeDetailsPatch) {
	s.mu.Lock()
	if p.Name != nil {
		s.bike.Name = *p.Name
	}
	if p.RegistrationNumber != nil {
		s.bike.RegistrationNumber = *p.RegistrationNumber
	}
	if p.Color != nil {
		s.bike.Color = *p.Color
	}
	s.mu.Unlock()
	s.notify()
}

// SelectWashCenter stores the chosen center by value.
func (s *BookingStore) SelectWashCenter(c model.WashCenter) {
	s.mu.Lock()
	center := c
	s.center = &center
	s.mu.Unlock()
	s.notify()
}

// SetServiceType assigns the service type for the next booking.
func (s *BookingStore) SetServiceType(t model.ServiceType) error {
	if !t.IsValid() {
		return ErrInvalidServiceType
	}
	s.mu.Lock()
	s.serviceType = t
	s.mu.Unlock()
	s.notify()
	return nil
}

// Draft returns a copy of the scratch state.
func (s *BookingStore) Draft() Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := Draft{
		Customer:    s.customer,
		Bike:        s.bike,
		ServiceType: s.serviceType,
	}
	if s.center != nil {
		center := *s.center
		d.Center = &center
	}
	return d
}

// ─── Creation ───────────────────────────────────────────────

// CreateBooking snapshots the current draft into a new pending booking,
// appends it to the history, and marks it current.
//
// Pickup and dropoff times are fixed offsets from the creation instant
// and are never recomputed. Two calls with identical draft state yield
// two distinct bookings (no idempotence).
//
// Creating without a selected center is rejected: the legacy flow let a
// nil center through, which broke the payment quote downstream.
func (s *BookingStore) CreateBooking() (model.Booking, error) {
	s.mu.Lock()
	if s.center == nil {
		s.mu.Unlock()
		return model.Booking{}, ErrNoCenterSelected
	}

	createdAt := s.now()
	b := model.Booking{
		ID:              s.newID(),
		CustomerDetails: s.customer,
		BikeDetails:     s.bike,
		WashCenter:      *s.center,
		ServiceType:     s.serviceType,
		Status:          model.StatusPending,
		PickupTime:      createdAt.Add(PickupOffset),
		DropoffTime:     createdAt.Add(DropoffOffset),
		CreatedAt:       createdAt,
	}
	s.bookings = append(s.bookings, b)
	s.currentID = b.ID
	s.mu.Unlock()

	s.notify()
	return b, nil
}

// ─── Reads ──────────────────────────────────────────────────

// Bookings returns the full history, in creation order. The slice and
// its elements are copies; callers cannot mutate store state through it.
func (s *BookingStore) Bookings() []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Booking returns the booking with the given id.
func (s *BookingStore) Booking(id string) (model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			return s.bookings[i], nil
		}
	}
	return model.Booking{}, ErrBookingNotFound
}

// CurrentBooking returns the booking the session is acting on, if any.
func (s *BookingStore) CurrentBooking() (model.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentID == "" {
		return model.Booking{}, false
	}
	for i := range s.bookings {
		if s.bookings[i].ID == s.currentID {
			return s.bookings[i], true
		}
	}
	return model.Booking{}, false
}

// ─── Status transitions ─────────────────────────────────────

// UpdateStatus moves a booking to the given status, enforcing the
// transition table. Terminal bookings are immutable. The current-booking
// view reads from the same history slot, so it stays consistent
// automatically.
func (s *BookingStore) UpdateStatus(id string, status model.BookingStatus) (model.Booking, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return model.Booking{}, ErrBookingNotFound
	}

	from := s.bookings[idx].Status
	if from.IsTerminal() {
		s.mu.Unlock()
		return model.Booking{}, ErrBookingTerminal
	}
	if !from.CanTransitionTo(status) {
		s.mu.Unlock()
		return model.Booking{}, ErrInvalidTransition
	}

	s.bookings[idx].Status = status
	b := s.bookings[idx]
	s.mu.Unlock()

	s.notify()
	return b, nil
}

// CancelBooking cancels the current booking and clears the current
// pointer. The booking itself stays in the history.
func (s *BookingStore) CancelBooking() (model.Booking, error) {
	s.mu.RLock()
	id := s.currentID
	s.mu.RUnlock()
	if id == "" {
		return model.Booking{}, ErrNoActiveBooking
	}

	b, err := s.UpdateStatus(id, model.StatusCancelled)
	if err != nil {
		return model.Booking{}, err
	}

	s.mu.Lock()
	if s.currentID == id {
		s.currentID = ""
	}
	s.mu.Unlock()
	s.notify()
	return b, nil
}

// ─── Subscription ───────────────────────────────────────────

// Subscribe registers fn to run after every mutation. The returned
// function unsubscribes.
func (s *BookingStore) Subscribe(fn func()) func() {
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

func (s *BookingStore) notify() {
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
