package model

import "fmt"

// BookingStatus is the lifecycle state of a booking.
//
// The machine is forward-moving with a single cancellation sink:
//
//	pending → accepted → in-progress → completed   (terminal)
//	pending|accepted|in-progress → cancelled       (terminal)
//
// Terminal bookings are immutable; the store rejects any further
// transition rather than relying on callers to behave.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusAccepted   BookingStatus = "accepted"
	StatusInProgress BookingStatus = "in-progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// allowedTransitions is the full legality table. A state missing a target
// means the transition is rejected.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending:    {StatusAccepted: true, StatusCancelled: true},
	StatusAccepted:   {StatusInProgress: true, StatusCancelled: true},
	StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseBookingStatus validates a wire-level status string.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
}

func (s BookingStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the move from s to next is legal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	targets, ok := allowedTransitions[s]
	if !ok {
		return false
	}
	return targets[next]
}
