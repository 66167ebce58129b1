package model

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusAccepted, StatusInProgress, true},
		{StatusAccepted, StatusCancelled, true},
		{StatusAccepted, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusAccepted, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCompleted, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("CanTransitionTo(%s → %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusAccepted, StatusInProgress} {
		if s.IsTerminal() {
			t.Errorf("%s reported terminal", s)
		}
	}
	for _, s := range []BookingStatus{StatusCompleted, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s not reported terminal", s)
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	if got, err := ParseBookingStatus("in-progress"); err != nil || got != StatusInProgress {
		t.Errorf("ParseBookingStatus(in-progress) = %q, %v", got, err)
	}
	if _, err := ParseBookingStatus("done"); err == nil {
		t.Errorf("ParseBookingStatus(done) accepted an unknown status")
	}
}

func TestServicePricesFor(t *testing.T) {
	p := ServicePrices{Pickup: 1500, Drop: 1400, PickupDrop: 2500}
	if got := p.For(ServicePickup); got != 1500 {
		t.Errorf("For(pickup) = %d", got)
	}
	if got := p.For(ServiceDrop); got != 1400 {
		t.Errorf("For(drop) = %d", got)
	}
	if got := p.For(ServicePickupDrop); got != 2500 {
		t.Errorf("For(pickupDrop) = %d", got)
	}
}
