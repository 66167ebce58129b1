package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arjun/bikewash/config"
	"github.com/arjun/bikewash/internal/model"
)

// ─── Payment Errors ─────────────────────────────────────────

var (
	// ErrPaymentNotFound is returned for unknown payment ids.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrPaymentNotPending is returned when confirming or dismissing a
	// payment that already reached an outcome.
	ErrPaymentNotPending = errors.New("payment already settled")

	// ErrInvalidPaymentMethod is returned for unknown methods.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// ─── Types ──────────────────────────────────────────────────

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodCash PaymentMethod = "cash"
	MethodUPI  PaymentMethod = "upi"
)

// IsValid reports whether the method is one of the known variants.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCard, MethodCash, MethodUPI:
		return true
	}
	return false
}

// PaymentStatus is the outcome state of a payment attempt. Every
// pending payment reaches exactly one of the terminal outcomes:
// succeeded, dismissed, or cancelled.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentDismissed PaymentStatus = "dismissed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment records one payment attempt for a booking.
type Payment struct {
	ID         string        `json:"id"`
	BookingID  string        `json:"booking_id"`
	Method     PaymentMethod `json:"method"`
	Quote      Quote         `json:"quote"`
	Currency   string        `json:"currency"`
	Status     PaymentStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	SettledAt  *time.Time    `json:"settled_at,omitempty"`
}

// CheckoutOptions is what the browser hands to the provider widget:
// the publishable key, the amount, and prefill contact fields. The
// provider is never verified server-side; there is no backend on its
// side of the boundary to verify against.
type CheckoutOptions struct {
	Key      string `json:"key"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Prefill  struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
	} `json:"prefill"`
}

// ─── PaymentService ─────────────────────────────────────────

// PaymentService tracks payment attempts in memory.
//
// Card and cash payments run a simulated provider round-trip: a fixed
// processing delay after which the payment settles as succeeded. The
// legacy timer was fire-and-forget; here each pending payment is a
// cancellable task with explicit succeeded/dismissed/cancelled
// outcomes, so navigating away (Dismiss) really aborts it.
//
// UPI hands off to the provider's hosted page and settles only via the
// Confirm callback.
type PaymentService struct {
	cfg     config.PaymentConfig
	pricing *PricingService

	mu       sync.RWMutex
	payments map[string]*paymentEntry
}

type paymentEntry struct {
	payment Payment
	cancel  context.CancelFunc // nil once settled
}

// NewPaymentService creates a payment service.
func NewPaymentService(cfg config.PaymentConfig, pricing *PricingService) *PaymentService {
	return &PaymentService{
		cfg:      cfg,
		pricing:  pricing,
		payments: make(map[string]*paymentEntry),
	}
}

// Checkout opens a payment attempt for the booking and returns the
// provider options for the client widget.
func (s *PaymentService) Checkout(b model.Booking, method PaymentMethod) (Payment, CheckoutOptions, error) {
	if !method.IsValid() {
		return Payment{}, CheckoutOptions{}, ErrInvalidPaymentMethod
	}

	quote := s.pricing.QuoteBooking(b)
	p := Payment{
		ID:        uuid.NewString(),
		BookingID: b.ID,
		Method:    method,
		Quote:     quote,
		Currency:  s.cfg.Currency,
		Status:    PaymentPending,
		CreatedAt: time.Now(),
	}

	entry := &paymentEntry{payment: p}
	s.mu.Lock()
	s.payments[p.ID] = entry
	s.mu.Unlock()

	if method == MethodCard || method == MethodCash {
		ctx, cancel := context.WithCancel(context.Background())
		s.mu.Lock()
		entry.cancel = cancel
		s.mu.Unlock()
		go s.process(ctx, p.ID)
	}

	opts := CheckoutOptions{
		Key:      s.cfg.ProviderKey,
		Amount:   quote.TotalCents,
		Currency: s.cfg.Currency,
	}
	opts.Prefill.Name = b.CustomerDetails.Name
	opts.Prefill.Contact = b.CustomerDetails.Phone

	log.Printf("[payment] opened %s for booking %s (%s, %d %s)",
		p.ID, b.ID, method, quote.TotalCents, s.cfg.Currency)
	return p, opts, nil
}

// process simulates the provider round-trip for card/cash: wait out
// the processing delay, then settle as succeeded unless the task was
// cancelled in the meantime.
func (s *PaymentService) process(ctx context.Context, id string) {
	timer := time.NewTimer(s.cfg.ProcessingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		if _, err := s.settle(id, PaymentSucceeded); err == nil {
			log.Printf("[payment] %s settled: succeeded", id)
		}
	case <-ctx.Done():
		// Settled (or cancelled) elsewhere; nothing to do.
	}
}

// Confirm is the provider success callback.
func (s *PaymentService) Confirm(id string) (Payment, error) {
	p, err := s.settle(id, PaymentSucceeded)
	if err == nil {
		log.Printf("[payment] %s confirmed by provider", id)
	}
	return p, err
}

// Dismiss is the provider dismiss/failure callback. It also aborts a
// pending simulated round-trip.
func (s *PaymentService) Dismiss(id string) (Payment, error) {
	p, err := s.settle(id, PaymentDismissed)
	if err == nil {
		log.Printf("[payment] %s dismissed", id)
	}
	return p, err
}

// Cancel aborts a pending payment, e.g. when its booking is cancelled
// mid-checkout.
func (s *PaymentService) Cancel(id string) (Payment, error) {
	return s.settle(id, PaymentCancelled)
}

// Get returns a payment by id.
func (s *PaymentService) Get(id string) (Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.payments[id]
	if !ok {
		return Payment{}, ErrPaymentNotFound
	}
	return entry.payment, nil
}

// settle moves a pending payment to a terminal outcome exactly once.
func (s *PaymentService) settle(id string, outcome PaymentStatus) (Payment, error) {
	s.mu.Lock()
	entry, ok := s.payments[id]
	if !ok {
		s.mu.Unlock()
		return Payment{}, ErrPaymentNotFound
	}
	if entry.payment.Status != PaymentPending {
		p := entry.payment
		s.mu.Unlock()
		return p, ErrPaymentNotPending
	}

	now := time.Now()
	entry.payment.Status = outcome
	entry.payment.SettledAt = &now
	cancel := entry.cancel
	entry.cancel = nil
	p := entry.payment
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return p, nil
}
