package service

import (
	"errors"
	"testing"
	"time"

	"github.com/arjun/bikewash/config"
	"github.com/arjun/bikewash/internal/model"
)

func testPaymentService(delay time.Duration) *PaymentService {
	return NewPaymentService(config.PaymentConfig{
		ProviderKey:     "rzp_test_key",
		Currency:        "USD",
		ProcessingDelay: delay,
	}, NewPricingService(DefaultFeeConfig()))
}

func paymentBooking() model.Booking {
	return model.Booking{
		ID:          "bk-1",
		ServiceType: model.ServicePickupDrop,
		CustomerDetails: model.CustomerDetails{
			Name:  "Alice",
			Phone: "555",
		},
		WashCenter: model.WashCenter{
			ID:     "c1",
			Prices: model.ServicePrices{Pickup: 1500, Drop: 1500, PickupDrop: 2500},
		},
	}
}

func TestCheckout_Options(t *testing.T) {
	s := testPaymentService(time.Hour) // delay never fires in this test

	p, opts, err := s.Checkout(paymentBooking(), MethodCard)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if p.Status != PaymentPending {
		t.Errorf("status = %q, want pending", p.Status)
	}
	if opts.Key != "rzp_test_key" || opts.Currency != "USD" {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Amount != 3850 { // (2500 + 1000) × 1.10
		t.Errorf("amount = %d, want 3850", opts.Amount)
	}
	if opts.Prefill.Name != "Alice" || opts.Prefill.Contact != "555" {
		t.Errorf("prefill = %+v", opts.Prefill)
	}
}

func TestCheckout_InvalidMethod(t *testing.T) {
	s := testPaymentService(time.Hour)
	if _, _, err := s.Checkout(paymentBooking(), "cheque"); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Errorf("err = %v, want ErrInvalidPaymentMethod", err)
	}
}

// Card payments settle as succeeded after the processing delay.
func TestCardPayment_SettlesAfterDelay(t *testing.T) {
	s := testPaymentService(20 * time.Millisecond)

	p, _, err := s.Checkout(paymentBooking(), MethodCard)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := s.Get(p.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Status == PaymentSucceeded {
			if got.SettledAt == nil {
				t.Errorf("settled payment has no SettledAt")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("payment still %q after deadline", got.Status)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Dismissing a pending card payment aborts the simulated round-trip:
// the delay elapsing afterwards must not flip it to succeeded.
func TestDismiss_AbortsPendingPayment(t *testing.T) {
	s := testPaymentService(30 * time.Millisecond)

	p, _, err := s.Checkout(paymentBooking(), MethodCard)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	dismissed, err := s.Dismiss(p.ID)
	if err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if dismissed.Status != PaymentDismissed {
		t.Errorf("status = %q, want dismissed", dismissed.Status)
	}

	time.Sleep(80 * time.Millisecond)
	got, _ := s.Get(p.ID)
	if got.Status != PaymentDismissed {
		t.Errorf("status after delay = %q, want dismissed to stick", got.Status)
	}
}

// UPI settles only through the provider callback.
func TestUPIPayment_ConfirmCallback(t *testing.T) {
	s := testPaymentService(10 * time.Millisecond)

	p, _, err := s.Checkout(paymentBooking(), MethodUPI)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	// No simulated round-trip for UPI: still pending after the delay.
	time.Sleep(50 * time.Millisecond)
	got, _ := s.Get(p.ID)
	if got.Status != PaymentPending {
		t.Fatalf("upi payment settled without callback: %q", got.Status)
	}

	confirmed, err := s.Confirm(p.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.Status != PaymentSucceeded {
		t.Errorf("status = %q, want succeeded", confirmed.Status)
	}
}

// A payment reaches exactly one outcome.
func TestSettleExactlyOnce(t *testing.T) {
	s := testPaymentService(time.Hour)

	p, _, _ := s.Checkout(paymentBooking(), MethodUPI)
	if _, err := s.Confirm(p.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if _, err := s.Dismiss(p.ID); !errors.Is(err, ErrPaymentNotPending) {
		t.Errorf("Dismiss after Confirm: err = %v, want ErrPaymentNotPending", err)
	}
	if _, err := s.Confirm(p.ID); !errors.Is(err, ErrPaymentNotPending) {
		t.Errorf("double Confirm: err = %v, want ErrPaymentNotPending", err)
	}
}

func TestGet_Unknown(t *testing.T) {
	s := testPaymentService(time.Hour)
	if _, err := s.Get("nope"); !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("err = %v, want ErrPaymentNotFound", err)
	}
}
