package service

import (
	"testing"

	"github.com/arjun/bikewash/internal/model"
)

func quoteBooking(serviceType model.ServiceType) model.Booking {
	return model.Booking{
		ID:          "bk-1",
		ServiceType: serviceType,
		WashCenter: model.WashCenter{
			ID:     "c1",
			Prices: model.ServicePrices{Pickup: 1500, Drop: 1400, PickupDrop: 2500},
		},
	}
}

func TestQuoteBooking_PickupDrop(t *testing.T) {
	s := NewPricingService(DefaultFeeConfig())

	q := s.QuoteBooking(quoteBooking(model.ServicePickupDrop))

	// (2500 + 1000) × 1.10
	if q.ServiceCents != 2500 {
		t.Errorf("service = %d, want 2500", q.ServiceCents)
	}
	if q.SubtotalCents != 3500 {
		t.Errorf("subtotal = %d, want 3500", q.SubtotalCents)
	}
	if q.TaxCents != 350 {
		t.Errorf("tax = %d, want 350", q.TaxCents)
	}
	if q.TotalCents != 3850 {
		t.Errorf("total = %d, want 3850", q.TotalCents)
	}
}

func TestQuoteBooking_PerServiceType(t *testing.T) {
	s := NewPricingService(DefaultFeeConfig())

	cases := []struct {
		serviceType model.ServiceType
		wantService int
	}{
		{model.ServicePickup, 1500},
		{model.ServiceDrop, 1400},
		{model.ServicePickupDrop, 2500},
	}
	for _, c := range cases {
		q := s.QuoteBooking(quoteBooking(c.serviceType))
		if q.ServiceCents != c.wantService {
			t.Errorf("%s: service = %d, want %d", c.serviceType, q.ServiceCents, c.wantService)
		}
		subtotal := c.wantService + 1000
		wantTotal := subtotal + subtotal/10
		if q.TotalCents != wantTotal {
			t.Errorf("%s: total = %d, want %d", c.serviceType, q.TotalCents, wantTotal)
		}
	}
}

func TestQuoteBooking_TaxRounding(t *testing.T) {
	s := NewPricingService(FeeConfig{PickupDeliveryCents: 0, TaxRate: 0.10})

	b := quoteBooking(model.ServicePickup)
	b.WashCenter.Prices.Pickup = 1234 // 10% = 123.4 → 123
	q := s.QuoteBooking(b)
	if q.TaxCents != 123 {
		t.Errorf("tax = %d, want 123", q.TaxCents)
	}
	if q.TotalCents != 1357 {
		t.Errorf("total = %d, want 1357", q.TotalCents)
	}
}
