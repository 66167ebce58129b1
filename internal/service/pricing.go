package service

import (
	"math"

	"github.com/arjun/bikewash/internal/model"
)

// ─── Fee Configuration ──────────────────────────────────────

// FeeConfig holds the charges applied on top of the center's
// per-service price.
type FeeConfig struct {
	PickupDeliveryCents int     // Flat doorstep pickup & delivery fee.
	TaxRate             float64 // Applied to (service + fee).
}

// DefaultFeeConfig mirrors the legacy checkout: flat $10 pickup &
// delivery, 10% tax on the subtotal.
func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		PickupDeliveryCents: 1000,
		TaxRate:             0.10,
	}
}

// ─── Quote ──────────────────────────────────────────────────

// Quote is the price breakdown shown on the payment screen. All
// amounts are in cents.
type Quote struct {
	ServiceCents        int `json:"service_cents"`
	PickupDeliveryCents int `json:"pickup_delivery_cents"`
	SubtotalCents       int `json:"subtotal_cents"`
	TaxCents            int `json:"tax_cents"`
	TotalCents          int `json:"total_cents"`
}

// ─── PricingService ─────────────────────────────────────────

// PricingService computes payment quotes for bookings.
//
// Formula (from the legacy payment screen):
//
//	total = (price-by-service-type + pickup&delivery fee) × (1 + tax)
type PricingService struct {
	config FeeConfig
}

// NewPricingService creates a pricing service with the given fees.
func NewPricingService(config FeeConfig) *PricingService {
	return &PricingService{config: config}
}

// QuoteBooking prices a booking from its snapshotted center and
// service type. The snapshot keeps quotes stable even if the catalog
// changes after creation.
func (s *PricingService) QuoteBooking(b model.Booking) Quote {
	service := b.WashCenter.Prices.For(b.ServiceType)
	subtotal := service + s.config.PickupDeliveryCents
	tax := int(math.Round(float64(subtotal) * s.config.TaxRate))

	return Quote{
		ServiceCents:        service,
		PickupDeliveryCents: s.config.PickupDeliveryCents,
		SubtotalCents:       subtotal,
		TaxCents:            tax,
		TotalCents:          subtotal + tax,
	}
}
