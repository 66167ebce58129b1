// Package model contains domain models for the bike wash booking service.
// Bookings and sessions live in process memory; wash centers are reference
// data loaded from PostgreSQL.
package model

import "time"

// ─── Enums ──────────────────────────────────────────────────

// ServiceType selects how the bike reaches the wash center.
type ServiceType string

const (
	ServicePickup     ServiceType = "pickup"
	ServiceDrop       ServiceType = "drop"
	ServicePickupDrop ServiceType = "pickupDrop"
)

// IsValid reports whether the service type is one of the known variants.
func (s ServiceType) IsValid() bool {
	switch s {
	case ServicePickup, ServiceDrop, ServicePickupDrop:
		return true
	}
	return false
}

// ─── Principal ──────────────────────────────────────────────

// Principal is the identity considered signed in for a session.
// Absence of a Principal means "guest".
type Principal struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"is_admin"`
}

// ─── Draft details ──────────────────────────────────────────

// CustomerDetails is the free-form contact block edited during the
// booking flow. No cross-field invariants.
type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// BikeDetails describes the bike to be washed.
type BikeDetails struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Color              string `json:"color"`
}

// CustomerDetailsPatch carries a shallow-merge update: nil fields are
// left untouched.
type CustomerDetailsPatch struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// BikeDetailsPatch is the shallow-merge update for BikeDetails.
type BikeDetailsPatch struct {
	Name               *string `json:"name,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	Color              *string `json:"color,omitempty"`
}

// ─── Wash centers ───────────────────────────────────────────

// ServicePrices holds the per-service-type price in cents.
type ServicePrices struct {
	Pickup     int `json:"pickup"`
	Drop       int `json:"drop"`
	PickupDrop int `json:"pickupDrop"`
}

// For returns the price for the given service type in cents.
func (p ServicePrices) For(t ServiceType) int {
	switch t {
	case ServicePickup:
		return p.Pickup
	case ServiceDrop:
		return p.Drop
	default:
		return p.PickupDrop
	}
}

// Location is a WGS-84 geographic point.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WashCenter is reference data, read-only to the booking flow.
// DistanceKm is filled in per request when the caller supplies a location.
type WashCenter struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Address    string        `json:"address"`
	Rating     float64       `json:"rating"`
	Location   Location      `json:"location"`
	DistanceKm float64       `json:"distance_km,omitempty"`
	Prices     ServicePrices `json:"prices"`
}

// ─── Booking ────────────────────────────────────────────────

// Booking is an immutable snapshot of the draft state at creation time,
// plus a mutable status driven by the transition table in status.go.
// Later edits to the draft never change a created Booking.
type Booking struct {
	ID              string          `json:"id"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	BikeDetails     BikeDetails     `json:"bike_details"`
	WashCenter      WashCenter      `json:"wash_center"`
	ServiceType     ServiceType     `json:"service_type"`
	Status          BookingStatus   `json:"status"`
	PickupTime      time.Time       `json:"pickup_time"`
	DropoffTime     time.Time       `json:"dropoff_time"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ─── Feedback ───────────────────────────────────────────────

// Feedback is a post-payment rating left for a booking.
type Feedback struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
