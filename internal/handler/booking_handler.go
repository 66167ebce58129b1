package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arjun/bikewash/internal/middleware"
	"github.com/arjun/bikewash/internal/model"
	"github.com/arjun/bikewash/internal/service"
	"github.com/arjun/bikewash/internal/store"
)

// BookingHandler exposes the session's booking draft and history.
type BookingHandler struct {
	centers *service.CenterService
}

// NewBookingHandler creates a booking handler.
func NewBookingHandler(centers *service.CenterService) *BookingHandler {
	return &BookingHandler{centers: centers}
}

// GetDraft handles GET /api/v1/booking/draft
func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())
	writeJSON(w, http.StatusOK, sess.Bookings.Draft())
}

// UpdateCustomer handles PUT /api/v1/booking/draft/customer
//
// Shallow-merges the provided fields; omitted fields are untouched.
// No validation, matching the form's free-text behavior.
func (h *BookingHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	var patch model.CustomerDetailsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	sess.Bookings.UpdateCustomerDetails(patch)
	writeJSON(w, http.StatusOK, sess.Bookings.Draft())
}

// UpdateBike handles PUT /api/v1/booking/draft/bike
func (h *BookingHandler) UpdateBike(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	var patch model.BikeDetailsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	sess.Bookings.UpdateBikeDetails(patch)
	writeJSON(w, http.StatusOK, sess.Bookings.Draft())
}

// SelectCenter handles PUT /api/v1/booking/draft/center/{id}
//
// Looks the center up in the catalog and stores the snapshot in the
// draft, so later catalog edits don't leak into the booking.
func (h *BookingHandler) SelectCenter(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())
	id := mux.Vars(r)["id"]

	center, err := h.centers.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCenterNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Wash center not found.")
			return
		}
		log.Printf("[handler] select center: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not load wash center")
		return
	}

	sess.Bookings.SelectWashCenter(center)
	writeJSON(w, http.StatusOK, sess.Bookings.Draft())
}

type serviceTypeBody struct {
	ServiceType string `json:"service_type"`
}

// SetServiceType handles PUT /api/v1/booking/draft/service-type
func (h *BookingHandler) SetServiceType(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	var body serviceTypeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if err := sess.Bookings.SetServiceType(model.ServiceType(body.ServiceType)); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_service_type",
			"service_type must be pickup, drop, or pickupDrop")
		return
	}
	writeJSON(w, http.StatusOK, sess.Bookings.Draft())
}

// Create handles POST /api/v1/bookings
//
// Snapshots the draft into a new pending booking. Returns 422 when no
// wash center has been selected yet.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	booking, err := sess.Bookings.CreateBooking()
	if err != nil {
		if errors.Is(err, store.ErrNoCenterSelected) {
			writeError(w, http.StatusUnprocessableEntity, "no_center_selected",
				"Select a wash center before booking.")
			return
		}
		log.Printf("[handler] create booking: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not create booking")
		return
	}

	log.Printf("[booking] created %s (center %s, %s)", booking.ID, booking.WashCenter.ID, booking.ServiceType)
	writeJSON(w, http.StatusCreated, booking)
}

// List handles GET /api/v1/bookings
//
// Returns the session's history in creation order.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())
	writeJSON(w, http.StatusOK, sess.Bookings.Bookings())
}

// Current handles GET /api/v1/bookings/current
//
// The legacy site redirected to the dashboard when no booking was
// active; the API signals it with 404 and lets the client decide.
func (h *BookingHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	booking, ok := sess.Bookings.CurrentBooking()
	if !ok {
		writeError(w, http.StatusNotFound, "no_active_booking", "No booking in progress.")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// CancelCurrent handles POST /api/v1/bookings/current/cancel
//
// Cancels the current booking and clears the current pointer; the
// booking stays in the history as cancelled.
func (h *BookingHandler) CancelCurrent(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	booking, err := sess.Bookings.CancelBooking()
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoActiveBooking):
			writeError(w, http.StatusNotFound, "no_active_booking", "No booking in progress.")
		case errors.Is(err, store.ErrBookingTerminal):
			writeError(w, http.StatusConflict, "already_settled", "This booking is already settled.")
		default:
			log.Printf("[handler] cancel booking: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "could not cancel booking")
		}
		return
	}

	log.Printf("[booking] cancelled %s", booking.ID)
	writeJSON(w, http.StatusOK, booking)
}
