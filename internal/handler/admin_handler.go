package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arjun/bikewash/internal/model"
	"github.com/arjun/bikewash/internal/service"
	"github.com/arjun/bikewash/internal/store"
)

// AdminHandler serves the admin dashboard: every booking across every
// session, and status progression.
type AdminHandler struct {
	sessions *service.SessionManager
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(sessions *service.SessionManager) *AdminHandler {
	return &AdminHandler{sessions: sessions}
}

// ListBookings handles GET /api/v1/admin/bookings
//
// Flattens bookings from all live sessions, oldest first.
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.AllBookings())
}

type statusBody struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/admin/bookings/{id}/status
//
// Moves a booking along pending, accepted, in-progress, completed, or
// cancels it. Illegal jumps and moves out of a settled booking are
// rejected with 409.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body statusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	status, err := model.ParseBookingStatus(body.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_status",
			"status must be pending, accepted, in-progress, completed, or cancelled")
		return
	}

	sess, _, err := h.sessions.FindBooking(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Booking not found.")
		return
	}

	booking, err := sess.Bookings.UpdateStatus(id, status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrBookingNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Booking not found.")
		case errors.Is(err, store.ErrBookingTerminal):
			writeError(w, http.StatusConflict, "already_settled", "This booking is already settled.")
		case errors.Is(err, store.ErrInvalidTransition):
			writeError(w, http.StatusConflict, "invalid_transition",
				"booking cannot move from its current status to "+string(status))
		default:
			log.Printf("[handler] update status: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "could not update booking")
		}
		return
	}

	log.Printf("[admin] booking %s → %s", booking.ID, booking.Status)
	writeJSON(w, http.StatusOK, booking)
}
