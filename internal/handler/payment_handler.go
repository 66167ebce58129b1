package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arjun/bikewash/internal/middleware"
	"github.com/arjun/bikewash/internal/service"
)

// PaymentHandler drives checkout for the session's current booking.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler creates a payment handler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type checkoutBody struct {
	Method string `json:"method"`
}

type checkoutResponse struct {
	Payment service.Payment         `json:"payment"`
	Options service.CheckoutOptions `json:"options"`
}

// Checkout handles POST /api/v1/payments/checkout
//
// Opens a payment attempt for the session's current booking and
// returns the provider widget options.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	var body checkoutBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	booking, ok := sess.Bookings.CurrentBooking()
	if !ok {
		writeError(w, http.StatusConflict, "no_active_booking", "No booking in progress.")
		return
	}

	payment, opts, err := h.payments.Checkout(booking, service.PaymentMethod(body.Method))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPaymentMethod) {
			writeError(w, http.StatusBadRequest, "invalid_payment_method",
				"method must be card, cash, or upi")
			return
		}
		log.Printf("[handler] checkout: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not open payment")
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{Payment: payment, Options: opts})
}

// Confirm handles POST /api/v1/payments/{id}/confirm
//
// Provider success callback; settles the payment as succeeded.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.Confirm(mux.Vars(r)["id"])
	if err != nil {
		h.settleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// Dismiss handles POST /api/v1/payments/{id}/dismiss
//
// Provider dismiss callback; also aborts a pending simulated
// round-trip so a card payment dismissed mid-spinner never succeeds.
func (h *PaymentHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.Dismiss(mux.Vars(r)["id"])
	if err != nil {
		h.settleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// Get handles GET /api/v1/payments/{id}
//
// The client polls this while the simulated round-trip runs.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Payment not found.")
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) settleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Payment not found.")
	case errors.Is(err, service.ErrPaymentNotPending):
		writeError(w, http.StatusConflict, "already_settled", "This payment already reached an outcome.")
	default:
		log.Printf("[handler] settle payment: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not update payment")
	}
}
