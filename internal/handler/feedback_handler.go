package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arjun/bikewash/internal/middleware"
	"github.com/arjun/bikewash/internal/service"
)

// FeedbackHandler collects post-payment ratings.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler creates a feedback handler.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type feedbackBody struct {
	BookingID string `json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Submit handles POST /api/v1/feedback
//
// The booking must belong to the caller's own history.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	var body feedbackBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if _, err := sess.Bookings.Booking(body.BookingID); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Booking not found.")
		return
	}

	f, err := h.feedback.Submit(body.BookingID, body.Rating, body.Comment)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			writeError(w, http.StatusBadRequest, "invalid_rating", "rating must be between 1 and 5")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "could not save feedback")
		return
	}
	writeJSON(w, http.StatusCreated, f)
}
