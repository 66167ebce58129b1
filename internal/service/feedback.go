package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arjun/bikewash/internal/model"
)

// ErrInvalidRating is returned for ratings outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// FeedbackService collects post-payment ratings in memory, insertion
// order, same lifetime as the booking history.
type FeedbackService struct {
	mu    sync.RWMutex
	items []model.Feedback
}

// NewFeedbackService creates an empty feedback log.
func NewFeedbackService() *FeedbackService {
	return &FeedbackService{}
}

// Submit records feedback for a booking.
func (s *FeedbackService) Submit(bookingID string, rating int, comment string) (model.Feedback, error) {
	if rating < 1 || rating > 5 {
		return model.Feedback{}, ErrInvalidRating
	}

	f := model.Feedback{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.items = append(s.items, f)
	s.mu.Unlock()
	return f, nil
}

// List returns all feedback in submission order.
func (s *FeedbackService) List() []model.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Feedback, len(s.items))
	copy(out, s.items)
	return out
}
