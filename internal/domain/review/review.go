// Package review lets a guest rate an apartment once their booking is
// completed.
package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookify/internal/domain/apartment"
	"bookify/internal/domain/booking"
	"bookify/internal/domain/shared/events"
	"bookify/internal/domain/shared/result"
	"bookify/internal/domain/user"
)

var (
	ErrInvalidRating   = errors.New("review: rating must be between 1 and 5")
	ErrCommentBlank    = errors.New("review: comment cannot be blank")
	ErrBookingRequired = errors.New("review: booking is required")
)

type ID string

func NewID() ID { return ID(uuid.NewString()) }

// Rating is a score from 1 to 5 inclusive.
type Rating struct {
	Value int
}

func NewRating(value int) (Rating, error) {
	if value < 1 || value > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{Value: value}, nil
}

type Comment struct {
	Value string
}

func NewComment(value string) (Comment, error) {
	if strings.TrimSpace(value) == "" {
		return Comment{}, ErrCommentBlank
	}
	return Comment{Value: value}, nil
}

type Review struct {
	ID          ID
	ApartmentID apartment.ID
	BookingID   booking.ID
	UserID      user.ID
	Rating      Rating
	Comment     Comment
	CreatedOn   time.Time
	events.EventRecorder
}

// Submit creates a review for a completed booking. A booking in any other
// status is not eligible.
func Submit(b *booking.Booking, rating Rating, comment Comment, now time.Time) result.Result[*Review] {
	if b == nil || rating.Value == 0 || comment.Value == "" || now.IsZero() {
		return result.Failure[*Review](result.MustError("Review.InvalidArgument",
			"The review arguments are invalid.", nil))
	}
	if b.Status != booking.StatusCompleted {
		return result.Failure[*Review](NotEligible(b.ID))
	}
	r := &Review{
		ID:          NewID(),
		ApartmentID: b.ApartmentID,
		BookingID:   b.ID,
		UserID:      b.UserID,
		Rating:      rating,
		Comment:     comment,
		CreatedOn:   now.UTC(),
	}
	r.Record(Submitted{ReviewID: r.ID, BookingID: r.BookingID, ApartmentID: r.ApartmentID, Rating: r.Rating.Value, At: r.CreatedOn})
	return result.Success(r)
}

type Submitted struct {
	ReviewID    ID
	BookingID   booking.ID
	ApartmentID apartment.ID
	Rating      int
	At          time.Time
}

func (e Submitted) EventName() string     { return "review.submitted" }
func (e Submitted) AggregateID() string   { return string(e.ReviewID) }
func (e Submitted) OccurredAt() time.Time { return e.At }

type Repository interface {
	Add(ctx context.Context, review *Review) result.Result[result.Unit]
	ListByApartment(ctx context.Context, id apartment.ID) result.Result[[]*Review]
}

// NotEligible is the coded failure for reviewing a booking that has not
// completed.
func NotEligible(id booking.ID) result.Error {
	return result.MustError("Review.NotEligible", "The booking is not eligible for a review.",
		map[string]any{"bookingId": string(id)})
}
