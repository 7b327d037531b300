package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reviewapp "bookify/internal/app/handlers/review"
	appoutbox "bookify/internal/app/outbox"
	"bookify/internal/domain/apartment"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/shared/clock"
	"bookify/internal/domain/shared/result"
	"bookify/internal/domain/user"
	"bookify/internal/infra/storage/memory"
)

var reviewTime = time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

func seedBooking(t *testing.T, repo *memory.BookingRepository, status domainbooking.Status) *domainbooking.Booking {
	t.Helper()
	b := &domainbooking.Booking{
		ID:          domainbooking.NewID(),
		ApartmentID: apartment.NewID(),
		UserID:      user.NewID(),
		Status:      status,
	}
	require.True(t, repo.Save(context.Background(), b).IsSuccess())
	return b
}

func newHandler(bookings *memory.BookingRepository, reviews *memory.ReviewRepository, box *memory.Outbox) *reviewapp.SubmitReviewHandler {
	return &reviewapp.SubmitReviewHandler{
		Bookings: bookings,
		Reviews:  reviews,
		Clock:    clock.Fixed{Instant: reviewTime},
		Outbox:   box,
		Encoder:  appoutbox.JSONEventEncoder{},
	}
}

func TestSubmitReviewForCompletedBooking(t *testing.T) {
	bookings := memory.NewBookingRepository()
	reviews := memory.NewReviewRepository()
	box := memory.NewOutbox()
	b := seedBooking(t, bookings, domainbooking.StatusCompleted)
	handler := newHandler(bookings, reviews, box)

	out, err := handler.Handle(context.Background(), reviewapp.SubmitReviewCommand{
		BookingID: string(b.ID),
		Rating:    5,
		Comment:   "spotless place",
	})

	require.NoError(t, err)
	res, ok := out.(result.Result[reviewapp.SubmitReviewResult])
	require.True(t, ok)
	require.True(t, res.IsSuccess())
	assert.NotEmpty(t, res.Value().ReviewID)

	listed := reviews.ListByApartment(context.Background(), b.ApartmentID)
	require.True(t, listed.IsSuccess())
	require.Len(t, listed.Value(), 1)
	assert.Equal(t, 5, listed.Value()[0].Rating.Value)
	assert.Equal(t, reviewTime, listed.Value()[0].CreatedOn)

	assert.Equal(t, 1, box.Pending())
}

func TestSubmitReviewRejectsActiveBooking(t *testing.T) {
	bookings := memory.NewBookingRepository()
	reviews := memory.NewReviewRepository()
	box := memory.NewOutbox()
	b := seedBooking(t, bookings, domainbooking.StatusConfirmed)
	handler := newHandler(bookings, reviews, box)

	out, err := handler.Handle(context.Background(), reviewapp.SubmitReviewCommand{
		BookingID: string(b.ID),
		Rating:    3,
		Comment:   "not done yet",
	})

	require.NoError(t, err)
	res := out.(result.Result[reviewapp.SubmitReviewResult])
	require.True(t, res.IsFailure())
	assert.Equal(t, "Review.NotEligible", res.Err().Code)
	assert.Equal(t, 0, box.Pending())
}

func TestSubmitReviewInvalidRatingIsDispatchError(t *testing.T) {
	bookings := memory.NewBookingRepository()
	handler := newHandler(bookings, memory.NewReviewRepository(), memory.NewOutbox())

	_, err := handler.Handle(context.Background(), reviewapp.SubmitReviewCommand{
		BookingID: "b-1",
		Rating:    9,
		Comment:   "off the scale",
	})

	require.Error(t, err)
}

func TestSubmitReviewUnknownBooking(t *testing.T) {
	bookings := memory.NewBookingRepository()
	handler := newHandler(bookings, memory.NewReviewRepository(), memory.NewOutbox())

	out, err := handler.Handle(context.Background(), reviewapp.SubmitReviewCommand{
		BookingID: "missing",
		Rating:    4,
		Comment:   "fine",
	})

	require.NoError(t, err)
	res := out.(result.Result[reviewapp.SubmitReviewResult])
	require.True(t, res.IsFailure())
	assert.Equal(t, "Booking.NotFound", res.Err().Code)
}
