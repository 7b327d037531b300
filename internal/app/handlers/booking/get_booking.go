package booking

import (
	"context"
	"time"

	"bookify/internal/app/queries"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/shared/result"
)

const getBookingKey = "booking.get"

type GetBookingQuery struct{ BookingID string }

func (q GetBookingQuery) Key() string { return getBookingKey }

// BookingView is the read-side projection of a booking.
type BookingView struct {
	ID                string     `json:"id"`
	ApartmentID       string     `json:"apartment_id"`
	UserID            string     `json:"user_id"`
	Status            string     `json:"status"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
	PriceForPeriod    string     `json:"price_for_period"`
	CleaningFee       string     `json:"cleaning_fee"`
	AmenitiesUpCharge string     `json:"amenities_up_charge"`
	TotalPrice        string     `json:"total_price"`
	Currency          string     `json:"currency"`
	CreatedOn         time.Time  `json:"created_on"`
	ConfirmedOn       *time.Time `json:"confirmed_on,omitempty"`
	CancelledOn       *time.Time `json:"cancelled_on,omitempty"`
	CompletedOn       *time.Time `json:"completed_on,omitempty"`
	RejectedOn        *time.Time `json:"rejected_on,omitempty"`
}

type GetBookingHandler struct {
	Bookings domainbooking.Repository
}

func (h *GetBookingHandler) Handle(ctx context.Context, q queries.Query) (any, error) {
	query, ok := q.(GetBookingQuery)
	if !ok {
		return nil, queries.ErrUnexpectedQuery
	}

	loaded := h.Bookings.GetByID(ctx, domainbooking.ID(query.BookingID))
	if loaded.IsFailure() {
		return result.Failure[BookingView](loaded.Err()), nil
	}
	return result.Success(NewBookingView(loaded.Value())), nil
}

// NewBookingView projects an aggregate into its read model.
func NewBookingView(b *domainbooking.Booking) BookingView {
	return BookingView{
		ID:                string(b.ID),
		ApartmentID:       string(b.ApartmentID),
		UserID:            string(b.UserID),
		Status:            string(b.Status),
		StartDate:         b.Duration.Start,
		EndDate:           b.Duration.End,
		PriceForPeriod:    b.PriceForPeriod.Amount.String(),
		CleaningFee:       b.CleaningFee.Amount.String(),
		AmenitiesUpCharge: b.AmenitiesUpCharge.Amount.String(),
		TotalPrice:        b.TotalPrice.Amount.String(),
		Currency:          b.TotalPrice.Currency.Code(),
		CreatedOn:         b.CreatedOn,
		ConfirmedOn:       b.ConfirmedOn,
		CancelledOn:       b.CancelledOn,
		CompletedOn:       b.CompletedOn,
		RejectedOn:        b.RejectedOn,
	}
}
