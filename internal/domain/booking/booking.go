package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookify/internal/domain/apartment"
	"bookify/internal/domain/pricing"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/events"
	"bookify/internal/domain/shared/money"
	"bookify/internal/domain/shared/result"
	"bookify/internal/domain/user"
)

var (
	ErrApartmentRequired = errors.New("booking: apartment is required")
	ErrUserRequired      = errors.New("booking: user is required")
	ErrDurationRequired  = errors.New("booking: duration is required")
	ErrTimeRequired      = errors.New("booking: transition time is required")
	ErrPricingRequired   = errors.New("booking: pricing service is required")
)

type ID string

// NewID returns a fresh booking identity.
func NewID() ID { return ID(uuid.NewString()) }

type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusRejected  Status = "REJECTED"
)

// ActiveStatuses are the statuses that block an apartment's calendar.
var ActiveStatuses = []Status{StatusReserved, StatusConfirmed, StatusCompleted}

// PricingService quotes a stay. Satisfied by pricing.Service.
type PricingService interface {
	CalculatePrice(ap *apartment.Apartment, period daterange.DateRange) result.Result[pricing.Details]
}

// Booking is the aggregate root of the reservation lifecycle. Price
// components and duration are fixed at reservation time; Status moves only
// through the transition methods, each stamping its timestamp once and
// raising exactly one event.
type Booking struct {
	ID                ID
	ApartmentID       apartment.ID
	UserID            user.ID
	Duration          daterange.DateRange
	PriceForPeriod    money.Money
	CleaningFee       money.Money
	AmenitiesUpCharge money.Money
	TotalPrice        money.Money
	Status            Status
	CreatedOn         time.Time
	ConfirmedOn       *time.Time
	CancelledOn       *time.Time
	CompletedOn       *time.Time
	RejectedOn        *time.Time
	events.EventRecorder
}

// Reserve is the only way a booking comes to exist. It prices the stay,
// stamps the apartment's LastBookedOn and raises Reserved.
func Reserve(
	ap *apartment.Apartment,
	u *user.User,
	duration daterange.DateRange,
	now time.Time,
	pricingService PricingService,
) result.Result[*Booking] {
	if ap == nil {
		return result.Failure[*Booking](argumentError(ErrApartmentRequired))
	}
	if u == nil {
		return result.Failure[*Booking](argumentError(ErrUserRequired))
	}
	if duration == (daterange.DateRange{}) {
		return result.Failure[*Booking](argumentError(ErrDurationRequired))
	}
	if now.IsZero() {
		return result.Failure[*Booking](argumentError(ErrTimeRequired))
	}
	if pricingService == nil {
		return result.Failure[*Booking](argumentError(ErrPricingRequired))
	}

	priced := pricingService.CalculatePrice(ap, duration)
	if priced.IsFailure() {
		return result.Failure[*Booking](priced.Err())
	}
	details := priced.Value()

	b := &Booking{
		ID:                NewID(),
		ApartmentID:       ap.ID,
		UserID:            u.ID,
		Duration:          duration,
		PriceForPeriod:    details.PriceForPeriod,
		CleaningFee:       details.CleaningFee,
		AmenitiesUpCharge: details.AmenitiesUpCharge,
		TotalPrice:        details.TotalPrice,
		Status:            StatusReserved,
		CreatedOn:         now.UTC(),
	}
	b.Record(Reserved{BookingID: b.ID, ApartmentID: ap.ID, UserID: u.ID, Total: b.TotalPrice, At: b.CreatedOn})

	ap.MarkBooked(now)

	return result.Success(b)
}

// Confirm moves a reserved booking to confirmed.
func (b *Booking) Confirm(now time.Time) result.Result[result.Unit] {
	if now.IsZero() {
		return result.Failure[result.Unit](argumentError(ErrTimeRequired))
	}
	if b.Status != StatusReserved {
		return result.Failure[result.Unit](NotReserved(b.ID))
	}
	t := now.UTC()
	b.Status = StatusConfirmed
	b.ConfirmedOn = &t
	b.Record(Confirmed{BookingID: b.ID, At: t})
	return result.Ok()
}

// Reject declines a reserved booking.
func (b *Booking) Reject(now time.Time) result.Result[result.Unit] {
	if now.IsZero() {
		return result.Failure[result.Unit](argumentError(ErrTimeRequired))
	}
	if b.Status != StatusReserved {
		return result.Failure[result.Unit](NotReserved(b.ID))
	}
	t := now.UTC()
	b.Status = StatusRejected
	b.RejectedOn = &t
	b.Record(Rejected{BookingID: b.ID, At: t})
	return result.Ok()
}

// Complete closes out a reserved booking. The source system completes from
// RESERVED rather than CONFIRMED; kept as observed.
func (b *Booking) Complete(now time.Time) result.Result[result.Unit] {
	if now.IsZero() {
		return result.Failure[result.Unit](argumentError(ErrTimeRequired))
	}
	if b.Status != StatusReserved {
		return result.Failure[result.Unit](NotReserved(b.ID))
	}
	t := now.UTC()
	b.Status = StatusCompleted
	b.CompletedOn = &t
	b.Record(Completed{BookingID: b.ID, At: t})
	return result.Ok()
}

// Cancel withdraws a confirmed booking, but only before the stay begins.
func (b *Booking) Cancel(now time.Time) result.Result[result.Unit] {
	if now.IsZero() {
		return result.Failure[result.Unit](argumentError(ErrTimeRequired))
	}
	if b.Status != StatusConfirmed {
		return result.Failure[result.Unit](NotConfirmed(b.ID))
	}
	if daterange.DateOf(now).After(b.Duration.Start) {
		return result.Failure[result.Unit](AlreadyStarted(b.ID))
	}
	t := now.UTC()
	b.Status = StatusCancelled
	b.CancelledOn = &t
	b.Record(Cancelled{BookingID: b.ID, At: t})
	return result.Ok()
}

// Repository is the persistence contract the use cases depend on. Overlap
// detection is the repository's job: success with a nil booking means the
// range is free, an active conflict comes back as an Overlap failure.
type Repository interface {
	Add(ctx context.Context, b *Booking) result.Result[*Booking]
	GetByID(ctx context.Context, id ID) result.Result[*Booking]
	Save(ctx context.Context, b *Booking) result.Result[result.Unit]
	IsOverlapping(ctx context.Context, ap *apartment.Apartment, duration daterange.DateRange) result.Result[*Booking]
}

func argumentError(err error) result.Error {
	return result.MustError("Booking.InvalidArgument", err.Error(), nil)
}
