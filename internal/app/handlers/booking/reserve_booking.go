package booking

import (
	"context"
	"time"

	"bookify/internal/app/commands"
	"bookify/internal/app/outbox"
	"bookify/internal/domain/apartment"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/shared/clock"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/result"
	"bookify/internal/domain/user"
)

const reserveBookingKey = "booking.reserve"

type ReserveBookingCommand struct {
	ApartmentID     string
	UserID          string
	StartDate       time.Time
	EndDate         time.Time
	IdempotencyKeyV string
}

func (c ReserveBookingCommand) Key() string { return reserveBookingKey }

func (c ReserveBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

type ReserveBookingResult struct {
	BookingID string `json:"booking_id"`
}

// ReservedNotifier reacts in-process to a successful reservation after it is
// persisted. Best effort; it has no return channel.
type ReservedNotifier interface {
	BookingReserved(ctx context.Context, event domainbooking.Reserved)
}

// ReserveBookingHandler runs the reservation use case: load collaborators,
// check for overlap, reserve, persist, then hand raised events to the outbox
// and the in-process notifier.
type ReserveBookingHandler struct {
	Apartments apartment.Repository
	Users      user.Repository
	Bookings   domainbooking.Repository
	Pricing    domainbooking.PricingService
	Clock      clock.Clock
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Notifier   ReservedNotifier
}

func (h *ReserveBookingHandler) Handle(ctx context.Context, cmd commands.Command) (any, error) {
	c, ok := cmd.(ReserveBookingCommand)
	if !ok {
		return nil, commands.ErrUnexpectedCommand
	}
	return h.reserve(ctx, c)
}

func (h *ReserveBookingHandler) reserve(ctx context.Context, cmd ReserveBookingCommand) (result.Result[ReserveBookingResult], error) {
	getApartment := h.Apartments.GetByID(ctx, apartment.ID(cmd.ApartmentID))
	if getApartment.IsFailure() {
		return result.Failure[ReserveBookingResult](getApartment.Err()), nil
	}
	getUser := h.Users.GetByID(ctx, user.ID(cmd.UserID))
	if getUser.IsFailure() {
		return result.Failure[ReserveBookingResult](getUser.Err()), nil
	}

	duration, err := daterange.New(cmd.StartDate, cmd.EndDate)
	if err != nil {
		return result.Result[ReserveBookingResult]{}, err
	}

	ap := getApartment.Value()
	overlap := h.Bookings.IsOverlapping(ctx, ap, duration)
	if overlap.IsFailure() {
		return result.Failure[ReserveBookingResult](overlap.Err()), nil
	}

	reserved := domainbooking.Reserve(ap, getUser.Value(), duration, h.Clock.Now(), h.Pricing)
	if reserved.IsFailure() {
		return result.Failure[ReserveBookingResult](reserved.Err()), nil
	}
	b := reserved.Value()

	if added := h.Bookings.Add(ctx, b); added.IsFailure() {
		return result.Failure[ReserveBookingResult](added.Err()), nil
	}
	if saved := h.Apartments.Save(ctx, ap); saved.IsFailure() {
		return result.Failure[ReserveBookingResult](saved.Err()), nil
	}

	raised := b.DomainEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, raised); err != nil {
		return result.Result[ReserveBookingResult]{}, err
	}
	b.ClearDomainEvents()

	if h.Notifier != nil {
		for _, event := range raised {
			if reservedEvent, ok := event.(domainbooking.Reserved); ok {
				h.Notifier.BookingReserved(ctx, reservedEvent)
			}
		}
	}

	return result.Success(ReserveBookingResult{BookingID: string(b.ID)}), nil
}
