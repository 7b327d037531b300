package booking

import (
	"context"
	"time"

	"bookify/internal/app/commands"
	"bookify/internal/app/outbox"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/shared/clock"
	"bookify/internal/domain/shared/result"
)

const (
	confirmBookingKey  = "booking.confirm"
	cancelBookingKey   = "booking.cancel"
	completeBookingKey = "booking.complete"
	rejectBookingKey   = "booking.reject"
)

type ConfirmBookingCommand struct{ BookingID string }

func (c ConfirmBookingCommand) Key() string { return confirmBookingKey }

type CancelBookingCommand struct{ BookingID string }

func (c CancelBookingCommand) Key() string { return cancelBookingKey }

type CompleteBookingCommand struct{ BookingID string }

func (c CompleteBookingCommand) Key() string { return completeBookingKey }

type RejectBookingCommand struct{ BookingID string }

func (c RejectBookingCommand) Key() string { return rejectBookingKey }

// TransitionHandler serves the four lifecycle commands that act on an
// already-loaded booking: confirm, cancel, complete, reject.
type TransitionHandler struct {
	Bookings domainbooking.Repository
	Clock    clock.Clock
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
}

func (h *TransitionHandler) Handle(ctx context.Context, cmd commands.Command) (any, error) {
	switch c := cmd.(type) {
	case ConfirmBookingCommand:
		return h.apply(ctx, c.BookingID, (*domainbooking.Booking).Confirm)
	case CancelBookingCommand:
		return h.apply(ctx, c.BookingID, (*domainbooking.Booking).Cancel)
	case CompleteBookingCommand:
		return h.apply(ctx, c.BookingID, (*domainbooking.Booking).Complete)
	case RejectBookingCommand:
		return h.apply(ctx, c.BookingID, (*domainbooking.Booking).Reject)
	default:
		return nil, commands.ErrUnexpectedCommand
	}
}

func (h *TransitionHandler) apply(
	ctx context.Context,
	id string,
	transition func(*domainbooking.Booking, time.Time) result.Result[result.Unit],
) (result.Result[result.Unit], error) {
	loaded := h.Bookings.GetByID(ctx, domainbooking.ID(id))
	if loaded.IsFailure() {
		return result.Failure[result.Unit](loaded.Err()), nil
	}
	b := loaded.Value()

	transitioned := transition(b, h.Clock.Now())
	if transitioned.IsFailure() {
		return transitioned, nil
	}

	if saved := h.Bookings.Save(ctx, b); saved.IsFailure() {
		return result.Failure[result.Unit](saved.Err()), nil
	}

	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, b.DomainEvents()); err != nil {
		return result.Result[result.Unit]{}, err
	}
	b.ClearDomainEvents()

	return result.Ok(), nil
}
