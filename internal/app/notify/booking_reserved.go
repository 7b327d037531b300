// Package notify reacts to domain events after they are persisted. Delivery
// is best effort: a handler that cannot complete simply stops, since event
// handling has no return channel.
package notify

import (
	"context"
	"log/slog"

	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/shared/result"
	"bookify/internal/domain/user"
)

// EmailSender delivers a message to a recipient address.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) result.Result[result.Unit]
}

// BookingReservedHandler emails the guest once their reservation is stored.
type BookingReservedHandler struct {
	Bookings domainbooking.Repository
	Users    user.Repository
	Email    EmailSender
	Logger   *slog.Logger
}

func (h *BookingReservedHandler) BookingReserved(ctx context.Context, event domainbooking.Reserved) {
	loaded := h.Bookings.GetByID(ctx, event.BookingID)
	if loaded.IsFailure() {
		h.debug("reserved notification skipped", "booking_id", event.BookingID, "code", loaded.Err().Code)
		return
	}

	getUser := h.Users.GetByID(ctx, loaded.Value().UserID)
	if getUser.IsFailure() {
		h.debug("reserved notification skipped", "booking_id", event.BookingID, "code", getUser.Err().Code)
		return
	}

	sent := h.Email.Send(ctx, getUser.Value().Email.Value,
		"Booking reserved",
		"You have 10 minutes to confirm this booking.")
	if sent.IsFailure() {
		h.debug("reserved notification failed", "booking_id", event.BookingID, "code", sent.Err().Code)
	}
}

func (h *BookingReservedHandler) debug(msg string, args ...any) {
	if h.Logger != nil {
		h.Logger.Debug(msg, args...)
	}
}
