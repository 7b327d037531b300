package booking

import "bookify/internal/domain/shared/result"

// Coded failures for expected business-rule violations. Each carries the
// offending booking id so callers can map it to a user-facing message.

func NotReserved(id ID) result.Error {
	return result.MustError("Booking.NotReserved", "The booking has not been reserved.",
		map[string]any{"bookingId": string(id)})
}

func NotConfirmed(id ID) result.Error {
	return result.MustError("Booking.NotConfirmed", "The booking has not been confirmed.",
		map[string]any{"bookingId": string(id)})
}

func AlreadyStarted(id ID) result.Error {
	return result.MustError("Booking.AlreadyStarted", "The booking has already started.",
		map[string]any{"bookingId": string(id)})
}

func Overlap(conflictingID ID) result.Error {
	return result.MustError("Booking.Overlap", "This booking overlaps with an existing booking.",
		map[string]any{"bookingId": string(conflictingID)})
}

func NotFound(id ID) result.Error {
	return result.MustError("Booking.NotFound", "The booking was not found.",
		map[string]any{"bookingId": string(id)})
}
