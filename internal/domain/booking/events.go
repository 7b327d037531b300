package booking

import (
	"time"

	"bookify/internal/domain/apartment"
	"bookify/internal/domain/shared/money"
	"bookify/internal/domain/user"
)

type Reserved struct {
	BookingID   ID
	ApartmentID apartment.ID
	UserID      user.ID
	Total       money.Money
	At          time.Time
}

func (e Reserved) EventName() string     { return "booking.reserved" }
func (e Reserved) AggregateID() string   { return string(e.BookingID) }
func (e Reserved) OccurredAt() time.Time { return e.At }

type Confirmed struct {
	BookingID ID
	At        time.Time
}

func (e Confirmed) EventName() string     { return "booking.confirmed" }
func (e Confirmed) AggregateID() string   { return string(e.BookingID) }
func (e Confirmed) OccurredAt() time.Time { return e.At }

type Rejected struct {
	BookingID ID
	At        time.Time
}

func (e Rejected) EventName() string     { return "booking.rejected" }
func (e Rejected) AggregateID() string   { return string(e.BookingID) }
func (e Rejected) OccurredAt() time.Time { return e.At }

type Completed struct {
	BookingID ID
	At        time.Time
}

func (e Completed) EventName() string     { return "booking.completed" }
func (e Completed) AggregateID() string   { return string(e.BookingID) }
func (e Completed) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	BookingID ID
	At        time.Time
}

func (e Cancelled) EventName() string     { return "booking.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.BookingID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }
