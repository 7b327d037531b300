package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingapp "bookify/internal/app/handlers/booking"
	appoutbox "bookify/internal/app/outbox"
	"bookify/internal/domain/apartment"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/pricing"
	"bookify/internal/domain/shared/clock"
	"bookify/internal/domain/shared/money"
	"bookify/internal/domain/shared/result"
	"bookify/internal/domain/user"
	"bookify/internal/infra/storage/memory"
)

var handlerTime = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

type capturedNotifier struct {
	events []domainbooking.Reserved
}

func (n *capturedNotifier) BookingReserved(ctx context.Context, event domainbooking.Reserved) {
	n.events = append(n.events, event)
}

type fixture struct {
	handler   *bookingapp.ReserveBookingHandler
	apartment *apartment.Apartment
	user      *user.User
	bookings  *memory.BookingRepository
	outbox    *memory.Outbox
	notifier  *capturedNotifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	apartments := memory.NewApartmentRepository()
	users := memory.NewUserRepository()
	bookings := memory.NewBookingRepository()
	box := memory.NewOutbox()
	notifier := &capturedNotifier{}

	addr, err := apartment.NewAddress("1 Harbor Rd", "Lisbon", "Lisbon", "Portugal", "1000")
	require.NoError(t, err)
	name, err := apartment.NewName("Harbor Flat")
	require.NoError(t, err)
	desc, err := apartment.NewDescription("two rooms by the water")
	require.NoError(t, err)
	ap, err := apartment.New(apartment.CreateParams{
		ID:          apartment.NewID(),
		Address:     addr,
		Name:        name,
		Description: desc,
		CleaningFee: money.Must(20, money.EUR),
		Price:       money.Must(80, money.EUR),
	})
	require.NoError(t, err)
	require.True(t, apartments.Save(context.Background(), ap).IsSuccess())

	first, err := user.NewFirstName("Grace")
	require.NoError(t, err)
	last, err := user.NewLastName("Hopper")
	require.NoError(t, err)
	email, err := user.NewEmail("grace@example.com")
	require.NoError(t, err)
	u, err := user.Create(first, last, email, handlerTime)
	require.NoError(t, err)
	u.ClearDomainEvents()
	require.True(t, users.Add(context.Background(), u).IsSuccess())

	return fixture{
		handler: &bookingapp.ReserveBookingHandler{
			Apartments: apartments,
			Users:      users,
			Bookings:   bookings,
			Pricing:    pricing.NewService(nil),
			Clock:      clock.Fixed{Instant: handlerTime},
			Outbox:     box,
			Encoder:    appoutbox.JSONEventEncoder{},
			Notifier:   notifier,
		},
		apartment: ap,
		user:      u,
		bookings:  bookings,
		outbox:    box,
		notifier:  notifier,
	}
}

func reserveCommand(f fixture) bookingapp.ReserveBookingCommand {
	return bookingapp.ReserveBookingCommand{
		ApartmentID: string(f.apartment.ID),
		UserID:      string(f.user.ID),
		StartDate:   handlerTime.AddDate(0, 0, 10),
		EndDate:     handlerTime.AddDate(0, 0, 15),
	}
}

func TestReserveBookingHappyPath(t *testing.T) {
	f := newFixture(t)

	out, err := f.handler.Handle(context.Background(), reserveCommand(f))

	require.NoError(t, err)
	res, ok := out.(result.Result[bookingapp.ReserveBookingResult])
	require.True(t, ok)
	require.True(t, res.IsSuccess())
	assert.NotEmpty(t, res.Value().BookingID)

	stored := f.bookings.GetByID(context.Background(), domainbooking.ID(res.Value().BookingID))
	require.True(t, stored.IsSuccess())
	assert.Equal(t, domainbooking.StatusReserved, stored.Value().Status)
	assert.Empty(t, stored.Value().DomainEvents(), "events cleared after recording")

	assert.Equal(t, 1, f.outbox.Pending())
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domainbooking.ID(res.Value().BookingID), f.notifier.events[0].BookingID)

	require.NotNil(t, f.apartment.LastBookedOn)
}

func TestReserveBookingRejectsOverlap(t *testing.T) {
	f := newFixture(t)

	first, err := f.handler.Handle(context.Background(), reserveCommand(f))
	require.NoError(t, err)
	require.True(t, first.(result.Result[bookingapp.ReserveBookingResult]).IsSuccess())

	second, err := f.handler.Handle(context.Background(), reserveCommand(f))
	require.NoError(t, err)
	res := second.(result.Result[bookingapp.ReserveBookingResult])
	require.True(t, res.IsFailure())
	assert.Equal(t, "Booking.Overlap", res.Err().Code)
}

func TestReserveBookingUnknownApartment(t *testing.T) {
	f := newFixture(t)
	cmd := reserveCommand(f)
	cmd.ApartmentID = "missing"

	out, err := f.handler.Handle(context.Background(), cmd)

	require.NoError(t, err)
	res := out.(result.Result[bookingapp.ReserveBookingResult])
	require.True(t, res.IsFailure())
	assert.Equal(t, "Apartment.NotFound", res.Err().Code)
}

func TestReserveBookingUnknownUser(t *testing.T) {
	f := newFixture(t)
	cmd := reserveCommand(f)
	cmd.UserID = "missing"

	out, err := f.handler.Handle(context.Background(), cmd)

	require.NoError(t, err)
	res := out.(result.Result[bookingapp.ReserveBookingResult])
	require.True(t, res.IsFailure())
	assert.Equal(t, "User.NotFound", res.Err().Code)
}

func TestReserveBookingInvalidRangeIsDispatchError(t *testing.T) {
	f := newFixture(t)
	cmd := reserveCommand(f)
	cmd.EndDate = cmd.StartDate

	_, err := f.handler.Handle(context.Background(), cmd)

	require.Error(t, err)
}

func TestTransitionHandlerConfirm(t *testing.T) {
	f := newFixture(t)
	out, err := f.handler.Handle(context.Background(), reserveCommand(f))
	require.NoError(t, err)
	id := out.(result.Result[bookingapp.ReserveBookingResult]).Value().BookingID

	transitions := &bookingapp.TransitionHandler{
		Bookings: f.bookings,
		Clock:    clock.Fixed{Instant: handlerTime.Add(time.Hour)},
		Outbox:   f.outbox,
		Encoder:  appoutbox.JSONEventEncoder{},
	}

	confirmed, err := transitions.Handle(context.Background(), bookingapp.ConfirmBookingCommand{BookingID: id})
	require.NoError(t, err)
	require.True(t, confirmed.(result.Result[result.Unit]).IsSuccess())

	stored := f.bookings.GetByID(context.Background(), domainbooking.ID(id))
	require.True(t, stored.IsSuccess())
	assert.Equal(t, domainbooking.StatusConfirmed, stored.Value().Status)
	assert.Equal(t, 2, f.outbox.Pending(), "reserved plus confirmed")

	again, err := transitions.Handle(context.Background(), bookingapp.ConfirmBookingCommand{BookingID: id})
	require.NoError(t, err)
	res := again.(result.Result[result.Unit])
	require.True(t, res.IsFailure())
	assert.Equal(t, "Booking.NotReserved", res.Err().Code)
}

func TestTransitionHandlerCancelBeforeStart(t *testing.T) {
	f := newFixture(t)
	out, err := f.handler.Handle(context.Background(), reserveCommand(f))
	require.NoError(t, err)
	id := out.(result.Result[bookingapp.ReserveBookingResult]).Value().BookingID

	transitions := &bookingapp.TransitionHandler{
		Bookings: f.bookings,
		Clock:    clock.Fixed{Instant: handlerTime.Add(time.Hour)},
		Outbox:   f.outbox,
		Encoder:  appoutbox.JSONEventEncoder{},
	}

	_, err = transitions.Handle(context.Background(), bookingapp.ConfirmBookingCommand{BookingID: id})
	require.NoError(t, err)

	cancelled, err := transitions.Handle(context.Background(), bookingapp.CancelBookingCommand{BookingID: id})
	require.NoError(t, err)
	require.True(t, cancelled.(result.Result[result.Unit]).IsSuccess())

	stored := f.bookings.GetByID(context.Background(), domainbooking.ID(id))
	assert.Equal(t, domainbooking.StatusCancelled, stored.Value().Status)
}

func TestTransitionHandlerMissingBooking(t *testing.T) {
	f := newFixture(t)
	transitions := &bookingapp.TransitionHandler{
		Bookings: f.bookings,
		Clock:    clock.Fixed{Instant: handlerTime},
		Outbox:   f.outbox,
		Encoder:  appoutbox.JSONEventEncoder{},
	}

	out, err := transitions.Handle(context.Background(), bookingapp.CompleteBookingCommand{BookingID: "missing"})
	require.NoError(t, err)
	res := out.(result.Result[result.Unit])
	require.True(t, res.IsFailure())
	assert.Equal(t, "Booking.NotFound", res.Err().Code)
}
