package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookify/internal/domain/apartment"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/money"
	"bookify/internal/infra/storage/memory"
)

func storedApartment(t *testing.T, repo *memory.ApartmentRepository) *apartment.Apartment {
	t.Helper()
	addr, err := apartment.NewAddress("5 Hill St", "Porto", "Porto", "Portugal", "4000")
	require.NoError(t, err)
	name, err := apartment.NewName("Hill House")
	require.NoError(t, err)
	desc, err := apartment.NewDescription("quiet place uphill")
	require.NoError(t, err)
	ap, err := apartment.New(apartment.CreateParams{
		ID:          apartment.NewID(),
		Address:     addr,
		Name:        name,
		Description: desc,
		CleaningFee: money.Must(15, money.EUR),
		Price:       money.Must(60, money.EUR),
	})
	require.NoError(t, err)
	require.True(t, repo.Save(context.Background(), ap).IsSuccess())
	return ap
}

func rangeDays(t *testing.T, start time.Time, nights int) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(start, start.AddDate(0, 0, nights))
	require.NoError(t, err)
	return dr
}

func activeBooking(apartmentID apartment.ID, duration daterange.DateRange, status domainbooking.Status) *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:          domainbooking.NewID(),
		ApartmentID: apartmentID,
		Status:      status,
		Duration:    duration,
	}
}

func TestBookingRepositoryRejectsOverlappingAdd(t *testing.T) {
	apartments := memory.NewApartmentRepository()
	bookings := memory.NewBookingRepository()
	ap := storedApartment(t, apartments)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	first := activeBooking(ap.ID, rangeDays(t, start, 5), domainbooking.StatusReserved)
	require.True(t, bookings.Add(context.Background(), first).IsSuccess())

	second := activeBooking(ap.ID, rangeDays(t, start.AddDate(0, 0, 3), 5), domainbooking.StatusReserved)
	added := bookings.Add(context.Background(), second)
	require.True(t, added.IsFailure())
	assert.Equal(t, "Booking.Overlap", added.Err().Code)
	assert.Equal(t, string(first.ID), added.Err().Data["bookingId"])
}

func TestIsOverlappingIgnoresInactiveStatuses(t *testing.T) {
	apartments := memory.NewApartmentRepository()
	bookings := memory.NewBookingRepository()
	ap := storedApartment(t, apartments)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	duration := rangeDays(t, start, 5)

	cancelled := activeBooking(ap.ID, duration, domainbooking.StatusCancelled)
	require.True(t, bookings.Save(context.Background(), cancelled).IsSuccess())

	free := bookings.IsOverlapping(context.Background(), ap, duration)
	require.True(t, free.IsSuccess())
	assert.Nil(t, free.Value())
}

func TestIsOverlappingAllowsAdjacentRanges(t *testing.T) {
	apartments := memory.NewApartmentRepository()
	bookings := memory.NewBookingRepository()
	ap := storedApartment(t, apartments)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	existing := activeBooking(ap.ID, rangeDays(t, start, 5), domainbooking.StatusConfirmed)
	require.True(t, bookings.Add(context.Background(), existing).IsSuccess())

	adjacent := bookings.IsOverlapping(context.Background(), ap, rangeDays(t, start.AddDate(0, 0, 5), 3))
	require.True(t, adjacent.IsSuccess())

	overlapping := bookings.IsOverlapping(context.Background(), ap, rangeDays(t, start.AddDate(0, 0, 4), 3))
	require.True(t, overlapping.IsFailure())
	assert.Equal(t, "Booking.Overlap", overlapping.Err().Code)
}

func TestApartmentSearchExcludesBookedApartments(t *testing.T) {
	apartments := memory.NewApartmentRepository()
	bookings := memory.NewBookingRepository()
	booked := storedApartment(t, apartments)
	open := storedApartment(t, apartments)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	duration := rangeDays(t, start, 4)

	require.True(t, bookings.Add(context.Background(), activeBooking(booked.ID, duration, domainbooking.StatusReserved)).IsSuccess())

	search := &memory.ApartmentSearch{Apartments: apartments, Bookings: bookings}
	found := search.Search(context.Background(), duration)
	require.True(t, found.IsSuccess())
	require.Len(t, found.Value(), 1)
	assert.Equal(t, open.ID, found.Value()[0].ID)

	later := search.Search(context.Background(), rangeDays(t, start.AddDate(0, 1, 0), 4))
	require.True(t, later.IsSuccess())
	assert.Len(t, later.Value(), 2)
}

func TestIdempotencyStoreExpiresEntries(t *testing.T) {
	store := memory.NewIdempotencyStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "v"))
	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v", value)

	time.Sleep(20 * time.Millisecond)
	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}
