package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookify/internal/domain/apartment"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/money"
)

func testApartment(t *testing.T, price, cleaningFee int64, amenities ...apartment.Amenity) *apartment.Apartment {
	t.Helper()
	addr, err := apartment.NewAddress("1 Test St", "City", "State", "Country", "0000")
	require.NoError(t, err)
	name, err := apartment.NewName("Test Apartment")
	require.NoError(t, err)
	desc, err := apartment.NewDescription("desc")
	require.NoError(t, err)
	ap, err := apartment.New(apartment.CreateParams{
		ID:          apartment.NewID(),
		Address:     addr,
		Name:        name,
		Description: desc,
		CleaningFee: money.Must(cleaningFee, money.USD),
		Price:       money.Must(price, money.USD),
		Amenities:   amenities,
	})
	require.NoError(t, err)
	return ap
}

func period(t *testing.T, days int) daterange.DateRange {
	t.Helper()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	dr, err := daterange.New(start, start.AddDate(0, 0, days))
	require.NoError(t, err)
	return dr
}

func TestCalculatePriceBaseOnly(t *testing.T) {
	svc := NewService(nil)

	res := svc.CalculatePrice(testApartment(t, 100, 0), period(t, 3))

	require.True(t, res.IsSuccess())
	d := res.Value()
	assert.True(t, d.PriceForPeriod.Equal(money.Must(300, money.USD)))
	assert.True(t, d.AmenitiesUpCharge.Equal(money.ZeroIn(money.USD)))
	assert.True(t, d.CleaningFee.Equal(money.ZeroIn(money.USD)))
	assert.True(t, d.TotalPrice.Equal(money.Must(300, money.USD)))
}

func TestCalculatePriceSumsAllComponents(t *testing.T) {
	svc := NewService(nil)
	ap := testApartment(t, 80, 20, apartment.AmenityGardenView, apartment.AmenityParking)

	res := svc.CalculatePrice(ap, period(t, 5))

	require.True(t, res.IsSuccess())
	d := res.Value()
	assert.True(t, d.PriceForPeriod.Equal(money.Must(400, money.USD)))
	assert.True(t, d.CleaningFee.Equal(money.Must(20, money.USD)))
	assert.True(t, d.AmenitiesUpCharge.Equal(money.Must(24, money.USD)))
	assert.True(t, d.TotalPrice.Equal(money.Must(444, money.USD)))
}

func TestCalculatePriceAppliesAmenityUpCharge(t *testing.T) {
	svc := NewService(nil)
	ap := testApartment(t, 100, 0, apartment.AmenityGardenView, apartment.AmenityAirConditioning)

	res := svc.CalculatePrice(ap, period(t, 4))

	require.True(t, res.IsSuccess())
	d := res.Value()
	assert.True(t, d.PriceForPeriod.Equal(money.Must(400, money.USD)))
	assert.True(t, d.AmenitiesUpCharge.Equal(money.Must(24, money.USD)))
	assert.True(t, d.TotalPrice.Equal(money.Must(424, money.USD)))
}

func TestCalculatePriceIgnoresDuplicateAmenities(t *testing.T) {
	svc := NewService(nil)
	ap := testApartment(t, 100, 0, apartment.AmenityGardenView, apartment.AmenityGardenView)

	res := svc.CalculatePrice(ap, period(t, 2))

	require.True(t, res.IsSuccess())
	assert.True(t, res.Value().AmenitiesUpCharge.Equal(money.Must(10, money.USD)))
}

func TestCalculatePriceFailsOnAbsentArguments(t *testing.T) {
	svc := NewService(nil)

	res := svc.CalculatePrice(nil, period(t, 2))
	require.True(t, res.IsFailure())
	assert.Equal(t, "Pricing.ApartmentRequired", res.Err().Code)

	res = svc.CalculatePrice(testApartment(t, 100, 0), daterange.DateRange{})
	require.True(t, res.IsFailure())
	assert.Equal(t, "Pricing.PeriodRequired", res.Err().Code)
}

func TestCalculatePriceFailsOnCurrencyMismatch(t *testing.T) {
	svc := NewService(nil)
	ap := testApartment(t, 100, 0)
	ap.CleaningFee = money.Must(15, money.EUR)

	res := svc.CalculatePrice(ap, period(t, 2))

	require.True(t, res.IsFailure())
	assert.Equal(t, "Pricing.CurrencyMismatch", res.Err().Code)
}
