package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"bookify/internal/domain/apartment"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/money"
	"bookify/internal/domain/shared/result"
)

// Details breaks a stay price into its components. TotalPrice equals the sum
// of the other three.
type Details struct {
	PriceForPeriod    money.Money
	CleaningFee       money.Money
	AmenitiesUpCharge money.Money
	TotalPrice        money.Money
}

// ErrComponentRequired signals a missing price component.
var ErrComponentRequired = errors.New("pricing: every price component is required")

// NewDetails validates that every component is present.
func NewDetails(priceForPeriod, cleaningFee, amenitiesUpCharge, totalPrice money.Money) (Details, error) {
	for _, m := range []money.Money{priceForPeriod, cleaningFee, amenitiesUpCharge, totalPrice} {
		if m == (money.Money{}) {
			return Details{}, ErrComponentRequired
		}
	}
	return Details{
		PriceForPeriod:    priceForPeriod,
		CleaningFee:       cleaningFee,
		AmenitiesUpCharge: amenitiesUpCharge,
		TotalPrice:        totalPrice,
	}, nil
}

// Service computes the price of a stay. The surcharge table is configuration:
// each amenity present contributes its rate once, rates are summed before
// multiplying by the period price.
type Service struct {
	rates map[apartment.Amenity]decimal.Decimal
}

func NewService(rates map[apartment.Amenity]decimal.Decimal) *Service {
	if rates == nil {
		rates = DefaultRates()
	}
	return &Service{rates: rates}
}

// DefaultRates is the production surcharge table.
func DefaultRates() map[apartment.Amenity]decimal.Decimal {
	return map[apartment.Amenity]decimal.Decimal{
		apartment.AmenityGardenView:      decimal.NewFromFloat(0.05),
		apartment.AmenityMountainView:    decimal.NewFromFloat(0.05),
		apartment.AmenityAirConditioning: decimal.NewFromFloat(0.01),
		apartment.AmenityParking:         decimal.NewFromFloat(0.01),
	}
}

// CalculatePrice turns an apartment and a stay period into a price breakdown.
// The apartment's nightly price and cleaning fee must share a currency; there
// is no conversion step.
func (s *Service) CalculatePrice(ap *apartment.Apartment, period daterange.DateRange) result.Result[Details] {
	if ap == nil {
		return result.Failure[Details](errApartmentRequired)
	}
	if period == (daterange.DateRange{}) {
		return result.Failure[Details](errPeriodRequired)
	}

	priceForPeriod := ap.Price.MulInt(int64(period.DurationInDays()))

	upChargeRate := decimal.Zero
	seen := make(map[apartment.Amenity]struct{}, len(ap.Amenities))
	for _, amenity := range ap.Amenities {
		if _, ok := seen[amenity]; ok {
			continue
		}
		seen[amenity] = struct{}{}
		if rate, ok := s.rates[amenity]; ok {
			upChargeRate = upChargeRate.Add(rate)
		}
	}
	amenitiesUpCharge := priceForPeriod.MulRate(upChargeRate)

	total, err := priceForPeriod.Add(ap.CleaningFee)
	if err != nil {
		return result.Failure[Details](currencyMismatch(err))
	}
	total, err = total.Add(amenitiesUpCharge)
	if err != nil {
		return result.Failure[Details](currencyMismatch(err))
	}

	details, err := NewDetails(priceForPeriod, ap.CleaningFee, amenitiesUpCharge, total)
	if err != nil {
		return result.Failure[Details](result.MustError("Pricing.InvalidComponents", err.Error(), nil))
	}
	return result.Success(details)
}

var (
	errApartmentRequired = result.MustError("Pricing.ApartmentRequired",
		"An apartment is required to calculate a price.", nil)
	errPeriodRequired = result.MustError("Pricing.PeriodRequired",
		"A stay period is required to calculate a price.", nil)
)

func currencyMismatch(err error) result.Error {
	return result.MustError("Pricing.CurrencyMismatch", err.Error(), nil)
}
