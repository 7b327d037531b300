package apartment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookify/internal/domain/shared/money"
	"bookify/internal/domain/shared/result"
)

var (
	ErrIDRequired          = errors.New("apartment: id is required")
	ErrAddressRequired     = errors.New("apartment: address is required")
	ErrNameRequired        = errors.New("apartment: name is required")
	ErrDescriptionRequired = errors.New("apartment: description is required")
	ErrPriceRequired       = errors.New("apartment: price is required")
	ErrCleaningFeeRequired = errors.New("apartment: cleaning fee is required")
)

type ID string

// NewID returns a fresh apartment identity.
func NewID() ID { return ID(uuid.NewString()) }

// Apartment is a rentable unit. Price and CleaningFee may change after
// construction; everything else is fixed. LastBookedOn is stamped only by the
// reservation flow.
type Apartment struct {
	ID           ID
	Address      Address
	Name         Name
	Description  Description
	CleaningFee  money.Money
	Price        money.Money
	Amenities    []Amenity
	LastBookedOn *time.Time
}

type CreateParams struct {
	ID          ID
	Address     Address
	Name        Name
	Description Description
	CleaningFee money.Money
	Price       money.Money
	Amenities   []Amenity
}

// New constructs an apartment validating that every required component is set.
func New(params CreateParams) (*Apartment, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if params.Address == (Address{}) {
		return nil, ErrAddressRequired
	}
	if params.Name.Value == "" {
		return nil, ErrNameRequired
	}
	if params.Description.Value == "" {
		return nil, ErrDescriptionRequired
	}
	if params.Price == (money.Money{}) {
		return nil, ErrPriceRequired
	}
	if params.CleaningFee == (money.Money{}) {
		return nil, ErrCleaningFeeRequired
	}
	return &Apartment{
		ID:          params.ID,
		Address:     params.Address,
		Name:        params.Name,
		Description: params.Description,
		CleaningFee: params.CleaningFee,
		Price:       params.Price,
		Amenities:   append([]Amenity(nil), params.Amenities...),
	}, nil
}

// UpdatePrice replaces the nightly price; fee changes are a business reality.
func (a *Apartment) UpdatePrice(price money.Money) error {
	if price == (money.Money{}) {
		return ErrPriceRequired
	}
	a.Price = price
	return nil
}

// UpdateCleaningFee replaces the cleaning fee.
func (a *Apartment) UpdateCleaningFee(fee money.Money) error {
	if fee == (money.Money{}) {
		return ErrCleaningFeeRequired
	}
	a.CleaningFee = fee
	return nil
}

// MarkBooked records the moment the apartment was last reserved. Called by
// the booking reservation flow only.
func (a *Apartment) MarkBooked(now time.Time) {
	t := now.UTC()
	a.LastBookedOn = &t
}

// Repository is the persistence contract the use cases depend on.
type Repository interface {
	GetByID(ctx context.Context, id ID) result.Result[*Apartment]
	Save(ctx context.Context, apartment *Apartment) result.Result[result.Unit]
}

// NotFound is the coded failure for a missing apartment.
func NotFound(id ID) result.Error {
	return result.MustError("Apartment.NotFound", "The apartment was not found.",
		map[string]any{"apartmentId": string(id)})
}
