package apartment

import (
	"errors"
	"strings"
)

var (
	ErrStreetBlank      = errors.New("apartment: street cannot be blank")
	ErrCityBlank        = errors.New("apartment: city cannot be blank")
	ErrStateBlank       = errors.New("apartment: state cannot be blank")
	ErrCountryBlank     = errors.New("apartment: country cannot be blank")
	ErrPostalCodeBlank  = errors.New("apartment: postal code cannot be blank")
	ErrNameBlank        = errors.New("apartment: name cannot be blank")
	ErrDescriptionBlank = errors.New("apartment: description cannot be blank")
)

// Address is the full postal address of an apartment.
type Address struct {
	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
}

func NewAddress(street, city, state, country, postalCode string) (Address, error) {
	if strings.TrimSpace(street) == "" {
		return Address{}, ErrStreetBlank
	}
	if strings.TrimSpace(city) == "" {
		return Address{}, ErrCityBlank
	}
	if strings.TrimSpace(state) == "" {
		return Address{}, ErrStateBlank
	}
	if strings.TrimSpace(country) == "" {
		return Address{}, ErrCountryBlank
	}
	if strings.TrimSpace(postalCode) == "" {
		return Address{}, ErrPostalCodeBlank
	}
	return Address{
		Street:     street,
		City:       city,
		State:      state,
		Country:    country,
		PostalCode: postalCode,
	}, nil
}

type Name struct {
	Value string
}

func NewName(value string) (Name, error) {
	if strings.TrimSpace(value) == "" {
		return Name{}, ErrNameBlank
	}
	return Name{Value: value}, nil
}

type Description struct {
	Value string
}

func NewDescription(value string) (Description, error) {
	if strings.TrimSpace(value) == "" {
		return Description{}, ErrDescriptionBlank
	}
	return Description{Value: value}, nil
}

// Amenity enumerates the extras an apartment can offer.
type Amenity string

const (
	AmenityWiFi            Amenity = "wifi"
	AmenityAirConditioning Amenity = "air_conditioning"
	AmenityParking         Amenity = "parking"
	AmenityPetFriendly     Amenity = "pet_friendly"
	AmenitySwimmingPool    Amenity = "swimming_pool"
	AmenityGym             Amenity = "gym"
	AmenitySpa             Amenity = "spa"
	AmenityTerrace         Amenity = "terrace"
	AmenityMountainView    Amenity = "mountain_view"
	AmenityGardenView      Amenity = "garden_view"
)
