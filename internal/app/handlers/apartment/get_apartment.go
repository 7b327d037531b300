package apartment

import (
	"context"
	"time"

	"bookify/internal/app/queries"
	domainapartment "bookify/internal/domain/apartment"
	"bookify/internal/domain/shared/result"
)

const getApartmentKey = "apartment.get"

type GetApartmentQuery struct{ ApartmentID string }

func (q GetApartmentQuery) Key() string { return getApartmentKey }

type ApartmentView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Street       string     `json:"street"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	Country      string     `json:"country"`
	PostalCode   string     `json:"postal_code"`
	Price        string     `json:"price"`
	CleaningFee  string     `json:"cleaning_fee"`
	Currency     string     `json:"currency"`
	Amenities    []string   `json:"amenities"`
	LastBookedOn *time.Time `json:"last_booked_on,omitempty"`
}

type GetApartmentHandler struct {
	Apartments domainapartment.Repository
}

func (h *GetApartmentHandler) Handle(ctx context.Context, q queries.Query) (any, error) {
	query, ok := q.(GetApartmentQuery)
	if !ok {
		return nil, queries.ErrUnexpectedQuery
	}

	loaded := h.Apartments.GetByID(ctx, domainapartment.ID(query.ApartmentID))
	if loaded.IsFailure() {
		return result.Failure[ApartmentView](loaded.Err()), nil
	}
	return result.Success(NewApartmentView(loaded.Value())), nil
}

func NewApartmentView(ap *domainapartment.Apartment) ApartmentView {
	amenities := make([]string, 0, len(ap.Amenities))
	for _, a := range ap.Amenities {
		amenities = append(amenities, string(a))
	}
	return ApartmentView{
		ID:           string(ap.ID),
		Name:         ap.Name.Value,
		Description:  ap.Description.Value,
		Street:       ap.Address.Street,
		City:         ap.Address.City,
		State:        ap.Address.State,
		Country:      ap.Address.Country,
		PostalCode:   ap.Address.PostalCode,
		Price:        ap.Price.Amount.String(),
		CleaningFee:  ap.CleaningFee.Amount.String(),
		Currency:     ap.Price.Currency.Code(),
		Amenities:    amenities,
		LastBookedOn: ap.LastBookedOn,
	}
}
