package apartment

import (
	"context"
	"time"

	"bookify/internal/app/queries"
	domainapartment "bookify/internal/domain/apartment"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/result"
)

const searchApartmentsKey = "apartment.search"

type SearchApartmentsQuery struct {
	StartDate time.Time
	EndDate   time.Time
}

func (q SearchApartmentsQuery) Key() string { return searchApartmentsKey }

// Searcher finds apartments with no active booking overlapping the range.
type Searcher interface {
	Search(ctx context.Context, duration daterange.DateRange) result.Result[[]*domainapartment.Apartment]
}

type SearchApartmentsHandler struct {
	Apartments Searcher
}

func (h *SearchApartmentsHandler) Handle(ctx context.Context, q queries.Query) (any, error) {
	query, ok := q.(SearchApartmentsQuery)
	if !ok {
		return nil, queries.ErrUnexpectedQuery
	}

	duration, err := daterange.New(query.StartDate, query.EndDate)
	if err != nil {
		return result.Result[[]ApartmentView]{}, err
	}

	found := h.Apartments.Search(ctx, duration)
	if found.IsFailure() {
		return result.Failure[[]ApartmentView](found.Err()), nil
	}

	views := make([]ApartmentView, 0, len(found.Value()))
	for _, ap := range found.Value() {
		views = append(views, NewApartmentView(ap))
	}
	return result.Success(views), nil
}
