package review

import (
	"context"
	"time"

	"bookify/internal/app/queries"
	domainapartment "bookify/internal/domain/apartment"
	domainreview "bookify/internal/domain/review"
	"bookify/internal/domain/shared/result"
)

const listReviewsKey = "review.list"

type ListReviewsQuery struct{ ApartmentID string }

func (q ListReviewsQuery) Key() string { return listReviewsKey }

type ReviewView struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedOn time.Time `json:"created_on"`
}

type ListReviewsHandler struct {
	Reviews domainreview.Repository
}

func (h *ListReviewsHandler) Handle(ctx context.Context, q queries.Query) (any, error) {
	query, ok := q.(ListReviewsQuery)
	if !ok {
		return nil, queries.ErrUnexpectedQuery
	}

	listed := h.Reviews.ListByApartment(ctx, domainapartment.ID(query.ApartmentID))
	if listed.IsFailure() {
		return result.Failure[[]ReviewView](listed.Err()), nil
	}

	views := make([]ReviewView, 0, len(listed.Value()))
	for _, r := range listed.Value() {
		views = append(views, ReviewView{
			ID:        string(r.ID),
			BookingID: string(r.BookingID),
			UserID:    string(r.UserID),
			Rating:    r.Rating.Value,
			Comment:   r.Comment.Value,
			CreatedOn: r.CreatedOn,
		})
	}
	return result.Success(views), nil
}
