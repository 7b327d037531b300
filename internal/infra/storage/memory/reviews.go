package memory

import (
	"context"
	"sort"
	"sync"

	domainapartment "bookify/internal/domain/apartment"
	domainreview "bookify/internal/domain/review"
	"bookify/internal/domain/shared/result"
)

// ReviewRepository keeps reviews in memory.
type ReviewRepository struct {
	mu    sync.RWMutex
	items map[domainreview.ID]*domainreview.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{items: make(map[domainreview.ID]*domainreview.Review)}
}

func (r *ReviewRepository) Add(ctx context.Context, review *domainreview.Review) result.Result[result.Unit] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[review.ID] = review
	return result.Ok()
}

func (r *ReviewRepository) ListByApartment(ctx context.Context, id domainapartment.ID) result.Result[[]*domainreview.Review] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reviews := make([]*domainreview.Review, 0)
	for _, review := range r.items {
		if review.ApartmentID == id {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedOn.Before(reviews[j].CreatedOn)
	})
	return result.Success(reviews)
}

var _ domainreview.Repository = (*ReviewRepository)(nil)
