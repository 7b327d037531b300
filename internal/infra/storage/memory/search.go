package memory

import (
	"context"
	"sort"

	domainapartment "bookify/internal/domain/apartment"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/result"
)

// ApartmentSearch answers availability queries against the in-memory stores.
type ApartmentSearch struct {
	Apartments *ApartmentRepository
	Bookings   *BookingRepository
}

func (s *ApartmentSearch) Search(ctx context.Context, duration daterange.DateRange) result.Result[[]*domainapartment.Apartment] {
	s.Apartments.mu.RLock()
	candidates := make([]*domainapartment.Apartment, 0, len(s.Apartments.items))
	for _, ap := range s.Apartments.items {
		candidates = append(candidates, ap)
	}
	s.Apartments.mu.RUnlock()

	s.Bookings.mu.RLock()
	defer s.Bookings.mu.RUnlock()
	available := make([]*domainapartment.Apartment, 0, len(candidates))
	for _, ap := range candidates {
		if s.Bookings.findOverlap(ap.ID, duration) == nil {
			available = append(available, ap)
		}
	}
	sort.Slice(available, func(i, j int) bool {
		return available[i].ID < available[j].ID
	})
	return result.Success(available)
}
