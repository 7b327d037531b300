package memory

import (
	"context"
	"sync"

	domainapartment "bookify/internal/domain/apartment"
	domainbooking "bookify/internal/domain/booking"
	"bookify/internal/domain/shared/daterange"
	"bookify/internal/domain/shared/result"
	domainuser "bookify/internal/domain/user"
)

// ApartmentRepository is an in-memory implementation for tests and demo runs.
type ApartmentRepository struct {
	mu    sync.RWMutex
	items map[domainapartment.ID]*domainapartment.Apartment
}

func NewApartmentRepository() *ApartmentRepository {
	return &ApartmentRepository{items: make(map[domainapartment.ID]*domainapartment.Apartment)}
}

func (r *ApartmentRepository) GetByID(ctx context.Context, id domainapartment.ID) result.Result[*domainapartment.Apartment] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ap, ok := r.items[id]
	if !ok {
		return result.Failure[*domainapartment.Apartment](domainapartment.NotFound(id))
	}
	return result.Success(ap)
}

func (r *ApartmentRepository) Save(ctx context.Context, ap *domainapartment.Apartment) result.Result[result.Unit] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[ap.ID] = ap
	return result.Ok()
}

var _ domainapartment.Repository = (*ApartmentRepository)(nil)

// UserRepository keeps users in memory.
type UserRepository struct {
	mu    sync.RWMutex
	items map[domainuser.ID]*domainuser.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[domainuser.ID]*domainuser.User)}
}

func (r *UserRepository) GetByID(ctx context.Context, id domainuser.ID) result.Result[*domainuser.User] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.items[id]
	if !ok {
		return result.Failure[*domainuser.User](domainuser.NotFound(id))
	}
	return result.Success(u)
}

func (r *UserRepository) Add(ctx context.Context, u *domainuser.User) result.Result[result.Unit] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[u.ID] = u
	return result.Ok()
}

var _ domainuser.Repository = (*UserRepository)(nil)

// BookingRepository keeps bookings in memory and owns overlap detection:
// the check and the insert share one lock, so a racing reservation cannot
// slip between them.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.ID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.ID]*domainbooking.Booking)}
}

func (r *BookingRepository) Add(ctx context.Context, b *domainbooking.Booking) result.Result[*domainbooking.Booking] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conflict := r.findOverlap(b.ApartmentID, b.Duration); conflict != nil {
		return result.Failure[*domainbooking.Booking](domainbooking.Overlap(conflict.ID))
	}
	r.items[b.ID] = b
	return result.Success(b)
}

func (r *BookingRepository) GetByID(ctx context.Context, id domainbooking.ID) result.Result[*domainbooking.Booking] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return result.Failure[*domainbooking.Booking](domainbooking.NotFound(id))
	}
	return result.Success(b)
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) result.Result[result.Unit] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = b
	return result.Ok()
}

func (r *BookingRepository) IsOverlapping(ctx context.Context, ap *domainapartment.Apartment, duration daterange.DateRange) result.Result[*domainbooking.Booking] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if conflict := r.findOverlap(ap.ID, duration); conflict != nil {
		return result.Failure[*domainbooking.Booking](domainbooking.Overlap(conflict.ID))
	}
	return result.Success[*domainbooking.Booking](nil)
}

func (r *BookingRepository) findOverlap(apartmentID domainapartment.ID, duration daterange.DateRange) *domainbooking.Booking {
	for _, existing := range r.items {
		if existing.ApartmentID != apartmentID {
			continue
		}
		if !isActive(existing.Status) {
			continue
		}
		if existing.Duration.Overlaps(duration) {
			return existing
		}
	}
	return nil
}

func isActive(status domainbooking.Status) bool {
	for _, active := range domainbooking.ActiveStatuses {
		if status == active {
			return true
		}
	}
	return false
}

var _ domainbooking.Repository = (*BookingRepository)(nil)
