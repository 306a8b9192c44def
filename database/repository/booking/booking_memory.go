package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ruma/database"
	"ruma/models"
)

// MemoryBookingRepo keeps bookings in process memory (DATABASE_DRIVER=memory).
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

// NewMemoryBookingRepo returns an empty in-memory BookingRepository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *MemoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.BookingID]; exists {
		return fmt.Errorf("booking %s: %w", booking.BookingID, database.ErrDuplicate)
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.BookingID] = *booking
	return nil
}

func (r *MemoryBookingRepo) GetByBookingID(_ context.Context, bookingID string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, database.ErrNotFound)
	}
	return &b, nil
}

func (r *MemoryBookingRepo) FindByEmail(_ context.Context, email string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.Email == email }), nil
}

func (r *MemoryBookingRepo) FindByDate(_ context.Context, date string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.Date == date }), nil
}

func (r *MemoryBookingRepo) FindOverlapping(_ context.Context, date, start, end string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.Overlaps(date, start, end) }), nil
}

func (r *MemoryBookingRepo) filter(keep func(models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].BookingID < out[j].BookingID
	})
	return out
}

func (r *MemoryBookingRepo) UpdateDetails(_ context.Context, bookingID string, details models.BookingDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s: %w", bookingID, database.ErrNotFound)
	}
	details.Apply(&b)
	b.UpdatedAt = time.Now()
	r.bookings[bookingID] = b
	return nil
}

func (r *MemoryBookingRepo) DeleteByBookingID(_ context.Context, bookingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[bookingID]; !ok {
		return false, nil
	}
	delete(r.bookings, bookingID)
	return true, nil
}
