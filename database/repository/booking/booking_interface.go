package bookingRepo

import (
	"context"

	"ruma/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking; a reused bookingId yields database.ErrDuplicate.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByBookingID retrieves a booking by its human-readable id.
	GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error)
	// FindByEmail lists the bookings made with an email address.
	FindByEmail(ctx context.Context, email string) ([]models.Booking, error)
	// FindByDate lists every booking on a date.
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
	// FindOverlapping lists bookings on date intersecting [start, end).
	FindOverlapping(ctx context.Context, date, start, end string) ([]models.Booking, error)
	// UpdateDetails overwrites the editable fields of a booking.
	UpdateDetails(ctx context.Context, bookingID string, details models.BookingDetails) error
	// DeleteByBookingID removes a booking and reports whether one existed.
	DeleteByBookingID(ctx context.Context, bookingID string) (bool, error)
}
