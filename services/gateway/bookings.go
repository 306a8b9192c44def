package gateway

import (
	"context"
	"errors"
	"fmt"

	"ruma/models"

	"go.uber.org/zap"
)

// InsertBooking stores a confirmed booking; the repository stamps createdAt
// and updatedAt.
func (g *DefaultGateway) InsertBooking(ctx context.Context, booking *models.Booking) error {
	if err := g.Bookings.Create(ctx, booking); err != nil {
		g.logger().Error("InsertBooking: failed", zap.String("bookingId", booking.BookingID), zap.Error(err))
		return fmt.Errorf("insert booking: %w", err)
	}
	g.logger().Info("booking saved", zap.String("bookingId", booking.BookingID), zap.String("room", booking.Room), zap.String("date", booking.Date))
	return nil
}

func (g *DefaultGateway) FindBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return g.Bookings.GetByBookingID(ctx, bookingID)
}

// BookingIDExists reports whether a stored booking already carries bookingID.
func (g *DefaultGateway) BookingIDExists(ctx context.Context, bookingID string) (bool, error) {
	_, err := g.Bookings.GetByBookingID(ctx, bookingID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// FindBookingsByEmail returns an empty slice, not an error, when the email
// has no bookings; a failed query is an error.
func (g *DefaultGateway) FindBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	bookings, err := g.Bookings.FindByEmail(ctx, email)
	if err != nil {
		g.logger().Error("FindBookingsByEmail: failed", zap.Error(err))
		return nil, fmt.Errorf("find bookings by email: %w", err)
	}
	return bookings, nil
}

func (g *DefaultGateway) FindBookingsByDate(ctx context.Context, date string) ([]models.Booking, error) {
	bookings, err := g.Bookings.FindByDate(ctx, date)
	if err != nil {
		g.logger().Error("FindBookingsByDate: failed", zap.String("date", date), zap.Error(err))
		return nil, fmt.Errorf("find bookings by date: %w", err)
	}
	return bookings, nil
}

func (g *DefaultGateway) FindBookingsOverlapping(ctx context.Context, date, start, end string) ([]models.Booking, error) {
	bookings, err := g.Bookings.FindOverlapping(ctx, date, start, end)
	if err != nil {
		return nil, fmt.Errorf("find overlapping bookings: %w", err)
	}
	return bookings, nil
}

func (g *DefaultGateway) UpdateBookingDetails(ctx context.Context, bookingID string, details models.BookingDetails) error {
	if err := g.Bookings.UpdateDetails(ctx, bookingID, details); err != nil {
		g.logger().Error("UpdateBookingDetails: failed", zap.String("bookingId", bookingID), zap.Error(err))
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// DeleteBookingByID is true iff a matching booking existed and was removed.
func (g *DefaultGateway) DeleteBookingByID(ctx context.Context, bookingID string) (bool, error) {
	deleted, err := g.Bookings.DeleteByBookingID(ctx, bookingID)
	if err != nil {
		g.logger().Error("DeleteBookingByID: failed", zap.String("bookingId", bookingID), zap.Error(err))
		return false, fmt.Errorf("delete booking: %w", err)
	}
	return deleted, nil
}

// AvailableRooms is every listable room whose name is not held by a booking
// overlapping [start, end) on date.
func (g *DefaultGateway) AvailableRooms(ctx context.Context, date, start, end string) ([]models.Room, error) {
	conflicting, err := g.FindBookingsOverlapping(ctx, date, start, end)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]struct{}, len(conflicting))
	for _, b := range conflicting {
		booked[b.Room] = struct{}{}
	}

	rooms, err := g.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	available := []models.Room{}
	for _, room := range rooms {
		if _, taken := booked[room.Name]; taken || !room.Listable() {
			continue
		}
		available = append(available, room)
	}
	g.logger().Debug("availability computed",
		zap.String("date", date), zap.String("start", start), zap.String("end", end),
		zap.Int("conflicting", len(conflicting)), zap.Int("available", len(available)))
	return available, nil
}
