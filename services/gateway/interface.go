package gateway

import (
	"context"
	"errors"

	"ruma/database"
	adminRepo "ruma/database/repository/admin"
	bookingRepo "ruma/database/repository/booking"
	roomRepo "ruma/database/repository/room"
	"ruma/models"

	"go.uber.org/zap"
)

var (
	ErrNotFound           = database.ErrNotFound
	ErrDuplicate          = database.ErrDuplicate
	ErrInvalidID          = database.ErrInvalidID
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Gateway translates dialogue outcomes into reads and writes on the
// bookings, rooms and admins collections. Every failure is returned.
type Gateway interface {
	// Bookings
	InsertBooking(ctx context.Context, booking *models.Booking) error
	FindBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
	BookingIDExists(ctx context.Context, bookingID string) (bool, error)
	FindBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error)
	FindBookingsByDate(ctx context.Context, date string) ([]models.Booking, error)
	FindBookingsOverlapping(ctx context.Context, date, start, end string) ([]models.Booking, error)
	UpdateBookingDetails(ctx context.Context, bookingID string, details models.BookingDetails) error
	DeleteBookingByID(ctx context.Context, bookingID string) (bool, error)
	AvailableRooms(ctx context.Context, date, start, end string) ([]models.Room, error)

	// Rooms
	InsertRoom(ctx context.Context, room *models.Room) error
	ListRooms(ctx context.Context) ([]models.Room, error)
	FindRoomByID(ctx context.Context, roomID string) (*models.Room, error)
	DeleteRoomByID(ctx context.Context, roomID string) (bool, error)

	// Admins
	InsertAdmin(ctx context.Context, username, password, email string) error
	Authenticate(ctx context.Context, username, password string) (*models.Admin, error)
	EnsureAdmin(ctx context.Context, username, password, email string) (bool, error)
}

// DefaultGateway is the production implementation.
type DefaultGateway struct {
	Bookings bookingRepo.BookingRepository
	Rooms    roomRepo.RoomRepository
	Admins   adminRepo.AdminRepository
	Logger   *zap.Logger
	// HashCost is the bcrypt cost for admin passwords; zero means bcrypt.DefaultCost.
	HashCost int
}

func (g *DefaultGateway) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}
