package repository

import (
	adminRepo "ruma/database/repository/admin"
	bookingRepo "ruma/database/repository/booking"
	roomRepo "ruma/database/repository/room"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the BookingRepository interface and constructors.
type BookingRepository = bookingRepo.BookingRepository

var (
	NewMongoBookingRepo  = bookingRepo.NewMongoBookingRepo
	NewMemoryBookingRepo = bookingRepo.NewMemoryBookingRepo
)

// Re-export the RoomRepository interface and constructors.
type RoomRepository = roomRepo.RoomRepository

var (
	NewMongoRoomRepo  = roomRepo.NewMongoRoomRepo
	NewMemoryRoomRepo = roomRepo.NewMemoryRoomRepo
)

// Re-export the AdminRepository interface and constructors.
type AdminRepository = adminRepo.AdminRepository

var (
	NewMongoAdminRepo  = adminRepo.NewMongoAdminRepo
	NewMemoryAdminRepo = adminRepo.NewMemoryAdminRepo
)

// Set groups the three repositories the bot persists to.
type Set struct {
	Bookings BookingRepository
	Rooms    RoomRepository
	Admins   AdminRepository
}

// NewMongoSet builds the MongoDB repositories on db.
func NewMongoSet(db *mongo.Database) Set {
	return Set{
		Bookings: NewMongoBookingRepo(db),
		Rooms:    NewMongoRoomRepo(db),
		Admins:   NewMongoAdminRepo(db),
	}
}

// NewMemorySet builds process-local repositories.
func NewMemorySet() Set {
	return Set{
		Bookings: NewMemoryBookingRepo(),
		Rooms:    NewMemoryRoomRepo(),
		Admins:   NewMemoryAdminRepo(),
	}
}
