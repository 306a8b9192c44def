package roomRepo

import (
	"context"

	"ruma/models"
)

// RoomRepository defines methods for room data access. Room ids are the hex
// form of the store-generated ObjectID; malformed ids yield database.ErrInvalidID.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetAll(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id string) (*models.Room, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
