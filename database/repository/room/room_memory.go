package roomRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ruma/database"
	"ruma/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRoomRepo keeps rooms in process memory, in insertion order.
type MemoryRoomRepo struct {
	mu    sync.RWMutex
	rooms []models.Room
}

func NewMemoryRoomRepo() *MemoryRoomRepo {
	return &MemoryRoomRepo{}
}

func (r *MemoryRoomRepo) Create(_ context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room.ID.IsZero() {
		room.ID = primitive.NewObjectID()
	}
	room.CreatedAt = time.Now()
	r.rooms = append(r.rooms, *room)
	return nil
}

func (r *MemoryRoomRepo) GetAll(_ context.Context) ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Room, len(r.rooms))
	copy(out, r.rooms)
	return out, nil
}

func (r *MemoryRoomRepo) GetByID(_ context.Context, id string) (*models.Room, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, room := range r.rooms {
		if room.ID == oid {
			found := room
			return &found, nil
		}
	}
	return nil, fmt.Errorf("room %s: %w", id, database.ErrNotFound)
}

func (r *MemoryRoomRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, room := range r.rooms {
		if room.ID == oid {
			r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
