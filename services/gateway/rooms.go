package gateway

import (
	"context"
	"fmt"

	"ruma/models"

	"go.uber.org/zap"
)

func (g *DefaultGateway) InsertRoom(ctx context.Context, room *models.Room) error {
	if err := g.Rooms.Create(ctx, room); err != nil {
		g.logger().Error("InsertRoom: failed", zap.String("name", room.Name), zap.Error(err))
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

func (g *DefaultGateway) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := g.Rooms.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (g *DefaultGateway) FindRoomByID(ctx context.Context, roomID string) (*models.Room, error) {
	return g.Rooms.GetByID(ctx, roomID)
}

func (g *DefaultGateway) DeleteRoomByID(ctx context.Context, roomID string) (bool, error) {
	deleted, err := g.Rooms.DeleteByID(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("delete room: %w", err)
	}
	return deleted, nil
}
