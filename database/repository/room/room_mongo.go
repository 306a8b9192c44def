package roomRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ruma/database"
	"ruma/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRoomRepo implements RoomRepository using MongoDB.
type MongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo creates a RoomRepository backed by the "rooms" collection.
func NewMongoRoomRepo(db *mongo.Database) RoomRepository {
	return &MongoRoomRepo{coll: db.Collection("rooms")}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("room %q: %w", id, database.ErrInvalidID)
	}
	return oid, nil
}

// Create inserts a room and stores the generated id on it.
func (r *MongoRoomRepo) Create(ctx context.Context, room *models.Room) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	room.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, room)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		room.ID = oid
	}
	return nil
}

// GetAll lists rooms in insertion order.
func (r *MongoRoomRepo) GetAll(ctx context.Context) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

// GetByID retrieves a room by its hex id.
func (r *MongoRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("room %s: %w", id, database.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch room %s: %w", id, err)
	}
	return &room, nil
}

// DeleteByID removes a room and reports whether it existed.
func (r *MongoRoomRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete room %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}
