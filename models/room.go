package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Room is a bookable meeting room.
type Room struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Location  string             `bson:"location" json:"location"`
	Capacity  int                `bson:"capacity" json:"capacity"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	Price     float64            `bson:"price" json:"price"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Listable reports whether the room carries the fields a room offer needs.
func (r Room) Listable() bool {
	return r.Name != "" && r.Location != "" && r.Capacity > 0
}
