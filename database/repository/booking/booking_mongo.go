package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ruma/database"
	"ruma/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository backed by the "bookings" collection.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}

	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("bookings: failed to create indexes", zap.Error(err))
	}
	return repo
}

// newContext derives a per-call timeout from the caller's context.
func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "room", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

var chronological = bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("booking %s: %w", booking.BookingID, database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByBookingID retrieves a booking by its human-readable id.
func (r *MongoBookingRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", bookingID, database.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// FindByEmail lists the bookings made with an email address.
func (r *MongoBookingRepo) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"email": email})
}

// FindByDate lists every booking on a date.
func (r *MongoBookingRepo) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"date": date})
}

// FindOverlapping lists bookings on date whose [startTime, endTime) meets [start, end).
func (r *MongoBookingRepo) FindOverlapping(ctx context.Context, date, start, end string) ([]models.Booking, error) {
	filter := bson.M{
		"date":      date,
		"startTime": bson.M{"$lt": end},
		"endTime":   bson.M{"$gt": start},
	}
	return r.find(ctx, filter)
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(chronological))
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// UpdateDetails overwrites the editable fields of a booking with $set.
func (r *MongoBookingRepo) UpdateDetails(ctx context.Context, bookingID string, details models.BookingDetails) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"meetingTopic":        details.MeetingTopic,
		"numberOfAttendees":   details.NumberOfAttendees,
		"additionalEquipment": details.AdditionalEquipment,
		"reserverName":        details.ReserverName,
		"phoneNumber":         details.PhoneNumber,
		"email":               details.Email,
		"updatedAt":           time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"bookingId": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, database.ErrNotFound)
	}
	return nil
}

// DeleteByBookingID removes a booking document.
func (r *MongoBookingRepo) DeleteByBookingID(ctx context.Context, bookingID string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"bookingId": bookingID})
	if err != nil {
		return false, fmt.Errorf("failed to delete booking %s: %w", bookingID, err)
	}
	return result.DeletedCount > 0, nil
}
