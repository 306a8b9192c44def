package adminRepo

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

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo creates an AdminRepository backed by the "admins" collection.
func NewMongoAdminRepo(db *mongo.Database) AdminRepository {
	repo := &MongoAdminRepo{coll: db.Collection("admins")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	index := mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := repo.coll.Indexes().CreateOne(ctx, index); err != nil {
		zap.L().Warn("admins: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	admin.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("admin %s: %w", admin.Username, database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *MongoAdminRepo) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("admin %s: %w", username, database.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch admin %s: %w", username, err)
	}
	return &admin, nil
}

func (r *MongoAdminRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return n, nil
}
