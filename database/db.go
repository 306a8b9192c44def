package database

import (
	"context"
	"fmt"
	"time"

	"ruma/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

const connectTimeout = 10 * time.Second

// InitDB opens the MongoDB connection and waits for the primary to answer.
func InitDB(logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetAppName("ruma").
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping MongoDB: %w", err)
	}
	MongoClient = client
	logger.Info("connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))
	return nil
}

// Database returns the configured application database.
func Database() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Close disconnects the global client if one was opened.
func Close(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
