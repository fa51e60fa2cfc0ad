package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectDB opens the MongoDB deployment picked by MONGO_MODE, pings the
// primary and returns the database named by MONGO_DATABASE. Close it with
// db.Client().Disconnect.
func ConnectDB(ctx context.Context, cfg *AppConfig) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName("shopper-backend").
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to %s MongoDB: %w", cfg.MongoMode, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping %s MongoDB: %w", cfg.MongoMode, err)
	}

	log.Printf("Connected to %s MongoDB, database %q", cfg.MongoMode, cfg.MongoDatabase)
	return client.Database(cfg.MongoDatabase), nil
}
