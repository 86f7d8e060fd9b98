package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cufc/member-api/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB wraps the MongoDB client and the application database handle.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// New connects to the document store and verifies the connection with a ping.
// A failure here is fatal at process startup.
func New(cfg *config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetAppName(cfg.App.Name)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to datastore: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping datastore: %w", err)
	}

	slog.Info("datastore connection established",
		"database", cfg.Mongo.Database,
		"connect_timeout", cfg.Mongo.ConnectTimeout.String(),
	)

	return &DB{
		client:   client,
		database: client.Database(cfg.Mongo.Database),
	}, nil
}

// Collection returns a handle to the named collection.
func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// Close disconnects from the datastore.
func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from datastore: %w", err)
	}

	slog.Info("datastore connection closed")
	return nil
}

// HealthCheck performs a connectivity check against the datastore.
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("datastore health check failed: %w", err)
	}
	return nil
}
