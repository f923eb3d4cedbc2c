package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/farebd/leasehold/api/internal/config"
)

// Database wraps the Mongo client and exposes the collections the
// marketplace uses.
type Database struct {
	client   *mongo.Client
	Listings *mongo.Collection
	Users    *mongo.Collection
	Messages *mongo.Collection
}

// NewMongo connects to the document store, verifies the connection with a
// ping, and returns a Database handle over the configured collections.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	// Verify the connection immediately so startup fails fast
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	db := client.Database(cfg.Database)
	return &Database{
		client:   client,
		Listings: db.Collection(cfg.ListingCollection),
		Users:    db.Collection(cfg.UserCollection),
		Messages: db.Collection(cfg.MessageCollection),
	}, nil
}

// Ping checks if the document store connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from the document store.
func (d *Database) Close(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	return d.client.Disconnect(ctx)
}
