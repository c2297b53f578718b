// Package mongodb implements the event and booking repositories on MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"devevent/internal/database"
	"devevent/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	eventsCollection   = "events"
	bookingsCollection = "bookings"

	connectTimeout = 10 * time.Second
)

// DatabaseSource resolves the database handle, connecting on first use.
// *database.Lazy[*mongo.Database] satisfies it.
type DatabaseSource interface {
	Get(ctx context.Context) (*mongo.Database, error)
}

// NewLazyDatabase returns a handle that connects to uri on first use, pings
// the deployment and makes sure the indexes exist before handing out dbName.
func NewLazyDatabase(uri, dbName string, logger *slog.Logger) *database.Lazy[*mongo.Database] {
	open := func(ctx context.Context) (*mongo.Database, error) {
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().
			ApplyURI(uri).
			SetServerSelectionTimeout(connectTimeout))
		if err != nil {
			return nil, fmt.Errorf("%w: mongo connect: %w", domain.ErrConnectivity, err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, fmt.Errorf("%w: mongo ping: %w", domain.ErrConnectivity, err)
		}
		db := client.Database(dbName)
		if err := EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, err
		}
		logger.Info("mongodb connected", "database", dbName)
		return db, nil
	}
	closeFn := func(ctx context.Context, db *mongo.Database) error {
		return db.Client().Disconnect(ctx)
	}
	return database.NewLazy(open, closeFn)
}

// EnsureIndexes creates the unique slug index, the listing order index and
// the booking lookup index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(eventsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, Options: options.Index().SetName("created_at_desc")},
		{Keys: bson.D{{Key: "tags", Value: 1}}, Options: options.Index().SetName("tags")},
	})
	if err != nil {
		return fmt.Errorf("create event indexes: %w", mapError(err))
	}
	_, err = db.Collection(bookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventId", Value: 1}},
		Options: options.Index().SetName("event_id"),
	})
	if err != nil {
		return fmt.Errorf("create booking indexes: %w", mapError(err))
	}
	return nil
}

func collection(ctx context.Context, src DatabaseSource, name string) (*mongo.Collection, error) {
	db, err := src.Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return db.Collection(name), nil
}
