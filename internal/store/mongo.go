package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

const mongoTimeout = 15 * time.Second

// LoadMongo fetches the five collections from MongoDB into an in-memory
// snapshot. The connection is closed once the snapshot is built; the store
// never reads from Mongo afterwards.
func LoadMongo(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)

	var data Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(loadCollection(gctx, db, "users", &data.Users))
	g.Go(loadCollection(gctx, db, "products", &data.Products))
	g.Go(loadCollection(gctx, db, "categories", &data.Categories))
	g.Go(loadCollection(gctx, db, "orders", &data.Orders))
	g.Go(loadCollection(gctx, db, "reviews", &data.Reviews))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return New(data), nil
}

func loadCollection[T any](ctx context.Context, db *mongo.Database, name string, dst *[]T) func() error {
	return func() error {
		cursor, err := db.Collection(name).Find(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("fetch %s: %w", name, err)
		}
		defer cursor.Close(ctx)

		if err := cursor.All(ctx, dst); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return nil
	}
}
