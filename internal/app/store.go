package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/handlers"
	"github.com/vidtube/backend/internal/repositories"
)

// backend is an opened store together with its health probe and release hook.
type backend struct {
	store  repositories.Store
	health handlers.HealthChecker
	close  func(context.Context) error
}

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// openStore connects to the store selected by cfg.Store. Mongo indexes are ensured on open.
func openStore(ctx context.Context, cfg config.Config) (backend, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return backend{}, err
		}
		return backend{
			store:  repositories.NewPostgresStore(pool),
			health: pool,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil
	case config.StoreMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return backend{}, err
		}
		database := client.Database(cfg.MongoDatabase)
		if err := repositories.EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(context.Background())
			return backend{}, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return backend{
			store:  repositories.NewMongoStore(database),
			health: mongoPinger{client: client},
			close:  client.Disconnect,
		}, nil
	case config.StoreMemory:
		return backend{
			store: repositories.NewMemoryStore(),
			close: func(context.Context) error { return nil },
		}, nil
	default:
		return backend{}, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// migrateMongo ensures collections and indexes exist, or lists them for "status".
func migrateMongo(ctx context.Context, cfg config.Config, command string) error {
	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	database := client.Database(cfg.MongoDatabase)

	switch command {
	case "up", "":
		if err := repositories.EnsureMongoIndexes(ctx, database); err != nil {
			return err
		}
		fmt.Printf("ensured indexes on %s\n", cfg.MongoDatabase)
		return nil
	case "status":
		names, err := database.ListCollectionNames(ctx, bson.D{})
		if err != nil {
			return fmt.Errorf("list collections: %w", err)
		}
		sort.Strings(names)
		for _, name := range names {
			indexes, err := mongoIndexNames(ctx, database.Collection(name))
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", name, strings.Join(indexes, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}

func mongoIndexNames(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	specs, err := coll.Indexes().ListSpecifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indexes of %s: %w", coll.Name(), err)
	}
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	return names, nil
}
