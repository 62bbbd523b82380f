package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/models"
)

// TestMongoStoreContract runs against a live server named by VIDTUBE_TEST_MONGO_URI.
// Every subtest gets its own throwaway database.
func TestMongoStoreContract(t *testing.T) {
	uri := os.Getenv("VIDTUBE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("VIDTUBE_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	client, err := db.ConnectMongo(ctx, uri)
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	runStoreContract(t, func(t *testing.T) Store {
		database := client.Database("vidtube_test_" + models.NewID())
		if err := EnsureMongoIndexes(context.Background(), database); err != nil {
			t.Fatalf("ensure indexes: %v", err)
		}
		t.Cleanup(func() { _ = database.Drop(context.Background()) })
		return NewMongoStore(database)
	})
}
