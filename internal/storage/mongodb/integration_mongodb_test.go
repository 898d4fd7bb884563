package mongodb

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/userauth-dev/userauth/internal/config"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *mongodb.MongoDBContainer
	storage, container = mustSetup(ctx)
	defer teardown(ctx, storage, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *mongodb.MongoDBContainer) {
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("failed to obtain connection string: %s", err)
	}

	cfg := config.NewForTesting(
		config.Public{Mongo: config.Mongo{URI: uri, Dbname: "userauth_test"}},
		config.Private{},
	)
	storage, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to mongo container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *mongodb.MongoDBContainer) {
	if err := storage.Cleanup(ctx); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// resetCollection drops all user documents and recreates the unique index.
func resetCollection(t *testing.T, ctx context.Context) {
	t.Helper()
	if err := storage.users.Drop(ctx); err != nil {
		t.Fatalf("failed to drop collection: %s", err)
	}
	if err := storage.EnsureIndexes(ctx); err != nil {
		t.Fatalf("failed to recreate indexes: %s", err)
	}
}
