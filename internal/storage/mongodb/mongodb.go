package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/userauth-dev/userauth/internal/config"
	"github.com/userauth-dev/userauth/internal/logger"
)

const usersCollection = "users"

type Storage struct {
	client *mongo.Client
	users  *mongo.Collection
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to mongodb")
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Public.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	logger.Log.Info("successfully connected to mongodb")

	storage := &Storage{
		client: client,
		users:  client.Database(cfg.Public.Mongo.Dbname).Collection(usersCollection),
	}
	if err := storage.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}

// EnsureIndexes creates the unique index on email. The server treats index
// creation as idempotent, so concurrent or repeated calls are safe; the
// index is what enforces one account per email under racing inserts.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create unique email index: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Storage) Cleanup(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
