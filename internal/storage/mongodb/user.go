package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/userauth-dev/userauth/internal/domain"
	internal_errors "github.com/userauth-dev/userauth/internal/errors"
)

const queryTimeout = 5 * time.Second

// SaveUser inserts a new account record. The unique index on email rejects a
// second account for the same address even when two inserts race; that
// rejection is translated into a conflict error via the driver's structured
// duplicate-key classification rather than a magic error code.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return internal_errors.Conflict("Email already registered")
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// User fetches at most one account by email. The document id stays internal
// to the adapter and is excluded from the projection. More than one match
// means the unique index is corrupted and is reported as an error.
func (s *Storage) User(ctx context.Context, email domain.Email) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(2).
		SetProjection(bson.D{{Key: "_id", Value: 0}})
	cursor, err := s.users.Find(ctx, bson.D{{Key: "email", Value: email}}, opts)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return domain.User{}, fmt.Errorf("failed to decode user: %w", err)
	}

	switch len(users) {
	case 0:
		return domain.User{}, internal_errors.NotFound("User not found")
	case 1:
		return users[0], nil
	default:
		return domain.User{}, fmt.Errorf("unique email index violated: %d records for %q", len(users), email)
	}
}

// Confirm marks email ownership as verified after a confirmation token
// checked out.
func (s *Storage) Confirm(ctx context.Context, email domain.Email) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.users.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "confirmed", Value: true}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to confirm user: %w", err)
	}
	if result.MatchedCount == 0 {
		return internal_errors.NotFound("User not found")
	}
	return nil
}
