package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/farebd/leasehold/api/internal/database"
	"github.com/farebd/leasehold/api/internal/models"
)

// UserRepository defines the interface for user profile data access.
type UserRepository interface {
	// FindByEmail returns the profile keyed by email.
	// Returns nil, nil if no profile exists (not an error).
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Upsert stores a profile, replacing any existing record for the email.
	Upsert(ctx context.Context, user *models.User) error

	// FindByEmails returns the profiles for the given emails, keyed by email.
	// Missing profiles are simply absent from the result.
	FindByEmails(ctx context.Context, emails []string) (map[string]models.User, error)
}

// userRepository is the concrete Mongo-backed implementation.
type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{collection: db.Users}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user %s: %w", email, err)
	}
	return &user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.Email}, user, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userRepository) FindByEmails(ctx context.Context, emails []string) (map[string]models.User, error) {
	if len(emails) == 0 {
		return map[string]models.User{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": emails}})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make(map[string]models.User, len(emails))
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users[user.Email] = user
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
