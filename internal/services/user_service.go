package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farebd/leasehold/api/internal/logger"
	"github.com/farebd/leasehold/api/internal/models"
	"github.com/farebd/leasehold/api/internal/repository"
)

// Service-level errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidUser  = errors.New("invalid user")
	ErrInvalidRole  = errors.New("invalid role")
)

// UserService defines the interface for profile business logic. The identity
// provider owns credentials; this only manages marketplace profiles.
type UserService interface {
	// Register stores a profile for the authenticated identity. A repeat
	// registration overwrites the profile (same semantics as the original
	// keyed document write), but never escalates the role to admin.
	Register(ctx context.Context, user *models.User) error

	// Get retrieves the profile for an email.
	// Returns ErrUserNotFound if no profile exists.
	Get(ctx context.Context, email string) (*models.User, error)
}

// userService is the concrete implementation of UserService.
type userService struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo repository.UserRepository, log *logger.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log,
	}
}

func (s *userService) Register(ctx context.Context, user *models.User) error {
	if user.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if !user.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
	}
	// Admins are provisioned out of band, never through self-registration.
	if user.Role == models.RoleAdmin {
		return fmt.Errorf("%w: admin role cannot be self-assigned", ErrInvalidRole)
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Upsert(ctx, user); err != nil {
		s.log.Error("Failed to register user", err, map[string]interface{}{"email": user.Email})
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.log.Info("User registered", map[string]interface{}{
		"email": user.Email,
		"role":  string(user.Role),
	})

	return nil
}

func (s *userService) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to query user", err, map[string]interface{}{"email": email})
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
