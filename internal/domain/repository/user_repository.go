// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByReferralCode retrieves the user owning the given referral code.
	FindByReferralCode(ctx context.Context, code string) (*entity.User, error)

	// Create persists a new user entity.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity.
	Update(ctx context.Context, user *entity.User) error

	// List returns all users, most recently created first.
	List(ctx context.Context) ([]*entity.User, error)

	// ListByRole returns all users with the given role, ordered by first name.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// CountByRole counts users holding the given role.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}
