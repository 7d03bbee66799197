package repository

import (
	"context"
	"errors"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReferralCodeNotFound is returned when no registry code matches the lookup.
var ErrReferralCodeNotFound = errors.New("referral code not found")

// ReferralCodeRepository defines persistence operations for the standalone
// promotional code registry.
type ReferralCodeRepository interface {
	// Create persists a new registry code.
	Create(ctx context.Context, code *entity.ReferralCode) error

	// FindByID retrieves a registry code by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ReferralCode, error)

	// FindByCode retrieves a registry code by its code string.
	FindByCode(ctx context.Context, code string) (*entity.ReferralCode, error)

	// Update modifies an existing registry code.
	Update(ctx context.Context, code *entity.ReferralCode) error

	// ListAll returns every registry code with owners populated, newest first.
	ListAll(ctx context.Context) ([]*entity.ReferralCode, error)
}
