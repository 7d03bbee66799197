package usecase

import (
	"context"
	"time"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReferralCodeInput registers a managed code for a user.
type CreateReferralCodeInput struct {
	UserID    uuid.UUID
	Code      string
	MaxUsage  *int
	ExpiresAt *time.Time
}

// UpdateReferralCodeInput carries optional registry fields; nil means unchanged.
type UpdateReferralCodeInput struct {
	IsActive  *bool
	MaxUsage  *int
	ExpiresAt *time.Time
}

// ReferralUsecase defines referral code, stats, registry and tree operations.
// Registration itself validates against User.ReferralCode; the registry is an
// admin-managed bookkeeping surface.
type ReferralUsecase interface {
	GetMyCode(ctx context.Context, userID uuid.UUID) (string, error)
	GetMyStats(ctx context.Context, userID uuid.UUID) (*entity.ReferralStats, error)

	BuildTree(ctx context.Context) ([]*entity.ReferralNode, error)

	CreateCode(ctx context.Context, input *CreateReferralCodeInput) (*entity.ReferralCode, error)
	ListCodes(ctx context.Context) ([]*entity.ReferralCode, error)
	UpdateCode(ctx context.Context, codeID uuid.UUID, input *UpdateReferralCodeInput) (*entity.ReferralCode, error)
}
