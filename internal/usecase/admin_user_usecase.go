package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateUserInput is the admin-side user creation payload. No referral code
// is required on this path; ReferralCode, when set, becomes the new user's
// own code instead of a generated one.
type CreateUserInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	City         string
	State        string
	Pincode      string
	Role         entity.Role
	ReferralCode string
}

// AdminUpdateUserInput carries the fields an admin may edit.
// Email and password are excluded; password resets go through ResetPassword.
type AdminUpdateUserInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
	City      *string
	State     *string
	Pincode   *string
	Role      *entity.Role
}

// UserWithOrderCount pairs a user with the number of orders they placed.
type UserWithOrderCount struct {
	User       *entity.PublicUser `json:"user"`
	OrderCount int64              `json:"orderCount"`
}

// UserDetailOutput is the admin user detail view.
type UserDetailOutput struct {
	User   *entity.PublicUser `json:"user"`
	Orders []*entity.Order    `json:"orders"`
}

// AdminUserUsecase defines admin-only user management operations.
type AdminUserUsecase interface {
	ListUsers(ctx context.Context) ([]*UserWithOrderCount, error)
	GetUserDetail(ctx context.Context, userID uuid.UUID) (*UserDetailOutput, error)
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.PublicUser, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, input *AdminUpdateUserInput) (*entity.PublicUser, error)
	SetUserActive(ctx context.Context, userID uuid.UUID, isActive bool) (*entity.PublicUser, error)
	SetUserFlagged(ctx context.Context, userID uuid.UUID, flagged bool) (*entity.PublicUser, error)
	ResetUserPassword(ctx context.Context, userID uuid.UUID, newPassword string) error
	ListDeliveryPersonnel(ctx context.Context) ([]*entity.PublicUser, error)
}
