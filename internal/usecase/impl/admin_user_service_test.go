package impl

import (
	"context"
	"testing"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	mockService "market/internal/mocks/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminUserServiceFixtures struct {
	service usecase.AdminUserUsecase
	repos   testRepos
	hasher  *mockService.MockPasswordHasher
}

func createTestAdminUserService(t *testing.T) adminUserServiceFixtures {
	t.Helper()

	repos := newTestRepos()
	hasher := new(mockService.MockPasswordHasher)

	service := NewAdminUserService(AdminUserServiceParams{
		TxManager: repos.txManager,
		UserRepo:  repos.userRepo,
		OrderRepo: repos.orderRepo,
		Hasher:    hasher,
		Logger:    newDiscardLogger(),
	})

	return adminUserServiceFixtures{service: service, repos: repos, hasher: hasher}
}

func TestAdminUserService_ListUsers_WithOrderCounts(t *testing.T) {
	fx := createTestAdminUserService(t)
	ctx := context.Background()

	a := &entity.User{ID: uuid.New(), Email: "a@example.com", IsActive: true}
	b := &entity.User{ID: uuid.New(), Email: "b@example.com", IsActive: true}

	fx.repos.userRepo.On("List", ctx).Return([]*entity.User{a, b}, nil)
	fx.repos.orderRepo.On("CountByUser", ctx, a.ID).Return(int64(3), nil)
	fx.repos.orderRepo.On("CountByUser", ctx, b.ID).Return(int64(0), nil)

	users, err := fx.service.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(3), users[0].OrderCount)
	assert.Equal(t, int64(0), users[1].OrderCount)
}

func TestAdminUserService_CreateUser_NoReferralRequired(t *testing.T) {
	fx := createTestAdminUserService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
	fx.repos.userRepo.On("FindByEmail", ctx, "ops@example.com").Return(nil, repository.ErrUserNotFound)
	fx.repos.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{
		Email:    "ops@example.com",
		Password: "s3cret-pass",
		City:     "Pune",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Equal(t, "Pune", user.City)
	assert.Empty(t, user.ReferredBy)
	assert.Len(t, user.ReferralCode, 9)
}

func TestAdminUserService_CreateUser_ExplicitReferralCode(t *testing.T) {
	fx := createTestAdminUserService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
	fx.repos.userRepo.On("FindByEmail", ctx, "seed@example.com").Return(nil, repository.ErrUserNotFound)
	fx.repos.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{
		Email:        "seed@example.com",
		Password:     "s3cret-pass",
		Role:         entity.RoleUser,
		ReferralCode: "SEEDCODE1",
	})
	require.NoError(t, err)
	assert.Equal(t, "SEEDCODE1", user.ReferralCode)
}

func TestAdminUserService_CreateUser_RejectsDisallowedRole(t *testing.T) {
	fx := createTestAdminUserService(t)
	ctx := context.Background()

	for _, role := range []entity.Role{"SUPERUSER", entity.RoleDelivery, ""} {
		_, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{
			Email:    "ops@example.com",
			Password: "s3cret-pass",
			Role:     role,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}

	fx.repos.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUserService_SetUserActive(t *testing.T) {
	fx := createTestAdminUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), IsActive: true}

	fx.repos.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	fx.repos.userRepo.On("Update", ctx, user).Return(nil)

	out, err := fx.service.SetUserActive(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, out.IsActive)
}

func TestAdminUserService_ResetUserPassword(t *testing.T) {
	fx := createTestAdminUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), PasswordHash: "old-hash", IsActive: true}

	fx.hasher.On("Hash", "new-pass-123").Return("new-hash", nil)
	fx.repos.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	fx.repos.userRepo.On("Update", ctx, user).Return(nil)

	require.NoError(t, fx.service.ResetUserPassword(ctx, user.ID, "new-pass-123"))
	assert.Equal(t, "new-hash", user.PasswordHash)
}

func TestAdminUserService_UpdateUser_NotFound(t *testing.T) {
	fx := createTestAdminUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.repos.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	name := "someone"
	_, err := fx.service.UpdateUser(ctx, userID, &usecase.AdminUpdateUserInput{FirstName: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
