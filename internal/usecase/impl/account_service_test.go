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

type accountServiceFixtures struct {
	service usecase.AccountUsecase
	repos   testRepos
	hasher  *mockService.MockPasswordHasher
	tokens  *mockService.MockTokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	t.Helper()

	repos := newTestRepos()
	hasher := new(mockService.MockPasswordHasher)
	tokens := new(mockService.MockTokenService)

	service := NewAccountService(AccountServiceParams{
		TxManager:    repos.txManager,
		UserRepo:     repos.userRepo,
		Hasher:       hasher,
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	})

	return accountServiceFixtures{service: service, repos: repos, hasher: hasher, tokens: tokens}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	referrer := &entity.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		Role:         entity.RoleAdmin,
		IsActive:     true,
		ReferralCode: "ADMIN0001",
	}

	fx.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
	fx.repos.userRepo.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	fx.repos.userRepo.On("FindByReferralCode", ctx, "ADMIN0001").Return(referrer, nil)
	fx.repos.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	fx.tokens.On("GenerateToken", mock.Anything, "new@example.com", entity.RoleUser).Return("token-123", nil)

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:        "new@example.com",
		Password:     "s3cret-pass",
		FirstName:    "New",
		LastName:     "User",
		Address:      "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
		ReferralCode: "ADMIN0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-123", out.Token)
	assert.Equal(t, "ADMIN0001", out.User.ReferredBy)
	assert.Equal(t, entity.RoleUser, out.User.Role)
	assert.Len(t, out.User.ReferralCode, 9)
	assert.True(t, out.User.IsActive)
	assert.Equal(t, "12 MG Road", out.User.Address)
	assert.Equal(t, "Bengaluru", out.User.City)
	assert.Equal(t, "Karnataka", out.User.State)
	assert.Equal(t, "560001", out.User.Pincode)
}

func TestAccountService_Register_UnknownReferralCode(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
	fx.repos.userRepo.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	fx.repos.userRepo.On("FindByReferralCode", ctx, "NOSUCH001").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:        "new@example.com",
		Password:     "s3cret-pass",
		ReferralCode: "NOSUCH001",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidReferral))
	fx.repos.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_InactiveReferrer(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	referrer := &entity.User{
		ID:           uuid.New(),
		IsActive:     false,
		ReferralCode: "GONE00001",
	}

	fx.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
	fx.repos.userRepo.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	fx.repos.userRepo.On("FindByReferralCode", ctx, "GONE00001").Return(referrer, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:        "new@example.com",
		Password:     "s3cret-pass",
		ReferralCode: "GONE00001",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidReferral))
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	existing := &entity.User{ID: uuid.New(), Email: "taken@example.com"}

	fx.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
	fx.repos.userRepo.On("FindByEmail", ctx, "taken@example.com").Return(existing, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:        "taken@example.com",
		Password:     "s3cret-pass",
		ReferralCode: "ADMIN0001",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "hashed",
		Role:         entity.RoleUser,
		IsActive:     true,
		ReferralCode: "USERX0001",
	}

	fx.repos.userRepo.On("FindByEmail", ctx, "user@example.com").Return(user, nil)
	fx.hasher.On("Check", "s3cret-pass", "hashed").Return(true)
	fx.tokens.On("GenerateToken", user.ID, user.Email, entity.RoleUser).Return("token-456", nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "user@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "token-456", out.Token)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: "hashed", IsActive: true}

	fx.repos.userRepo.On("FindByEmail", ctx, "user@example.com").Return(user, nil)
	fx.hasher.On("Check", "wrong", "hashed").Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "user@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_InactiveAccount(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: "hashed", IsActive: false}

	fx.repos.userRepo.On("FindByEmail", ctx, "user@example.com").Return(user, nil)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "user@example.com", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fx.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.repos.userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_UpdateProfile(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:        uuid.New(),
		Email:     "user@example.com",
		FirstName: "Old",
		City:      "Pune",
		IsActive:  true,
	}

	fx.repos.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	fx.repos.userRepo.On("Update", ctx, user).Return(nil)

	newName := "New"
	out, err := fx.service.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{FirstName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "New", out.FirstName)
	assert.Equal(t, "Pune", out.City)
	assert.Equal(t, "user@example.com", out.Email)
}
