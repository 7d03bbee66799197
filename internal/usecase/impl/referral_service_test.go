package impl

import (
	"context"
	"testing"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type referralServiceFixtures struct {
	service usecase.ReferralUsecase
	repos   testRepos
}

func createTestReferralService(t *testing.T) referralServiceFixtures {
	t.Helper()

	repos := newTestRepos()
	service := NewReferralService(ReferralServiceParams{
		TxManager:    repos.txManager,
		UserRepo:     repos.userRepo,
		ReferralRepo: repos.referralRepo,
		Logger:       newDiscardLogger(),
	})

	return referralServiceFixtures{service: service, repos: repos}
}

func TestReferralService_GetMyStats(t *testing.T) {
	fx := createTestReferralService(t)
	ctx := context.Background()

	owner := &entity.User{ID: uuid.New(), ReferralCode: "OWNER0001", IsActive: true}
	childA := &entity.User{ID: uuid.New(), ReferralCode: "CHILDA001", ReferredBy: "OWNER0001", IsActive: true}
	childB := &entity.User{ID: uuid.New(), ReferralCode: "CHILDB001", ReferredBy: "OWNER0001", IsActive: true}
	unrelated := &entity.User{ID: uuid.New(), ReferralCode: "OTHER0001", ReferredBy: "CHILDA001", IsActive: true}

	fx.repos.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	fx.repos.userRepo.On("List", ctx).Return([]*entity.User{owner, childA, childB, unrelated}, nil)

	stats, err := fx.service.GetMyStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "OWNER0001", stats.ReferralCode)
	assert.Equal(t, 2, stats.TotalReferrals)
	require.Len(t, stats.ReferredUsers, 2)
}

func TestReferralService_BuildTree(t *testing.T) {
	fx := createTestReferralService(t)
	ctx := context.Background()

	root := &entity.User{ID: uuid.New(), ReferralCode: "ROOT00001", IsActive: true}
	child := &entity.User{ID: uuid.New(), ReferralCode: "CHILD0001", ReferredBy: "ROOT00001", IsActive: true}

	fx.repos.userRepo.On("List", ctx).Return([]*entity.User{root, child}, nil)

	forest, err := fx.service.BuildTree(ctx)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, root.ID, forest[0].User.ID)
	require.Len(t, forest[0].Referrals, 1)
	assert.Equal(t, child.ID, forest[0].Referrals[0].User.ID)
}

func TestReferralService_CreateCode_GeneratesWhenAbsent(t *testing.T) {
	fx := createTestReferralService(t)
	ctx := context.Background()

	owner := &entity.User{ID: uuid.New(), IsActive: true}

	fx.repos.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	fx.repos.referralRepo.On("FindByCode", ctx, mock.AnythingOfType("string")).
		Return(nil, repository.ErrReferralCodeNotFound)
	fx.repos.referralRepo.On("Create", ctx, mock.AnythingOfType("*entity.ReferralCode")).Return(nil)

	record, err := fx.service.CreateCode(ctx, &usecase.CreateReferralCodeInput{UserID: owner.ID})
	require.NoError(t, err)
	assert.Len(t, record.Code, 9)
	assert.True(t, record.IsActive)
	assert.Equal(t, owner.ID, record.UserID)
}

func TestReferralService_CreateCode_DuplicateCode(t *testing.T) {
	fx := createTestReferralService(t)
	ctx := context.Background()

	owner := &entity.User{ID: uuid.New(), IsActive: true}
	existing := &entity.ReferralCode{ID: uuid.New(), Code: "TAKEN0001"}

	fx.repos.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	fx.repos.referralRepo.On("FindByCode", ctx, "TAKEN0001").Return(existing, nil)

	_, err := fx.service.CreateCode(ctx, &usecase.CreateReferralCodeInput{UserID: owner.ID, Code: "TAKEN0001"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrReferralCodeExists))
}

func TestReferralService_UpdateCode_NotFound(t *testing.T) {
	fx := createTestReferralService(t)
	ctx := context.Background()
	codeID := uuid.New()

	fx.repos.referralRepo.On("FindByID", ctx, codeID).Return(nil, repository.ErrReferralCodeNotFound)

	inactive := false
	_, err := fx.service.UpdateCode(ctx, codeID, &usecase.UpdateReferralCodeInput{IsActive: &inactive})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrReferralCodeNotFound))
}
