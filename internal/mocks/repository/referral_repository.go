package mocks

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockReferralCodeRepository is a testify mock of repository.ReferralCodeRepository.
type MockReferralCodeRepository struct {
	mock.Mock
}

func (m *MockReferralCodeRepository) Create(ctx context.Context, code *entity.ReferralCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockReferralCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ReferralCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.ReferralCode), args.Error(1)
}

func (m *MockReferralCodeRepository) FindByCode(ctx context.Context, code string) (*entity.ReferralCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.ReferralCode), args.Error(1)
}

func (m *MockReferralCodeRepository) Update(ctx context.Context, code *entity.ReferralCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockReferralCodeRepository) ListAll(ctx context.Context) ([]*entity.ReferralCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.ReferralCode), args.Error(1)
}
