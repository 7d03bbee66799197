package impl

import (
	"io"
	"log/slog"

	mockRepo "market/internal/mocks/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRepos bundles the repository mocks behind a stub transaction manager so
// code inside and outside Execute sees the same mocks.
type testRepos struct {
	txManager    *mockRepo.StubTxManager
	userRepo     *mockRepo.MockUserRepository
	productRepo  *mockRepo.MockProductRepository
	categoryRepo *mockRepo.MockCategoryRepository
	orderRepo    *mockRepo.MockOrderRepository
	referralRepo *mockRepo.MockReferralCodeRepository
}

func newTestRepos() testRepos {
	userRepo := new(mockRepo.MockUserRepository)
	productRepo := new(mockRepo.MockProductRepository)
	categoryRepo := new(mockRepo.MockCategoryRepository)
	orderRepo := new(mockRepo.MockOrderRepository)
	referralRepo := new(mockRepo.MockReferralCodeRepository)

	return testRepos{
		txManager: &mockRepo.StubTxManager{
			Factory: &mockRepo.StubRepositoryFactory{
				Users:      userRepo,
				Products:   productRepo,
				Categories: categoryRepo,
				Orders:     orderRepo,
				Referrals:  referralRepo,
			},
		},
		userRepo:     userRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		referralRepo: referralRepo,
	}
}
