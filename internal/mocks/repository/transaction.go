package mocks

import (
	"context"

	"market/internal/domain/repository"
)

// StubRepositoryFactory hands out the configured mocks, standing in for a
// transaction-bound factory.
type StubRepositoryFactory struct {
	Users      repository.UserRepository
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Orders     repository.OrderRepository
	Referrals  repository.ReferralCodeRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository          { return f.Users }
func (f *StubRepositoryFactory) ProductRepo() repository.ProductRepository    { return f.Products }
func (f *StubRepositoryFactory) CategoryRepo() repository.CategoryRepository  { return f.Categories }
func (f *StubRepositoryFactory) OrderRepo() repository.OrderRepository        { return f.Orders }
func (f *StubRepositoryFactory) ReferralRepo() repository.ReferralCodeRepository {
	return f.Referrals
}

// StubTxManager executes the callback immediately against the stub factory.
// There is no real transaction; rollback is simulated by the callback's error
// simply propagating.
type StubTxManager struct {
	Factory *StubRepositoryFactory
}

func (m *StubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
