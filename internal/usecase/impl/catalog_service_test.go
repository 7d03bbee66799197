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

type catalogServiceFixtures struct {
	service usecase.CatalogUsecase
	repos   testRepos
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	t.Helper()

	repos := newTestRepos()
	service := NewCatalogService(CatalogServiceParams{
		TxManager:    repos.txManager,
		ProductRepo:  repos.productRepo,
		CategoryRepo: repos.categoryRepo,
		Logger:       newDiscardLogger(),
	})

	return catalogServiceFixtures{service: service, repos: repos}
}

func TestCatalogService_ListProducts_Pagination(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	products := []*entity.Product{activeProduct(100, 5), activeProduct(200, 3)}

	fx.repos.productRepo.On("List", ctx, mock.AnythingOfType("entity.ProductFilter")).
		Return(products, int64(25), nil)

	page, err := fx.service.ListProducts(ctx, &entity.ProductFilter{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, int64(25), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.Pages)
}

func TestCatalogService_ListProducts_UnknownCategoryYieldsEmptyPage(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.repos.categoryRepo.On("FindByName", ctx, "nonexistent").
		Return(nil, repository.ErrCategoryNotFound)

	page, err := fx.service.ListProducts(ctx, &entity.ProductFilter{Category: "nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, int64(0), page.Pagination.Total)
	fx.repos.productRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCatalogService_ListProducts_ResolvesCategoryToID(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	category := &entity.Category{ID: uuid.New(), Name: "electronics", IsActive: true}

	fx.repos.categoryRepo.On("FindByName", ctx, "electronics").Return(category, nil)
	fx.repos.productRepo.On("List", ctx, mock.MatchedBy(func(f entity.ProductFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == category.ID
	})).Return([]*entity.Product{}, int64(0), nil)

	_, err := fx.service.ListProducts(ctx, &entity.ProductFilter{Category: "electronics"})
	require.NoError(t, err)
}

func TestCatalogService_GetProduct_InactiveReadsAsAbsent(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	product := activeProduct(100, 5)
	product.IsActive = false

	fx.repos.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	_, err := fx.service.GetProduct(ctx, product.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_CreateProduct_DuplicateSKU(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	existing := activeProduct(100, 5)

	fx.repos.productRepo.On("FindBySKU", ctx, "DUP-1").Return(existing, nil)

	_, err := fx.service.CreateProduct(ctx, &usecase.CreateProductInput{
		Name:       "dup",
		Price:      10,
		CategoryID: uuid.New(),
		SKU:        "DUP-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSKUAlreadyExists))
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	categoryID := uuid.New()

	fx.repos.productRepo.On("FindBySKU", ctx, "NEW-1").Return(nil, repository.ErrProductNotFound)
	fx.repos.categoryRepo.On("FindByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	_, err := fx.service.CreateProduct(ctx, &usecase.CreateProductInput{
		Name:       "new",
		Price:      10,
		CategoryID: categoryID,
		SKU:        "NEW-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNotFound))
}

func TestCatalogService_DeleteProduct_SoftDeletes(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	product := activeProduct(100, 5)

	fx.repos.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.repos.productRepo.On("Update", ctx, product).Return(nil)

	require.NoError(t, fx.service.DeleteProduct(ctx, product.ID))
	assert.False(t, product.IsActive)
}

func TestCatalogService_DeleteCategory_BlockedWhileInUse(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	category := &entity.Category{ID: uuid.New(), Name: "busy", IsActive: true}

	fx.repos.categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	fx.repos.productRepo.On("CountActiveByCategory", ctx, category.ID).Return(int64(3), nil)

	err := fx.service.DeleteCategory(ctx, category.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryInUse))
	assert.True(t, category.IsActive)
}

func TestCatalogService_DeleteCategory_SoftDeletesWhenEmpty(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	category := &entity.Category{ID: uuid.New(), Name: "empty", IsActive: true}

	fx.repos.categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	fx.repos.productRepo.On("CountActiveByCategory", ctx, category.ID).Return(int64(0), nil)
	fx.repos.categoryRepo.On("Update", ctx, category).Return(nil)

	require.NoError(t, fx.service.DeleteCategory(ctx, category.ID))
	assert.False(t, category.IsActive)
}

func TestCatalogService_ListCategories_PopulatesProductCounts(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	a := &entity.Category{ID: uuid.New(), Name: "a", IsActive: true}
	b := &entity.Category{ID: uuid.New(), Name: "b", IsActive: true}

	fx.repos.categoryRepo.On("ListActive", ctx).Return([]*entity.Category{a, b}, nil)
	fx.repos.productRepo.On("CountActiveByCategory", ctx, a.ID).Return(int64(4), nil)
	fx.repos.productRepo.On("CountActiveByCategory", ctx, b.ID).Return(int64(0), nil)

	categories, err := fx.service.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int64(4), categories[0].ProductCount)
	assert.Equal(t, int64(0), categories[1].ProductCount)
}

func TestCatalogService_UpdateCategory_DuplicateName(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	category := &entity.Category{ID: uuid.New(), Name: "old", IsActive: true}
	other := &entity.Category{ID: uuid.New(), Name: "taken", IsActive: true}

	fx.repos.categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	fx.repos.categoryRepo.On("FindByName", ctx, "taken").Return(other, nil)

	newName := "taken"
	_, err := fx.service.UpdateCategory(ctx, category.ID, &usecase.UpdateCategoryInput{Name: &newName})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryAlreadyExists))
}
