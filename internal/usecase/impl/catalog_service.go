package impl

import (
	"context"
	"log/slog"

	deliverycontext "market/internal/delivery/context"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:    params.TxManager,
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns one page of active products. A category name filter is
// resolved to its id first; a name that matches no category yields an empty page.
func (srv *catalogService) ListProducts(ctx context.Context, filter *entity.ProductFilter) (*usecase.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	if filter.Category != "" {
		category, err := srv.categoryRepo.FindByName(ctx, filter.Category)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return &usecase.ProductPage{
					Products: []*entity.Product{},
					Pagination: entity.Pagination{
						Page:  filter.Page,
						Limit: filter.Limit,
					},
				}, nil
			}

			return nil, errors.Wrap(err, "failed to resolve category filter")
		}
		filter.CategoryID = &category.ID
	}

	products, total, err := srv.productRepo.List(ctx, *filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &usecase.ProductPage{
		Products: products,
		Pagination: entity.Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// GetProduct returns one product. Inactive products read as absent on this
// public path.
func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	if !product.IsActive {
		return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product is inactive")
	}

	return product, nil
}

// CreateProduct creates a catalog product after SKU uniqueness and category
// existence checks.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.String("sku", input.SKU))

	var created *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		categoryRepo := repoFactory.CategoryRepo()

		_, findErr := productRepo.FindBySKU(ctx, input.SKU)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrSKUAlreadyExists, "duplicate SKU")
		}
		if !errors.Is(findErr, repository.ErrProductNotFound) {
			return errors.Wrap(findErr, "failed to check SKU uniqueness")
		}

		if _, findErr = categoryRepo.FindByID(ctx, input.CategoryID); findErr != nil {
			if errors.Is(findErr, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrCategoryNotFound, "product references unknown category")
			}

			return errors.Wrap(findErr, "failed to check category existence")
		}

		product := &entity.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			SalePrice:   input.SalePrice,
			Images:      input.Images,
			CategoryID:  input.CategoryID,
			Stock:       input.Stock,
			SKU:         input.SKU,
			Weight:      input.Weight,
			Dimensions:  input.Dimensions,
			IsActive:    true,
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if input.IsFeatured != nil {
			product.IsFeatured = *input.IsFeatured
		}

		if createErr := productRepo.Create(ctx, product); createErr != nil {
			return errors.Wrap(createErr, "failed to create product")
		}

		created = product

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Product creation failed", slog.String("sku", input.SKU), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute product creation transaction")
	}

	return created, nil
}

// UpdateProduct applies partial edits to a product.
func (srv *catalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	var updated *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		categoryRepo := repoFactory.CategoryRepo()

		product, findErr := productRepo.FindByID(ctx, productID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product update failed")
			}

			return errors.Wrap(findErr, "failed to find product by id")
		}

		if input.CategoryID != nil {
			if _, catErr := categoryRepo.FindByID(ctx, *input.CategoryID); catErr != nil {
				if errors.Is(catErr, repository.ErrCategoryNotFound) {
					return errors.Wrap(domainerrors.ErrCategoryNotFound, "product references unknown category")
				}

				return errors.Wrap(catErr, "failed to check category existence")
			}
			product.CategoryID = *input.CategoryID
		}

		applyProductUpdate(product, input)

		if updateErr := productRepo.Update(ctx, product); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update product")
		}

		updated = product

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute product update transaction")
	}

	return updated, nil
}

func applyProductUpdate(product *entity.Product, input *usecase.UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.SalePrice != nil {
		product.SalePrice = input.SalePrice
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Weight != nil {
		product.Weight = input.Weight
	}
	if input.Dimensions != nil {
		product.Dimensions = *input.Dimensions
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
}

// DeleteProduct soft-deletes a product by clearing its active flag.
func (srv *catalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	srv.log(ctx).Info("Deleting product", slog.Any("productID", productID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, findErr := productRepo.FindByID(ctx, productID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product deletion failed")
			}

			return errors.Wrap(findErr, "failed to find product by id")
		}

		product.IsActive = false

		if updateErr := productRepo.Update(ctx, product); updateErr != nil {
			return errors.Wrap(updateErr, "failed to soft-delete product")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to execute product deletion transaction")
	}

	return nil
}

// ListCategories returns active categories with their active product counts.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	for _, category := range categories {
		count, countErr := srv.productRepo.CountActiveByCategory(ctx, category.ID)
		if countErr != nil {
			return nil, errors.Wrap(countErr, "failed to count category products")
		}
		category.ProductCount = count
	}

	return categories, nil
}

// GetCategory returns one category with its active products.
func (srv *catalogService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*usecase.CategoryDetailOutput, error) {
	category, err := srv.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "category lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	products, err := srv.productRepo.ListActiveByCategory(ctx, categoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list category products")
	}

	return &usecase.CategoryDetailOutput{Category: category, Products: products}, nil
}

// CreateCategory creates a category after a name-uniqueness check.
func (srv *catalogService) CreateCategory(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	srv.log(ctx).Info("Creating category", slog.String("name", input.Name))

	var created *entity.Category
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		_, findErr := categoryRepo.FindByName(ctx, input.Name)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrCategoryAlreadyExists, "duplicate category name")
		}
		if !errors.Is(findErr, repository.ErrCategoryNotFound) {
			return errors.Wrap(findErr, "failed to check category name uniqueness")
		}

		category := &entity.Category{
			Name:        input.Name,
			Description: input.Description,
			Image:       input.Image,
			IsActive:    true,
		}

		if createErr := categoryRepo.Create(ctx, category); createErr != nil {
			return errors.Wrap(createErr, "failed to create category")
		}

		created = category

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute category creation transaction")
	}

	return created, nil
}

// UpdateCategory applies partial edits to a category, keeping the name unique.
func (srv *catalogService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, input *usecase.UpdateCategoryInput) (*entity.Category, error) {
	var updated *entity.Category
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		category, findErr := categoryRepo.FindByID(ctx, categoryID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrCategoryNotFound, "category update failed")
			}

			return errors.Wrap(findErr, "failed to find category by id")
		}

		if input.Name != nil && *input.Name != category.Name {
			existing, nameErr := categoryRepo.FindByName(ctx, *input.Name)
			if nameErr == nil && existing.ID != categoryID {
				return errors.Wrap(domainerrors.ErrCategoryAlreadyExists, "duplicate category name")
			}
			if nameErr != nil && !errors.Is(nameErr, repository.ErrCategoryNotFound) {
				return errors.Wrap(nameErr, "failed to check category name uniqueness")
			}
			category.Name = *input.Name
		}
		if input.Description != nil {
			category.Description = *input.Description
		}
		if input.Image != nil {
			category.Image = *input.Image
		}
		if input.IsActive != nil {
			category.IsActive = *input.IsActive
		}

		if updateErr := categoryRepo.Update(ctx, category); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update category")
		}

		updated = category

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute category update transaction")
	}

	return updated, nil
}

// DeleteCategory soft-deletes a category, refusing while active products
// still reference it.
func (srv *catalogService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	srv.log(ctx).Info("Deleting category", slog.Any("categoryID", categoryID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()
		productRepo := repoFactory.ProductRepo()

		category, findErr := categoryRepo.FindByID(ctx, categoryID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrCategoryNotFound, "category deletion failed")
			}

			return errors.Wrap(findErr, "failed to find category by id")
		}

		count, countErr := productRepo.CountActiveByCategory(ctx, categoryID)
		if countErr != nil {
			return errors.Wrap(countErr, "failed to count category products")
		}
		if count > 0 {
			return errors.Wrap(domainerrors.ErrCategoryInUse, "category still has active products")
		}

		category.IsActive = false

		if updateErr := categoryRepo.Update(ctx, category); updateErr != nil {
			return errors.Wrap(updateErr, "failed to soft-delete category")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to execute category deletion transaction")
	}

	return nil
}
