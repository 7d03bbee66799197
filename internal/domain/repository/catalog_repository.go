package repository

import (
	"context"
	"errors"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when no product matches the lookup.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when no category matches the lookup.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrStockConflict is returned when a conditional stock decrement affects
	// no rows, meaning the remaining stock was below the requested quantity.
	ErrStockConflict = errors.New("stock below requested quantity")
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	// FindByID retrieves a product regardless of its active flag.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindBySKU retrieves a product by its unique SKU.
	FindBySKU(ctx context.Context, sku string) (*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// List returns one page of active products matching the filter plus the
	// total match count.
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, int64, error)

	// ListActiveByCategory returns active products in a category, newest first.
	ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.Product, error)

	// CountActiveByCategory counts active products referencing a category.
	CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// DecrementStock atomically subtracts quantity from a product's stock,
	// failing with ErrStockConflict when stock < quantity. This closes the
	// check-then-decrement race between concurrent orders.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	// FindByID retrieves a category regardless of its active flag.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a category by its unique name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// ListActive returns active categories sorted by name.
	ListActive(ctx context.Context) ([]*entity.Category, error)
}
