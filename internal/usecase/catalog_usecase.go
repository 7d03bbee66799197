package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	SalePrice   *float64
	Images      []string
	CategoryID  uuid.UUID
	Stock       int
	SKU         string
	Weight      *float64
	Dimensions  string
	IsActive    *bool
	IsFeatured  *bool
}

// UpdateProductInput carries optional product fields; nil means unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	SalePrice   *float64
	Images      []string
	CategoryID  *uuid.UUID
	Stock       *int
	Weight      *float64
	Dimensions  *string
	IsActive    *bool
	IsFeatured  *bool
}

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
}

// UpdateCategoryInput carries optional category fields; nil means unchanged.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Image       *string
	IsActive    *bool
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products   []*entity.Product `json:"products"`
	Pagination entity.Pagination `json:"pagination"`
}

// CategoryDetailOutput is a category with its active products.
type CategoryDetailOutput struct {
	Category *entity.Category  `json:"category"`
	Products []*entity.Product `json:"products"`
}

// CatalogUsecase defines product and category operations.
// Listing and detail reads are public; mutations are admin-only.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, filter *entity.ProductFilter) (*ProductPage, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	ListCategories(ctx context.Context) ([]*entity.Category, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryDetailOutput, error)
	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, input *UpdateCategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
}
