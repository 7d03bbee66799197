package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Categories are soft-deleted via IsActive and a
// category cannot be deleted while active products still reference it.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// ProductCount is the number of active products in the category,
	// populated on listing.
	ProductCount int64 `json:"productCount"`
	// Products is populated on category detail only.
	Products []*Product `json:"products,omitempty"`
}

// Product is a purchasable catalog item. Stock is a non-negative unit count
// decremented at order time.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	// SalePrice, when set, is the effective unit price instead of Price.
	SalePrice  *float64  `json:"salePrice,omitempty"`
	Images     []string  `json:"images"`
	CategoryID uuid.UUID `json:"categoryId"`
	Category   *Category `json:"category,omitempty"`
	Stock      int       `json:"stock"`
	SKU        string    `json:"sku"`
	Weight     *float64  `json:"weight,omitempty"`
	Dimensions string    `json:"dimensions,omitempty"`
	IsActive   bool      `json:"isActive"`
	IsFeatured bool      `json:"isFeatured"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EffectivePrice returns the sale price when present, otherwise the list price.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}

	return p.Price
}

// ProductFilter narrows product listings. Zero values mean "no restriction";
// listings always restrict to active products.
type ProductFilter struct {
	Page     int
	Limit    int
	Category string
	// CategoryID is the resolved id of Category, filled in by the usecase
	// before the filter reaches the repository.
	CategoryID *uuid.UUID
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	Featured   bool
}

// Pagination describes one page of a listing result.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}
