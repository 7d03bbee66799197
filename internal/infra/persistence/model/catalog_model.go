package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"type:varchar(500)"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Products []ProductModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table. Images is an ordered list stored
// as JSONB; the first entry is the primary image.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:numeric(12,2);not null"`
	SalePrice   *float64  `gorm:"type:numeric(12,2)"`
	Images      []string  `gorm:"type:jsonb;serializer:json"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Stock       int       `gorm:"not null;default:0;check:stock >= 0"`
	SKU         string    `gorm:"type:varchar(64);unique;not null"`
	Weight      *float64  `gorm:"type:numeric(10,3)"`
	Dimensions  string    `gorm:"type:varchar(100)"`
	IsActive    bool      `gorm:"not null;default:true"`
	IsFeatured  bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
