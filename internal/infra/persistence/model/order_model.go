package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderNumber      string     `gorm:"type:varchar(32);unique;not null"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Subtotal         float64    `gorm:"type:numeric(12,2);not null"`
	Tax              float64    `gorm:"type:numeric(12,2);not null"`
	Shipping         float64    `gorm:"type:numeric(12,2);not null"`
	Total            float64    `gorm:"type:numeric(12,2);not null"`
	Status           string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentMethod    string     `gorm:"type:varchar(10);not null"`
	PaymentStatus    string     `gorm:"type:varchar(10);not null;default:'PENDING'"`
	TransactionID    string     `gorm:"type:varchar(100)"`
	ShippingAddress  string     `gorm:"type:text;not null"`
	BillingAddress   string     `gorm:"type:text"`
	Notes            string     `gorm:"type:text"`
	DeliveryPersonID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User           *UserModel       `gorm:"foreignKey:UserID"`
	DeliveryPerson *UserModel       `gorm:"foreignKey:DeliveryPersonID"`
	Items          []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Price is the unit price
// snapshotted at order time.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null;check:quantity >= 1"`
	Price     float64   `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
