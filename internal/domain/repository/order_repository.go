package repository

import (
	"context"
	"errors"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when no order matches the lookup. Owner-scoped
// and delivery-scoped lookups also return it when the order exists but is not
// visible to the caller, deliberately indistinguishable from absence.
var ErrOrderNotFound = errors.New("order not found")

// ProductSales aggregates ordered quantity per product for analytics.
type ProductSales struct {
	ProductID     uuid.UUID `json:"productId"`
	TotalQuantity int64     `json:"totalQuantity"`
	Product       *entity.Product `json:"product,omitempty"`
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with items and product details populated.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByIDForUser retrieves an order only when owned by userID.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error)

	// FindByIDForDelivery retrieves an order only when assigned to deliveryPersonID.
	FindByIDForDelivery(ctx context.Context, id, deliveryPersonID uuid.UUID) (*entity.Order, error)

	// Update persists status, payment and assignment mutations.
	Update(ctx context.Context, order *entity.Order) error

	// ListByUser returns a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListAll returns every order with owner and delivery person populated,
	// newest first.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// ListByDeliveryPerson returns orders assigned to a delivery user, newest first.
	ListByDeliveryPerson(ctx context.Context, deliveryPersonID uuid.UUID) ([]*entity.Order, error)

	// ListRecent returns the most recent orders with owners populated.
	ListRecent(ctx context.Context, limit int) ([]*entity.Order, error)

	// Count returns the total number of orders.
	Count(ctx context.Context) (int64, error)

	// CountByUser returns the number of orders placed by a user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// SumCompletedTotals sums Order.Total over orders with completed payment.
	SumCompletedTotals(ctx context.Context) (float64, error)

	// TopProducts returns the products with the highest summed ordered
	// quantity across all orders.
	TopProducts(ctx context.Context, limit int) ([]*ProductSales, error)
}
