package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one requested cart line.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput defines the data required to place an order.
type CreateOrderInput struct {
	Items           []OrderItemInput
	PaymentMethod   entity.PaymentMethod
	ShippingAddress string
	BillingAddress  string
	Notes           string
}

// UpdateStatusInput is the admin status mutation. PaymentStatus is
// optional and updated independently of the order status when present.
type UpdateStatusInput struct {
	Status        entity.OrderStatus
	PaymentStatus *entity.PaymentStatus
}

// OrderUsecase defines order placement and lifecycle operations.
type OrderUsecase interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, input *CreateOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	ListAllOrders(ctx context.Context) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, callerRole entity.Role, input *UpdateStatusInput) (*entity.Order, error)
	AssignDelivery(ctx context.Context, orderID uuid.UUID, deliveryPersonID *uuid.UUID) (*entity.Order, error)

	ListAssignedOrders(ctx context.Context, deliveryPersonID uuid.UUID) ([]*entity.Order, error)
	UpdateDeliveryStatus(ctx context.Context, deliveryPersonID, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
}
