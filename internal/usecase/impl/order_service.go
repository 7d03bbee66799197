package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "market/internal/delivery/context"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder places an order. All cart lines are validated before any write.
// Inside one transaction each product's stock is decremented conditionally
// (no rows affected means another order took the stock first), so two
// concurrent orders can never oversell the last unit. Any failure rolls the
// whole order back.
func (srv *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	srv.log(ctx).Info("Creating order", slog.Any("userID", userID), slog.Int("items", len(input.Items)))

	if len(input.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "order has no items")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown payment method")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "item quantity must be at least 1")
		}
	}

	var created *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		orderRepo := repoFactory.OrderRepo()

		// Validate every line and snapshot prices before any write.
		orderItems := make([]*entity.OrderItem, 0, len(input.Items))
		subtotal := 0.0
		for _, item := range input.Items {
			product, findErr := productRepo.FindByID(ctx, item.ProductID)
			if errors.Is(findErr, repository.ErrProductNotFound) {
				return errors.Wrapf(domainerrors.ErrProductUnavailable, "product %s not found", item.ProductID)
			}
			if findErr != nil {
				return errors.Wrap(findErr, "failed to load product for order")
			}
			if !product.IsActive {
				return errors.Wrapf(domainerrors.ErrProductUnavailable, "product %s is inactive", product.SKU)
			}
			if product.Stock < item.Quantity {
				return errors.Wrapf(domainerrors.ErrInsufficientStock, "product %s has %d in stock, %d requested", product.SKU, product.Stock, item.Quantity)
			}

			unitPrice := product.EffectivePrice()
			subtotal += unitPrice * float64(item.Quantity)
			orderItems = append(orderItems, &entity.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     unitPrice,
				Product:   product,
			})
		}

		subtotal = entity.RoundMoney(subtotal)
		tax, shipping, total := entity.ComputeTotals(subtotal)

		order := &entity.Order{
			OrderNumber:     entity.NewOrderNumber(time.Now()),
			UserID:          userID,
			Items:           orderItems,
			Subtotal:        subtotal,
			Tax:             tax,
			Shipping:        shipping,
			Total:           total,
			Status:          entity.OrderPending,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   entity.PaymentPending,
			ShippingAddress: input.ShippingAddress,
			BillingAddress:  input.BillingAddress,
			Notes:           input.Notes,
		}

		if createErr := orderRepo.Create(ctx, order); createErr != nil {
			return errors.Wrap(createErr, "failed to persist order")
		}

		// Conditional decrements; a conflict aborts the transaction and the
		// order above is rolled back with it.
		for _, item := range orderItems {
			decErr := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if errors.Is(decErr, repository.ErrStockConflict) {
				return errors.Wrapf(domainerrors.ErrInsufficientStock, "stock for product %s was taken by a concurrent order", item.ProductID)
			}
			if decErr != nil {
				return errors.Wrap(decErr, "failed to decrement product stock")
			}
		}

		created = order

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Order creation failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order creation transaction")
	}

	srv.log(ctx).Info("Order created", slog.String("orderNumber", created.OrderNumber), slog.Float64("total", created.Total))

	return created, nil
}

// GetOrder returns an order owned by userID. Someone else's order reads as
// absent.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find order for user")
	}

	return order, nil
}

// ListOrders returns the caller's order history, newest first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	return orders, nil
}

// ListAllOrders returns every order with owner and delivery person populated.
func (srv *orderService) ListAllOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all orders")
	}

	return orders, nil
}

// UpdateStatus moves an order through its lifecycle. The transition table
// decides what the caller's role may set; payment status, when supplied, is
// updated independently.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, callerRole entity.Role, input *usecase.UpdateStatusInput) (*entity.Order, error) {
	srv.log(ctx).Info("Updating order status", slog.Any("orderID", orderID), slog.Any("status", input.Status))

	if !input.Status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown order status")
	}
	if input.PaymentStatus != nil && !input.PaymentStatus.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown payment status")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, findErr := orderRepo.FindByID(ctx, orderID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "status update failed")
			}

			return errors.Wrap(findErr, "failed to find order by id")
		}

		if order.Status != input.Status {
			if !order.Status.CanTransition(input.Status, callerRole) {
				return errors.Wrapf(domainerrors.ErrInvalidStatusTransition, "cannot move order from %s to %s", order.Status, input.Status)
			}
			order.Status = input.Status
		}

		if input.PaymentStatus != nil {
			order.PaymentStatus = *input.PaymentStatus
		}

		if updateErr := orderRepo.Update(ctx, order); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update order")
		}

		updated = order

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Order status update failed", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order status transaction")
	}

	return updated, nil
}

// AssignDelivery sets or clears an order's delivery person. The target must
// exist and hold the delivery role; nil unassigns.
func (srv *orderService) AssignDelivery(ctx context.Context, orderID uuid.UUID, deliveryPersonID *uuid.UUID) (*entity.Order, error) {
	srv.log(ctx).Info("Assigning delivery person", slog.Any("orderID", orderID), slog.Any("deliveryPersonID", deliveryPersonID))

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		userRepo := repoFactory.UserRepo()

		order, findErr := orderRepo.FindByID(ctx, orderID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "delivery assignment failed")
			}

			return errors.Wrap(findErr, "failed to find order by id")
		}

		if deliveryPersonID != nil {
			person, personErr := userRepo.FindByID(ctx, *deliveryPersonID)
			if errors.Is(personErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "delivery person not found")
			}
			if personErr != nil {
				return errors.Wrap(personErr, "failed to find delivery person")
			}
			if person.Role != entity.RoleDelivery {
				return errors.Wrap(domainerrors.ErrNotDeliveryPerson, "assignment target lacks delivery role")
			}
		}

		order.DeliveryPersonID = deliveryPersonID

		if updateErr := orderRepo.Update(ctx, order); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update order assignment")
		}

		updated = order

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Delivery assignment failed", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute delivery assignment transaction")
	}

	return updated, nil
}

// ListAssignedOrders returns the orders assigned to a delivery person.
func (srv *orderService) ListAssignedOrders(ctx context.Context, deliveryPersonID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByDeliveryPerson(ctx, deliveryPersonID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assigned orders")
	}

	return orders, nil
}

// UpdateDeliveryStatus lets a delivery person advance an assigned order.
// An order that is absent or assigned to someone else reads as not found,
// deliberately indistinguishable. Only the forward fulfilment statuses are
// settable on this path.
func (srv *orderService) UpdateDeliveryStatus(ctx context.Context, deliveryPersonID, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	srv.log(ctx).Info("Updating delivery status", slog.Any("orderID", orderID), slog.Any("status", status))

	if !status.IsValid() || !status.DeliverySettable() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "status not settable by delivery personnel")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, findErr := orderRepo.FindByIDForDelivery(ctx, orderID, deliveryPersonID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found or not assigned")
			}

			return errors.Wrap(findErr, "failed to find assigned order")
		}

		if !order.Status.CanTransition(status, entity.RoleDelivery) {
			return errors.Wrapf(domainerrors.ErrInvalidStatusTransition, "cannot move order from %s to %s", order.Status, status)
		}
		order.Status = status

		if updateErr := orderRepo.Update(ctx, order); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update order status")
		}

		updated = order

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Delivery status update failed", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute delivery status transaction")
	}

	return updated, nil
}
