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

type orderServiceFixtures struct {
	service usecase.OrderUsecase
	repos   testRepos
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	t.Helper()

	repos := newTestRepos()
	service := NewOrderService(OrderServiceParams{
		TxManager: repos.txManager,
		OrderRepo: repos.orderRepo,
		UserRepo:  repos.userRepo,
		Logger:    newDiscardLogger(),
	})

	return orderServiceFixtures{service: service, repos: repos}
}

func activeProduct(price float64, stock int) *entity.Product {
	return &entity.Product{
		ID:       uuid.New(),
		Name:     "widget",
		Price:    price,
		Stock:    stock,
		SKU:      "WID-" + uuid.NewString()[:8],
		IsActive: true,
	}
}

func TestOrderService_CreateOrder_ComputesTotalsAndDecrementsStock(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Two units of a 500 product: subtotal 1000, tax 180, shipping 100.
	product := activeProduct(500, 10)

	fx.repos.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.repos.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.repos.productRepo.On("DecrementStock", ctx, product.ID, 2).Return(nil)

	order, err := fx.service.CreateOrder(ctx, userID, &usecase.CreateOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod:   entity.PaymentUPI,
		ShippingAddress: "42 Some Street",
		BillingAddress:  "42 Some Street",
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, order.Subtotal)
	assert.Equal(t, 180.0, order.Tax)
	assert.Equal(t, 100.0, order.Shipping)
	assert.Equal(t, 1280.0, order.Total)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, entity.PaymentPending, order.PaymentStatus)
	assert.Equal(t, userID, order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 500.0, order.Items[0].Price)
	assert.Contains(t, order.OrderNumber, "ORD-")

	fx.repos.productRepo.AssertCalled(t, "DecrementStock", ctx, product.ID, 2)
}

func TestOrderService_CreateOrder_UsesSalePrice(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	product := activeProduct(2000, 5)
	sale := 1500.0
	product.SalePrice = &sale

	fx.repos.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.repos.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.repos.productRepo.On("DecrementStock", ctx, product.ID, 1).Return(nil)

	order, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		Items:         []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: entity.PaymentCOD,
	})
	require.NoError(t, err)

	// Subtotal above the free-shipping threshold.
	assert.Equal(t, 1500.0, order.Subtotal)
	assert.Equal(t, 0.0, order.Shipping)
	assert.Equal(t, 1500.0, order.Items[0].Price)
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	product := activeProduct(500, 1)

	fx.repos.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	_, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		Items:         []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: entity.PaymentUPI,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
	fx.repos.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.repos.productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_ValidatesAllBeforeAnyWrite(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	good := activeProduct(100, 10)
	inactive := activeProduct(200, 10)
	inactive.IsActive = false

	fx.repos.productRepo.On("FindByID", ctx, good.ID).Return(good, nil)
	fx.repos.productRepo.On("FindByID", ctx, inactive.ID).Return(inactive, nil)

	_, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: good.ID, Quantity: 1},
			{ProductID: inactive.ID, Quantity: 1},
		},
		PaymentMethod: entity.PaymentUPI,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductUnavailable))
	fx.repos.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.repos.productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_ConcurrentStockConflict(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	product := activeProduct(500, 1)

	fx.repos.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.repos.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.repos.productRepo.On("DecrementStock", ctx, product.ID, 1).Return(repository.ErrStockConflict)

	_, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		Items:         []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: entity.PaymentUPI,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		PaymentMethod: entity.PaymentUPI,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOrderService_UpdateStatus_ForwardStep(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	order := &entity.Order{ID: uuid.New(), Status: entity.OrderPending, PaymentStatus: entity.PaymentPending}

	fx.repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	fx.repos.orderRepo.On("Update", ctx, order).Return(nil)

	updated, err := fx.service.UpdateStatus(ctx, order.ID, entity.RoleAdmin, &usecase.UpdateStatusInput{
		Status: entity.OrderConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderConfirmed, updated.Status)
}

func TestOrderService_UpdateStatus_RejectsBackwardTransition(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	order := &entity.Order{ID: uuid.New(), Status: entity.OrderDelivered}

	fx.repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := fx.service.UpdateStatus(ctx, order.ID, entity.RoleAdmin, &usecase.UpdateStatusInput{
		Status: entity.OrderPending,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidStatusTransition))
	fx.repos.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_AdminCancelAndPayment(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	order := &entity.Order{ID: uuid.New(), Status: entity.OrderProcessing, PaymentStatus: entity.PaymentCompleted}

	fx.repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	fx.repos.orderRepo.On("Update", ctx, order).Return(nil)

	refunded := entity.PaymentRefunded
	updated, err := fx.service.UpdateStatus(ctx, order.ID, entity.RoleAdmin, &usecase.UpdateStatusInput{
		Status:        entity.OrderCancelled,
		PaymentStatus: &refunded,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, updated.Status)
	assert.Equal(t, entity.PaymentRefunded, updated.PaymentStatus)
}

func TestOrderService_UpdateDeliveryStatus_NotAssignedReadsAsNotFound(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	deliveryID := uuid.New()
	orderID := uuid.New()

	fx.repos.orderRepo.On("FindByIDForDelivery", ctx, orderID, deliveryID).
		Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.UpdateDeliveryStatus(ctx, deliveryID, orderID, entity.OrderShipped)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestOrderService_UpdateDeliveryStatus_RejectsReservedStatuses(t *testing.T) {
	fx := createTestOrderService(t)

	for _, status := range []entity.OrderStatus{entity.OrderPending, entity.OrderCancelled, entity.OrderRefunded} {
		_, err := fx.service.UpdateDeliveryStatus(context.Background(), uuid.New(), uuid.New(), status)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
}

func TestOrderService_UpdateDeliveryStatus_ForwardStep(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	deliveryID := uuid.New()

	order := &entity.Order{ID: uuid.New(), Status: entity.OrderOutForDelivery, DeliveryPersonID: &deliveryID}

	fx.repos.orderRepo.On("FindByIDForDelivery", ctx, order.ID, deliveryID).Return(order, nil)
	fx.repos.orderRepo.On("Update", ctx, order).Return(nil)

	updated, err := fx.service.UpdateDeliveryStatus(ctx, deliveryID, order.ID, entity.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, updated.Status)
}

func TestOrderService_AssignDelivery_RequiresDeliveryRole(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	order := &entity.Order{ID: uuid.New(), Status: entity.OrderConfirmed}
	notDelivery := &entity.User{ID: uuid.New(), Role: entity.RoleUser, IsActive: true}

	fx.repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	fx.repos.userRepo.On("FindByID", ctx, notDelivery.ID).Return(notDelivery, nil)

	_, err := fx.service.AssignDelivery(ctx, order.ID, &notDelivery.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotDeliveryPerson))
	fx.repos.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_AssignDelivery_AssignAndUnassign(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	person := &entity.User{ID: uuid.New(), Role: entity.RoleDelivery, IsActive: true}
	order := &entity.Order{ID: uuid.New(), Status: entity.OrderConfirmed}

	fx.repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	fx.repos.userRepo.On("FindByID", ctx, person.ID).Return(person, nil)
	fx.repos.orderRepo.On("Update", ctx, order).Return(nil)

	updated, err := fx.service.AssignDelivery(ctx, order.ID, &person.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveryPersonID)
	assert.Equal(t, person.ID, *updated.DeliveryPersonID)

	updated, err = fx.service.AssignDelivery(ctx, order.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.DeliveryPersonID)
}

func TestOrderService_GetOrder_OwnerScoped(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.repos.orderRepo.On("FindByIDForUser", ctx, orderID, userID).
		Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.GetOrder(ctx, userID, orderID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}
