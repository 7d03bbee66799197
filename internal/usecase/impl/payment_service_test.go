package impl

import (
	"context"
	"encoding/base64"
	"testing"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	mockService "market/internal/mocks/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentServiceFixtures struct {
	service usecase.PaymentUsecase
	repos   testRepos
	qr      *mockService.MockPaymentQRService
}

func createTestPaymentService(t *testing.T) paymentServiceFixtures {
	t.Helper()

	repos := newTestRepos()
	qr := new(mockService.MockPaymentQRService)

	svc := NewPaymentService(PaymentServiceParams{
		TxManager: repos.txManager,
		OrderRepo: repos.orderRepo,
		QRService: qr,
		Logger:    newDiscardLogger(),
	})

	return paymentServiceFixtures{service: svc, repos: repos, qr: qr}
}

func TestPaymentService_GenerateUPIQR(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()

	order := &entity.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-1740830400000-ABCDEF123",
		UserID:      userID,
		Total:       1280,
	}

	fx.repos.orderRepo.On("FindByIDForUser", ctx, order.ID, userID).Return(order, nil)
	fx.qr.On("GenerateUPIQR", order.OrderNumber, 1280.0).Return(&service.PaymentQR{
		UPIURL: "upi://pay?pa=anonshop@paytm&am=1280.00",
		PNG:    []byte{0x89, 0x50, 0x4e, 0x47},
	}, nil)

	out, err := fx.service.GenerateUPIQR(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, out.OrderNumber)
	assert.Equal(t, 1280.0, out.Amount)
	assert.Contains(t, out.UPIURL, "upi://pay?")
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47}), out.QRPNGBase64)
}

func TestPaymentService_GenerateUPIQR_ForeignOrderReadsAsAbsent(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.repos.orderRepo.On("FindByIDForUser", ctx, orderID, userID).
		Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.GenerateUPIQR(ctx, userID, orderID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestPaymentService_UpdatePaymentStatus(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()

	order := &entity.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-1",
		UserID:        userID,
		Total:         500,
		PaymentMethod: entity.PaymentUPI,
		PaymentStatus: entity.PaymentPending,
	}

	fx.repos.orderRepo.On("FindByIDForUser", ctx, order.ID, userID).Return(order, nil)
	fx.repos.orderRepo.On("Update", ctx, order).Return(nil)

	summary, err := fx.service.UpdatePaymentStatus(ctx, userID, order.ID, &usecase.UpdatePaymentInput{
		PaymentStatus: entity.PaymentCompleted,
		TransactionID: "txn-789",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCompleted, summary.PaymentStatus)
	assert.Equal(t, "txn-789", summary.TransactionID)
}

func TestPaymentService_UpdatePaymentStatus_UnknownStatus(t *testing.T) {
	fx := createTestPaymentService(t)

	_, err := fx.service.UpdatePaymentStatus(context.Background(), uuid.New(), uuid.New(), &usecase.UpdatePaymentInput{
		PaymentStatus: entity.PaymentStatus("SETTLED"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
