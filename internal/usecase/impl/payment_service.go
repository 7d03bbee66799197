package impl

import (
	"context"
	"encoding/base64"
	"log/slog"

	deliverycontext "market/internal/delivery/context"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// paymentService implements the PaymentUsecase interface. It is a stub: no
// gateway is called, the payment flag is set by the client after scanning.
type paymentService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	qrService service.PaymentQRService
	logger    *slog.Logger
}

// PaymentServiceParams holds dependencies for paymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	QRService service.PaymentQRService
	Logger    *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		qrService: params.QRService,
		logger:    params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GenerateUPIQR builds the UPI deep link for an owned order and renders it as
// a QR PNG, returned base64-encoded.
func (srv *paymentService) GenerateUPIQR(ctx context.Context, userID, orderID uuid.UUID) (*usecase.UPIQROutput, error) {
	srv.log(ctx).Debug("Generating UPI QR", slog.Any("orderID", orderID))

	order, err := srv.findOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	qr, err := srv.qrService.GenerateUPIQR(order.OrderNumber, order.Total)
	if err != nil {
		srv.log(ctx).Error("Failed to generate UPI QR", slog.String("orderNumber", order.OrderNumber), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate UPI QR code")
	}

	return &usecase.UPIQROutput{
		OrderNumber: order.OrderNumber,
		Amount:      order.Total,
		UPIURL:      qr.UPIURL,
		QRPNGBase64: base64.StdEncoding.EncodeToString(qr.PNG),
	}, nil
}

// UpdatePaymentStatus sets the payment flag on an owned order, optionally
// recording a transaction reference.
func (srv *paymentService) UpdatePaymentStatus(ctx context.Context, userID, orderID uuid.UUID, input *usecase.UpdatePaymentInput) (*usecase.PaymentSummary, error) {
	srv.log(ctx).Info("Updating payment status", slog.Any("orderID", orderID), slog.Any("paymentStatus", input.PaymentStatus))

	if !input.PaymentStatus.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown payment status")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, findErr := orderRepo.FindByIDForUser(ctx, orderID, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "payment update failed")
			}

			return errors.Wrap(findErr, "failed to find order for user")
		}

		order.PaymentStatus = input.PaymentStatus
		if input.TransactionID != "" {
			order.TransactionID = input.TransactionID
		}

		if updateErr := orderRepo.Update(ctx, order); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update order payment")
		}

		updated = order

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Payment update failed", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute payment update transaction")
	}

	return paymentSummary(updated), nil
}

// GetPaymentStatus returns the payment state of an owned order.
func (srv *paymentService) GetPaymentStatus(ctx context.Context, userID, orderID uuid.UUID) (*usecase.PaymentSummary, error) {
	order, err := srv.findOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	return paymentSummary(order), nil
}

func (srv *paymentService) findOwnedOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find order for user")
	}

	return order, nil
}

func paymentSummary(order *entity.Order) *usecase.PaymentSummary {
	return &usecase.PaymentSummary{
		OrderNumber:   order.OrderNumber,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		TransactionID: order.TransactionID,
	}
}
