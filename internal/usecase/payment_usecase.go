package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// UPIQROutput is the generated payment deep link and its QR image.
type UPIQROutput struct {
	OrderNumber string  `json:"orderNumber"`
	Amount      float64 `json:"amount"`
	UPIURL      string  `json:"upiUrl"`
	QRPNGBase64 string  `json:"qrCode"`
}

// UpdatePaymentInput sets the payment flag on an owned order.
type UpdatePaymentInput struct {
	PaymentStatus entity.PaymentStatus
	TransactionID string
}

// PaymentSummary is the owner-visible payment state of an order.
type PaymentSummary struct {
	OrderNumber   string               `json:"orderNumber"`
	Total         float64              `json:"total"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	TransactionID string               `json:"transactionId,omitempty"`
}

// PaymentUsecase defines the UPI payment stub. All lookups are
// owner-scoped; an order belonging to someone else reads as absent.
type PaymentUsecase interface {
	GenerateUPIQR(ctx context.Context, userID, orderID uuid.UUID) (*UPIQROutput, error)
	UpdatePaymentStatus(ctx context.Context, userID, orderID uuid.UUID, input *UpdatePaymentInput) (*PaymentSummary, error)
	GetPaymentStatus(ctx context.Context, userID, orderID uuid.UUID) (*PaymentSummary, error)
}
