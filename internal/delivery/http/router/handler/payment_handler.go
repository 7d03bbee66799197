package handler

import (
	"net/http"

	deliverycontext "market/internal/delivery/context"
	"market/internal/delivery/http/response"
	"market/internal/domain/entity"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for the UPI payment stub handlers.
type PaymentHandler struct {
	uc usecase.PaymentUsecase
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type generateQRRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

// GenerateUPIQR builds the UPI deep link and QR image for an owned order.
func (h *PaymentHandler) GenerateUPIQR(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	var req generateQRRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.GenerateUPIQR(c.Request().Context(), user.ID, req.OrderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "UPI QR generated successfully")
}

type updatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
	TransactionID string `json:"transactionId"`
}

// UpdateStatus sets the payment flag on an owned order.
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	orderID, err := parseUUIDParam(c, "orderId")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	summary, err := h.uc.UpdatePaymentStatus(c.Request().Context(), user.ID, orderID, &usecase.UpdatePaymentInput{
		PaymentStatus: entity.PaymentStatus(req.PaymentStatus),
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "Payment status updated successfully")
}

// GetStatus returns the owner-visible payment state of an order.
func (h *PaymentHandler) GetStatus(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	orderID, err := parseUUIDParam(c, "orderId")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	summary, err := h.uc.GetPaymentStatus(c.Request().Context(), user.ID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "Payment status retrieved successfully")
}
