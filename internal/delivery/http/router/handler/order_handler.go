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

// OrderHandler holds dependencies for order lifecycle handlers.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required"`
	ShippingAddress string             `json:"shippingAddress" validate:"required"`
	BillingAddress  string             `json:"billingAddress"`
	Notes           string             `json:"notes"`
}

// Create handles order placement for the authenticated user.
func (h *OrderHandler) Create(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), user.ID, &usecase.CreateOrderInput{
		Items:           items,
		PaymentMethod:   entity.PaymentMethod(req.PaymentMethod),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// List returns the authenticated user's own order history.
func (h *OrderHandler) List(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	orders, err := h.uc.ListOrders(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// Get returns one of the authenticated user's own orders. Someone else's
// order reads as not found.
func (h *OrderHandler) Get(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), user.ID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListAll returns every order for the admin overview.
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.uc.ListAllOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

type updateStatusRequest struct {
	Status        string  `json:"status" validate:"required"`
	PaymentStatus *string `json:"paymentStatus"`
}

// UpdateStatus handles the admin order status mutation. The payment status
// travels on the same request and is updated independently when present.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.UpdateStatusInput{
		Status: entity.OrderStatus(req.Status),
	}
	if req.PaymentStatus != nil {
		paymentStatus := entity.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &paymentStatus
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), orderID, user.Role, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

type assignDeliveryRequest struct {
	DeliveryPersonID *uuid.UUID `json:"deliveryPersonId"`
}

// AssignDelivery sets or clears the delivery person of an order. A null id
// unassigns.
func (h *OrderHandler) AssignDelivery(c echo.Context) error {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var req assignDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}

	order, err := h.uc.AssignDelivery(c.Request().Context(), orderID, req.DeliveryPersonID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Delivery assignment updated successfully")
}

// ListAssigned returns the orders assigned to the authenticated delivery person.
func (h *OrderHandler) ListAssigned(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	orders, err := h.uc.ListAssignedOrders(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Assigned orders retrieved successfully")
}

type deliveryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateDeliveryStatus advances an assigned order along the fulfilment chain.
// Orders not assigned to the caller read as not found.
func (h *OrderHandler) UpdateDeliveryStatus(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var req deliveryStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.UpdateDeliveryStatus(c.Request().Context(), user.ID, orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}
