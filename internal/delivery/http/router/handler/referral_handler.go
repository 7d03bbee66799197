package handler

import (
	"net/http"
	"time"

	deliverycontext "market/internal/delivery/context"
	"market/internal/delivery/http/response"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReferralHandler holds dependencies for referral code and tree handlers.
type ReferralHandler struct {
	uc usecase.ReferralUsecase
}

// NewReferralHandler is the constructor for ReferralHandler, injected by Fx.
func NewReferralHandler(uc usecase.ReferralUsecase) *ReferralHandler {
	return &ReferralHandler{uc: uc}
}

// GetMyCode returns the authenticated user's own referral code.
func (h *ReferralHandler) GetMyCode(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	code, err := h.uc.GetMyCode(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"referralCode": code}, "Referral code retrieved successfully")
}

// GetMyStats returns the authenticated user's direct referrals and their count.
func (h *ReferralHandler) GetMyStats(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	stats, err := h.uc.GetMyStats(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Referral stats retrieved successfully")
}

// GetTree returns the full referral forest for the admin view.
func (h *ReferralHandler) GetTree(c echo.Context) error {
	forest, err := h.uc.BuildTree(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, forest, "Referral tree retrieved successfully")
}

type createReferralCodeRequest struct {
	UserID    uuid.UUID  `json:"userId" validate:"required"`
	Code      string     `json:"code"`
	MaxUsage  *int       `json:"maxUsage"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// CreateCode registers a managed campaign code for a user. An empty code is
// generated server-side.
func (h *ReferralHandler) CreateCode(c echo.Context) error {
	var req createReferralCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid referral code input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	code, err := h.uc.CreateCode(c.Request().Context(), &usecase.CreateReferralCodeInput{
		UserID:    req.UserID,
		Code:      req.Code,
		MaxUsage:  req.MaxUsage,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, code, "Referral code created successfully")
}

// ListCodes returns every managed code for the admin registry view.
func (h *ReferralHandler) ListCodes(c echo.Context) error {
	codes, err := h.uc.ListCodes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, codes, "Referral codes retrieved successfully")
}

type updateReferralCodeRequest struct {
	IsActive  *bool      `json:"isActive"`
	MaxUsage  *int       `json:"maxUsage"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// UpdateCode mutates a managed code's activity window.
func (h *ReferralHandler) UpdateCode(c echo.Context) error {
	codeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid referral code id")
	}

	var req updateReferralCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid referral code input")
	}

	code, err := h.uc.UpdateCode(c.Request().Context(), codeID, &usecase.UpdateReferralCodeInput{
		IsActive:  req.IsActive,
		MaxUsage:  req.MaxUsage,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, code, "Referral code updated successfully")
}
