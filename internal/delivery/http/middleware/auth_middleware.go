// Package middleware contains the Echo middlewares of the HTTP delivery.
package middleware

import (
	"strings"

	deliverycontext "market/internal/delivery/context"
	"market/internal/delivery/http/response"
	"market/internal/domain/entity"
	"market/internal/domain/repository"
	"market/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the bearer token and attaches the authenticated user
// to the request context. Deactivated accounts are rejected even when their
// token is still valid.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Account no longer exists")
		}
		if !user.IsActive {
			return response.Unauthorized(c, "ACCOUNT_DEACTIVATED", "Account is deactivated")
		}

		deliverycontext.SetCurrentUser(c, &deliverycontext.AuthUser{
			ID:           user.ID,
			Email:        user.Email,
			Role:         user.Role,
			ReferralCode: user.ReferralCode,
		})

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated user's
// role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := deliverycontext.GetCurrentUser(c)
			if user == nil {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: user information missing")
			}

			if !entity.Roles(roles).Contains(user.Role) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: insufficient role")
			}

			return next(c)
		}
	}
}
