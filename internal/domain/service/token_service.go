package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"market/internal/domain/entity"
)

// Claims defines the custom claims carried by session tokens.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   entity.Role
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating session tokens.
type TokenService interface {
	// GenerateToken creates a signed session token for a user.
	GenerateToken(userID uuid.UUID, email string, role entity.Role) (string, error)

	// ValidateToken checks a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
