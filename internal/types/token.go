package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims represents the claims in an access token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"userId"`
}
