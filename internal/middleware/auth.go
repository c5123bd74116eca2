package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/fridge-inventory/backend/internal/service"
)

const (
	// TokenHeader carries the access token on every protected request.
	TokenHeader = "x-auth"
	// UserIDKey is the gin context key holding the authenticated user id.
	UserIDKey = "user_id"
)

// Authenticator resolves an access token to the id of an existing user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthMiddleware rejects requests without a valid token for an existing user.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.Authenticate(c.Request.Context(), c.GetHeader(TokenHeader))
		if err != nil {
			var domainErr *service.Error
			if errors.As(err, &domainErr) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: domainErr.Message})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the id stored by AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
