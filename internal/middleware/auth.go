package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/internal/handler"
	"github.com/synapsehq/synapse-api/pkg/auth"
	"github.com/synapsehq/synapse-api/pkg/errors"
)

const (
	ContextUserID   = "user_id"
	ContextUserType = "user_type"
)

type AuthMiddleware struct {
	tokens auth.JWTService
}

func NewAuthMiddleware(tokens auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the bearer token and stores the caller's identity
// in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.tokens.ValidateToken(parts[1])
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserType, claims.UserType)
		c.Next()
	}
}

// RequireUserType restricts an endpoint to the listed account types.
func (m *AuthMiddleware) RequireUserType(types ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := c.GetString(ContextUserType)
		for _, t := range types {
			if t == userType {
				c.Next()
				return
			}
		}
		unauthorized(c, "insufficient permissions")
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, handler.Response{
		Success: false,
		Error: &handler.ErrorBody{
			Code:    errors.CodeUnauthorized,
			Message: message,
		},
	})
}
