package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"slotbook/internal/handler/httperr"
	"slotbook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxHostIDKey = "host_id"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireHost authenticates the host from a bearer token.
func (m *AuthMiddleware) RequireHost() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, "Access token required")
			return
		}

		hostID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ctxHostIDKey, hostID)
		c.Set("jwt_claims", map[string]any{
			"host_id": hostID.String(),
		})
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	resp := httperr.Response{Status: http.StatusUnauthorized}
	resp.Error.Message = msg
	resp.Error.Code = httperr.CodeUnauthorized
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
}

func GetHostID(c *gin.Context) (uuid.UUID, bool) {
	hostID, exists := c.Get(ctxHostIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := hostID.(uuid.UUID)
	return id, ok
}
