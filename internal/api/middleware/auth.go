package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/martijn/resultsapi/internal/api/util"
	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/service"
)

const (
	AuthHeaderKey       = "Authorization"
	PrincipalContextKey = "principal"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get authorization header
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			util.AbortWithError(c, http.StatusUnauthorized, service.MsgUnauthorized)
			return
		}

		// Check if it's a Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			util.AbortWithError(c, http.StatusUnauthorized,
				"Invalid authorization header format. Expected 'Bearer <token>'")
			return
		}

		claims, err := authService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			util.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			util.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(PrincipalContextKey, principal)

		c.Next()
	}
}

// GetPrincipal returns the caller stored by AuthMiddleware.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	value, exists := c.Get(PrincipalContextKey)
	if !exists {
		return domain.Principal{}, false
	}

	principal, ok := value.(domain.Principal)
	return principal, ok
}
