package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acmlab/labsite/internal/domain"
)

const (
	authUserIDKey = "auth_user_id"
	authRoleKey   = "auth_role"
)

// TokenVerifier validates a bearer token and returns the authenticated
// user id and role. Implemented by the auth module's JWTManager.
type TokenVerifier interface {
	Verify(token string) (userID uint, role string, err error)
}

// RequireAdmin returns a gin middleware that gates mutation endpoints behind
// an authenticated admin. Requests without a valid bearer token, or whose
// token does not carry the admin role, are rejected with 401 and the
// standard error envelope.
func RequireAdmin(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		userID, role, err := verifier.Verify(token)
		if err != nil || role != domain.RoleAdmin {
			abortUnauthorized(c)
			return
		}

		c.Set(authUserIDKey, userID)
		c.Set(authRoleKey, role)
		c.Next()
	}
}

// AuthUserID extracts the authenticated user id from the gin.Context.
// Returns 0 if the request was not authenticated.
func AuthUserID(c *gin.Context) uint {
	if v, exists := c.Get(authUserIDKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
