package middleware

import (
	"net/http"
	"strings"

	"aarogya/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey is where the authenticated caller identity is stored on
// the gin context.
const ContextUserIDKey = "userID"

// AuthMiddleware validates the bearer token issued by the external identity
// provider and stores the opaque subject on the context. The engine does
// not interpret the identity beyond ownership checks.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			c.Abort()
			return
		}

		subject, err := utils.ExtractIDFromToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "invalid token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, subject)
		c.Next()
	}
}

// CallerID returns the authenticated caller identity set by AuthMiddleware.
func CallerID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
