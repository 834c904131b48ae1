package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"account-service/internal/auth"
)

// identityKey is where verified claims place the caller's username in the
// request context.
const identityKey = "identity.username"

// AuthRequired gates a route group behind bearer-token verification. A missing
// credential aborts with 401, a failed verification with 403; on success the
// caller's username is attached to the context and the chain continues.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(identityKey, claims.Username)
		c.Next()
	}
}

// callerUsername returns the identity attached by AuthRequired, if any.
func callerUsername(c *gin.Context) (string, bool) {
	username := c.GetString(identityKey)
	return username, username != ""
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
