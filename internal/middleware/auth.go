package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/apolaki-ghub/Project3/internal/auth"
)

const ClientKey = "client"

// AuthMiddleware requires a bearer token signed by issuer. A nil issuer
// leaves the route open.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if issuer == nil {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := issuer.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(ClientKey, claims.Client)
		c.Next()
	}
}
