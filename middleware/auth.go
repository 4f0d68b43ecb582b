package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"caption-studio-server/pkg/auth"
	"caption-studio-server/pkg/logger"
)

const sessionIDKey = "session_id"

// SessionRequired checks the bearer token and that it was issued for the
// :session_id in the path.
func SessionRequired(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			// Browsers cannot set headers on websocket upgrades.
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			logger.Warnf("Invalid token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		if claims.SessionID != c.Param("session_id") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Token does not grant access to this session",
			})
			return
		}

		c.Set(sessionIDKey, claims.SessionID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return "", false
	}
	return tokenParts[1], true
}

func GetSessionID(c *gin.Context) (string, bool) {
	id, exists := c.Get(sessionIDKey)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
