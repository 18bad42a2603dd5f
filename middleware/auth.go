package middleware

import (
	"strings"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards the API surface the web view calls. Tokens are minted
// by the /app chat command; the only claim that matters is user_id.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := utils.ValidateAccessToken(tokenString, secret)
		if err != nil {
			utils.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// UserID pulls the authenticated user out of the request context.
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}
