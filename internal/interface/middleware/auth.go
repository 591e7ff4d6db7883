package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"goblog/pkg/helpers"
	"goblog/pkg/response"
)

// Auth validates the session cookie and ensures an active session exists in
// Redis. It sets userID, userName, userEmail, and isAdmin in the Gin context
// on success.
func Auth(rdb *redis.Client, tokens *helpers.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing session token", nil)
			c.Abort()
			return
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid session token", nil)
			c.Abort()
			return
		}

		// Retrieve session from Redis as a hash; a reset or logout deletes it,
		// which invalidates otherwise-valid tokens.
		key := helpers.SessionKey(claims.UserID)
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userName", data["name"])
		c.Set("userEmail", data["email"])
		c.Set("isAdmin", claims.Admin)
		c.Next()
	}
}

// RequireAdmin gates management routes. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			response.Error[any](c, http.StatusForbidden, "admin only", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
