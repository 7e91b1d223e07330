package api

import (
	"net/http"

	"github.com/haedavja/hahahahgo/internal/constants"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired.
const (
	ctxUserEmail = "userEmail"
	ctxUserName  = "userName"
)

// AuthRequired validates the session cookie and injects the player identity
// into the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxUserEmail, claims.Sub)
		c.Set(ctxUserName, claims.Name)
		c.Next()
	}
}

func sessionEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}

func sessionName(c *gin.Context) string {
	return c.GetString(ctxUserName)
}
