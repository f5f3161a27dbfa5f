package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WebSocketAuthMiddleware authenticates upgrade requests. Browsers cannot
// set headers on a websocket handshake, so the token may come as ?token=.
func WebSocketAuthMiddleware(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = BearerToken(c)
		}
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		authenticate(c, users, token)
	}
}
