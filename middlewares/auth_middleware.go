package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

// UserLoader resolves the user behind a token's user id. It must refuse
// accounts that may not sign in.
type UserLoader interface {
	CurrentUser(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware requires a bearer token and loads its user into the
// context.
func AuthMiddleware(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			return
		}
		authenticate(c, users, token)
	}
}

func authenticate(c *gin.Context, users UserLoader, token string) {
	claims, err := utils.ParseToken(token)
	if err != nil || claims.UserID == 0 {
		utils.AbortWithError(c, http.StatusUnauthorized, errors.New("Invalid or expired token"))
		return
	}

	user, err := users.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		// a pending cashier or a deleted account both land here
		utils.ErrorLogger.WithError(err).WithField("user_id", claims.UserID).Warn("token user rejected")
		utils.AbortWithError(c, http.StatusUnauthorized, errors.New("Invalid or expired token"))
		return
	}

	c.Set(userKey, user)
	c.Set(tokenKey, token)
	c.Next()
}

// BearerToken returns the token from "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// CurrentUser returns the signed-in user or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentToken returns the raw token the request authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
