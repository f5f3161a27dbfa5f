package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rcoffee/database"
	"github.com/yeremiapane/rcoffee/middlewares"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/services"
	"github.com/yeremiapane/rcoffee/utils"
)

var errInternal = errors.New("internal server error")

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNoCapacity),
		errors.Is(err, services.ErrEmailInUse),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, database.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, utils.ErrInvalidToken),
		errors.Is(err, utils.ErrBlacklistedToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAccountPending), errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondServiceError writes the error envelope. Unexpected errors are
// logged and hidden from the client.
func respondServiceError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		utils.ErrorLogger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		utils.RespondError(c, code, errInternal)
		return
	}
	utils.RespondError(c, code, err)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the signed-in user, answering 401 when there is none.
func currentUser(c *gin.Context) (*models.User, bool) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return nil, false
	}
	return user, true
}
