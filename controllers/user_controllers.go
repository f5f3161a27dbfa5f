package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rcoffee/middlewares"
	"github.com/yeremiapane/rcoffee/services"
	"github.com/yeremiapane/rcoffee/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// Register creates a customer account, or a cashier account awaiting
// approval.
func (uc *UserController) Register(c *gin.Context) {
	var req services.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := uc.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "User registered"
	if user.IsPendingCashier() {
		message = "Registration received. Your cashier account is waiting for approval"
	}
	utils.RespondJSON(c, http.StatusCreated, message, user)
}

func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	result, err := uc.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", result)
}

// Logout revokes the bearer token sent with the request.
func (uc *UserController) Logout(c *gin.Context) {
	token := middlewares.BearerToken(c)
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Authorization header missing"))
		return
	}
	if err := uc.Users.Logout(token); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

func (uc *UserController) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current user", user)
}

// UpdateMe lets a user change their own name, email or password.
func (uc *UserController) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.UpdateUserInput
	if !bindJSON(c, &req) {
		return
	}
	req.Status = nil
	updated, err := uc.Users.Update(c.Request.Context(), user, user.ID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile updated", updated)
}

// Dashboard tells the frontend which dashboard tabs to render.
func (uc *UserController) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard", gin.H{
		"user": user,
		"tabs": services.DashboardTabs(user),
	})
}
