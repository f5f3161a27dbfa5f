package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/services"
	"github.com/yeremiapane/rcoffee/utils"
)

// AdminController serves user management, store settings and reports.
type AdminController struct {
	Users    *services.UserService
	Settings *services.SettingsService
	Reports  *services.ReportService
}

func NewAdminController(users *services.UserService, settings *services.SettingsService, reports *services.ReportService) *AdminController {
	return &AdminController{Users: users, Settings: settings, Reports: reports}
}

// GetUsers lists accounts, optionally filtered by ?role=.
func (ac *AdminController) GetUsers(c *gin.Context) {
	users, err := ac.Users.List(c.Request.Context(), models.Role(c.Query("role")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of users", users)
}

func (ac *AdminController) GetPendingUsers(c *gin.Context) {
	users, err := ac.Users.Pending(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending users", users)
}

func (ac *AdminController) ApproveUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	user, err := ac.Users.Approve(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User approved", user)
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	if err := ac.Users.Delete(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted", nil)
}

func (ac *AdminController) AddUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.AddUserInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := ac.Users.Add(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "User created", user)
}

func (ac *AdminController) UpdateUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	var req services.UpdateUserInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := ac.Users.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

func (ac *AdminController) GetSettings(c *gin.Context) {
	settings, err := ac.Settings.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Store settings", settings)
}

func (ac *AdminController) UpdateSettings(c *gin.Context) {
	var req services.SettingsInput
	if !bindJSON(c, &req) {
		return
	}
	settings, err := ac.Settings.Update(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Store settings updated", settings)
}

func (ac *AdminController) GetPaymentReport(c *gin.Context) {
	report, err := ac.Reports.PaymentReport(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment report", report)
}

// ExportPaymentReportPDF downloads the payment report as a PDF.
func (ac *AdminController) ExportPaymentReportPDF(c *gin.Context) {
	pdf, err := ac.Reports.PaymentReportPDF(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	filename := fmt.Sprintf("payment-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Reports.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
