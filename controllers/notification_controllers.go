package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rcoffee/services"
	"github.com/yeremiapane/rcoffee/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// GetMyNotifications lists the caller's notifications, newest first.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := nc.Notifications.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of notifications", list)
}

func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := nc.Notifications.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Unread notifications", gin.H{"unread": n})
}

func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "notif_id")
	if !ok {
		return
	}
	n, err := nc.Notifications.MarkRead(c.Request.Context(), user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", n)
}

// CreateNotification lets staff message a customer directly.
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	var req services.CreateNotificationInput
	if !bindJSON(c, &req) {
		return
	}
	n, err := nc.Notifications.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Notification created", n)
}
