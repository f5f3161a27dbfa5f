package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/services"
	"github.com/yeremiapane/rcoffee/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

// UpdatePaymentStatus sets a reservation deposit to pending, paid or
// refunded.
// UpdatePaymentStatus answers with the whole reservation, payment included.
func (pc *PaymentController) UpdatePaymentStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}
	var req struct {
		Status models.PaymentStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := pc.Payments.UpdatePaymentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status updated", viewReservation(user, res))
}
