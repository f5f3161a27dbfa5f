package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/services"
	"github.com/yeremiapane/rcoffee/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

// reservationView adds the statuses the viewer may move the reservation to.
type reservationView struct {
	*models.Reservation
	Actions []models.ReservationStatus `json:"actions"`
}

func viewReservation(user *models.User, res *models.Reservation) reservationView {
	actions := services.ReservationActions(user, res)
	if actions == nil {
		actions = []models.ReservationStatus{}
	}
	return reservationView{Reservation: res, Actions: actions}
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.CreateReservationInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := rc.Reservations.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", viewReservation(user, res))
}

// GetReservations lists the caller's reservations, or all of them for
// staff.
func (rc *ReservationController) GetReservations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := rc.Reservations.List(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]reservationView, len(list))
	for i := range list {
		views[i] = viewReservation(user, &list[i])
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", views)
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}
	res, err := rc.Reservations.Get(c.Request.Context(), user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", viewReservation(user, res))
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}
	res, err := rc.Reservations.Cancel(c.Request.Context(), user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", viewReservation(user, res))
}

// UpdateReservationStatus is the staff endpoint for confirm, finish and
// cancel.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}
	var req struct {
		Status models.ReservationStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := rc.Reservations.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", viewReservation(user, res))
}

// GetCheckInQR serves the reservation's check-in code as a PNG.
func (rc *ReservationController) GetCheckInQR(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}
	png, err := rc.Reservations.CheckInQR(c.Request.Context(), user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=reservation-%d.png", id))
	c.Data(http.StatusOK, "image/png", png)
}
