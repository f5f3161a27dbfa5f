package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rcoffee/services"
	"github.com/yeremiapane/rcoffee/utils"
)

type TableController struct {
	Reservations *services.ReservationService
}

func NewTableController(reservations *services.ReservationService) *TableController {
	return &TableController{Reservations: reservations}
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Reservations.Tables(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetAvailableTables answers ?date=YYYY-MM-DD&time=7:00 PM&guests=4.
func (tc *TableController) GetAvailableTables(c *gin.Context) {
	var q services.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tables, err := tc.Reservations.AvailableTables(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
}

func (tc *TableController) GetMaxCapacity(c *gin.Context) {
	n, err := tc.Reservations.MaxPartySize(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Maximum party size", gin.H{"max_guests": n})
}

func (tc *TableController) GetTimeSlots(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Time slots", services.TimeSlots())
}
