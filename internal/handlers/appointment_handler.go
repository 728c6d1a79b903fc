package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-mock-api/internal/middleware"
	"github.com/harentsoaR/clinic-mock-api/internal/models"
	"github.com/harentsoaR/clinic-mock-api/internal/services"
)

// --- GET APPOINTMENTS FOR A WEEK ---
func (h *Handler) GetAppointments(c *gin.Context) {
	week := c.GetString(middleware.WeekKey)
	if week == "" {
		week = c.Query("week")
	}

	appointments, err := h.Appointments.AppointmentsByWeek(week)
	if errors.Is(err, services.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Str("week", week).Msg("fetch appointments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	if appointments == nil {
		appointments = make([]models.Appointment, 0)
	}
	c.JSON(http.StatusOK, appointments)
}

// --- CREATE APPOINTMENT ---
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req models.NewAppointment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	apt, err := h.Appointments.Create(req)
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time format, use ISO-8601"})
		return
	case errors.Is(err, services.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Time slot is not available"})
		return
	case err != nil:
		h.Logger.Error().Err(err).Msg("create appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, apt)
}
