package handlers

import (
	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-mock-api/internal/models"
)

type AppointmentService interface {
	AppointmentsByWeek(week string) ([]models.Appointment, error)
	Create(apt models.NewAppointment) (models.Appointment, error)
}

type DoctorService interface {
	ListDoctors() []models.Doctor
}

// Handler carries the services shared by all routes.
type Handler struct {
	Appointments AppointmentService
	Doctors      DoctorService
	Logger       zerolog.Logger
}

func NewHandler(appointments AppointmentService, doctors DoctorService, logger zerolog.Logger) *Handler {
	return &Handler{
		Appointments: appointments,
		Doctors:      doctors,
		Logger:       logger,
	}
}
