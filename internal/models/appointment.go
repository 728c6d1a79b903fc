package models

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// Appointment times are ISO-8601 strings and are echoed back exactly as submitted.
type Appointment struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	DoctorID    string `json:"doctorId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      Status `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

// NewAppointment is the body accepted by POST /api/appointments.
type NewAppointment struct {
	PatientName string `json:"patientName" binding:"required"`
	DoctorID    string `json:"doctorId" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Status      Status `json:"status" binding:"required,oneof=confirmed pending cancelled"`
	Notes       string `json:"notes,omitempty"`
}

// WithID returns the stored form of the appointment.
func (n NewAppointment) WithID(id string) Appointment {
	return Appointment{
		ID:          id,
		PatientName: n.PatientName,
		DoctorID:    n.DoctorID,
		StartTime:   n.StartTime,
		EndTime:     n.EndTime,
		Status:      n.Status,
		Notes:       n.Notes,
	}
}
