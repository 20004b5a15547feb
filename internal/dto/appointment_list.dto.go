package dto

import (
	"time"

	"github.com/BruksfildServices01/agenda-online/internal/models"
)

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	Date             time.Time `json:"date"`
	Time             string    `json:"time"`
	Status           string    `json:"status"`
	ClientName       string    `json:"client_name"`
	ClientEmail      string    `json:"client_email,omitempty"`
	ClientPhone      string    `json:"client_phone,omitempty"`
	ProfessionalName string    `json:"professional_name"`
	ServiceName      string    `json:"service_name"`
}

// FromAppointment expects Client, Professional and Service preloaded.
func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:               ap.ID,
		Date:             ap.AppointmentDate,
		Time:             ap.AppointmentTime.String(),
		Status:           ap.Status,
		ClientName:       ap.Client.Name,
		ClientEmail:      ap.Client.Email,
		ClientPhone:      ap.Client.Phone,
		ProfessionalName: ap.Professional.Name,
		ServiceName:      ap.Service.Name,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
