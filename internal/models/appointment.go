package models

import (
	"time"

	"github.com/BruksfildServices01/agenda-online/internal/timeofday"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	ProfessionalID uint         `gorm:"not null;index:idx_appointments_professional_date" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"professional"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	// civil date (UTC midnight) and one of the fixed slots
	AppointmentDate time.Time       `gorm:"type:date;not null;index:idx_appointments_professional_date" json:"appointment_date"`
	AppointmentTime timeofday.Clock `gorm:"type:time;not null" json:"appointment_time"`

	Status      string     `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
