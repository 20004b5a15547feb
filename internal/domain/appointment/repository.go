package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/timeofday"
)

type Repository interface {
	// -------- Catalog --------
	GetProfessional(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	ListActiveProfessionals(
		ctx context.Context,
	) ([]models.Professional, error)

	ListServicesForProfessional(
		ctx context.Context,
		professionalID uint,
	) ([]models.Service, error)

	// IsServiceOffered checks the eligibility association. Inactive
	// professionals or services are never eligible.
	IsServiceOffered(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (bool, error)

	// -------- Availability --------
	ListScheduledTimes(
		ctx context.Context,
		professionalID uint,
		date time.Time,
	) ([]timeofday.Clock, error)

	// -------- Booking --------

	// BookAppointment atomically reuses or creates the client (matched by
	// non-empty email) and inserts ap. When the slot is already scheduled
	// it returns a CodeSlotTaken business error and persists nothing.
	BookAppointment(
		ctx context.Context,
		client models.Client,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentDetails preloads client, professional and service.
	GetAppointmentDetails(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing / reports --------
	ListAppointmentsOn(
		ctx context.Context,
		date time.Time,
	) ([]models.Appointment, error)

	ListRecentAppointments(
		ctx context.Context,
		limit int,
	) ([]models.Appointment, error)

	ListUpcomingScheduled(
		ctx context.Context,
		from time.Time,
		limit int,
	) ([]models.Appointment, error)

	CountScheduledOn(
		ctx context.Context,
		date time.Time,
	) (int64, error)

	DailyScheduledCounts(
		ctx context.Context,
		limit int,
	) ([]DailyCount, error)
}
