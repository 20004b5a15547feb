package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/timeofday"
)

const pgUniqueViolation = "23505"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var p models.Professional
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *AppointmentGormRepository) ListActiveProfessionals(
	ctx context.Context,
) ([]models.Professional, error) {

	var out []models.Professional
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) ListServicesForProfessional(
	ctx context.Context,
	professionalID uint,
) ([]models.Service, error) {

	var out []models.Service
	if err := r.db.WithContext(ctx).
		Joins("JOIN professional_services ps ON ps.service_id = services.id AND ps.professional_id = ?", professionalID).
		Where("services.active = ?", true).
		Order("services.name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) IsServiceOffered(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProfessionalService{}).
		Joins("JOIN professionals p ON p.id = professional_services.professional_id").
		Joins("JOIN services s ON s.id = professional_services.service_id").
		Where(
			"professional_services.professional_id = ? AND professional_services.service_id = ? AND p.active = ? AND s.active = ?",
			professionalID, serviceID, true, true,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListScheduledTimes(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) ([]timeofday.Clock, error) {

	var times []timeofday.Clock
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"professional_id = ? AND appointment_date = ? AND status = ?",
			professionalID, date, string(domain.StatusScheduled),
		).
		Order("appointment_time ASC").
		Pluck("appointment_time", &times).Error; err != nil {
		return nil, err
	}

	return times, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) BookAppointment(
	ctx context.Context,
	client models.Client,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing []models.Client
		if client.Email != "" {
			if err := tx.
				Where("email = ?", client.Email).
				Order("id ASC").
				Limit(1).
				Find(&existing).Error; err != nil {
				return err
			}
		}

		if len(existing) > 0 {
			ap.ClientID = existing[0].ID
		} else {
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
			ap.ClientID = client.ID
		}

		// O índice único parcial decide: sem linha inserida, o horário
		// já foi ocupado por outra requisição.
		res := tx.
			Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(ap)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return httperr.ErrBusiness(domain.CodeSlotTaken)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness(domain.CodeSlotTaken)
		}

		return nil
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// --------------------------------------------------
// Appointment (read / cancel)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentDetails(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withDetails(ctx).First(&ap, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(ap).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
		}).Error
}

// --------------------------------------------------
// Listing / reports
// --------------------------------------------------

func (r *AppointmentGormRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Preload("Service")
}

func (r *AppointmentGormRepository) ListAppointmentsOn(
	ctx context.Context,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.withDetails(ctx).
		Where("appointment_date = ?", date).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListRecentAppointments(
	ctx context.Context,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.withDetails(ctx).
		Order("appointment_date DESC").
		Order("appointment_time DESC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListUpcomingScheduled(
	ctx context.Context,
	from time.Time,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.withDetails(ctx).
		Where("appointment_date >= ? AND status = ?", from, string(domain.StatusScheduled)).
		Order("appointment_date ASC").
		Order("appointment_time ASC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CountScheduledOn(
	ctx context.Context,
	date time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("appointment_date = ? AND status = ?", date, string(domain.StatusScheduled)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AppointmentGormRepository) DailyScheduledCounts(
	ctx context.Context,
	limit int,
) ([]domain.DailyCount, error) {

	var out []domain.DailyCount
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("appointment_date AS date, COUNT(*) AS total").
		Where("status = ?", string(domain.StatusScheduled)).
		Group("appointment_date").
		Order("appointment_date DESC").
		Limit(limit).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
