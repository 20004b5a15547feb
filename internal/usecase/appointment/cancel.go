package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/agenda-online/internal/audit"
	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/timezone"
)

type CancelAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	timezone string
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		timezone: tz,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	staffUserID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffUserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
