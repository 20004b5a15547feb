package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/dto"
)

const recentAppointmentsLimit = 50

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// Execute lists the appointments of date ordered by time, or the most
// recent ones when date is nil.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	date *time.Time,
) ([]dto.AppointmentListDTO, error) {

	if date != nil {
		aps, err := uc.repo.ListAppointmentsOn(ctx, *date)
		if err != nil {
			return nil, err
		}
		return dto.FromAppointments(aps), nil
	}

	aps, err := uc.repo.ListRecentAppointments(ctx, recentAppointmentsLimit)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(aps), nil
}
