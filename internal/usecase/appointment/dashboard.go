package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/dto"
	"github.com/BruksfildServices01/agenda-online/internal/timezone"
)

const upcomingLimit = 10

type Dashboard struct {
	Today      time.Time
	TotalToday int64
	Upcoming   []dto.AppointmentListDTO
}

type GetDashboard struct {
	repo     domain.Repository
	timezone string
}

func NewGetDashboard(repo domain.Repository, tz string) *GetDashboard {
	return &GetDashboard{repo: repo, timezone: tz}
}

func (uc *GetDashboard) Execute(ctx context.Context) (*Dashboard, error) {
	today := timezone.Today(uc.timezone)

	total, err := uc.repo.CountScheduledOn(ctx, today)
	if err != nil {
		return nil, err
	}

	upcoming, err := uc.repo.ListUpcomingScheduled(ctx, today, upcomingLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Today:      today,
		TotalToday: total,
		Upcoming:   dto.FromAppointments(upcoming),
	}, nil
}
