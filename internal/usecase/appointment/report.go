package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
)

const reportDays = 30

type Report struct {
	Rows     []domain.DailyCount
	MaxTotal int64
}

type GetReport struct {
	repo domain.Repository
}

func NewGetReport(repo domain.Repository) *GetReport {
	return &GetReport{repo: repo}
}

// Execute counts scheduled appointments per day for the latest dates.
func (uc *GetReport) Execute(ctx context.Context) (*Report, error) {
	rows, err := uc.repo.DailyScheduledCounts(ctx, reportDays)
	if err != nil {
		return nil, err
	}

	var maxTotal int64
	for _, r := range rows {
		if r.Total > maxTotal {
			maxTotal = r.Total
		}
	}

	return &Report{Rows: rows, MaxTotal: maxTotal}, nil
}
