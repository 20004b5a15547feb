package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the free slots of the professional on the given date.
// An unknown or inactive professional yields no slots; storage failures
// are returned to the caller.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	if in.ProfessionalID == 0 {
		return []string{}, nil
	}

	professional, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if errors.Is(err, domain.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !professional.Active {
		return []string{}, nil
	}

	occupied, err := uc.repo.ListScheduledTimes(ctx, in.ProfessionalID, in.Date)
	if err != nil {
		return nil, err
	}

	return domain.FreeSlots(occupied), nil
}
