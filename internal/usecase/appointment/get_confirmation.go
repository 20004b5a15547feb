package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/dto"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
)

type GetConfirmation struct {
	repo domain.Repository
}

func NewGetConfirmation(repo domain.Repository) *GetConfirmation {
	return &GetConfirmation{repo: repo}
}

func (uc *GetConfirmation) Execute(
	ctx context.Context,
	appointmentID uint,
) (*dto.AppointmentListDTO, error) {

	ap, err := uc.repo.GetAppointmentDetails(ctx, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}
	if err != nil {
		return nil, err
	}

	out := dto.FromAppointment(*ap)
	return &out, nil
}
