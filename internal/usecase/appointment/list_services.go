package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/models"
)

type ListBookingOptions struct {
	repo domain.Repository
}

func NewListBookingOptions(repo domain.Repository) *ListBookingOptions {
	return &ListBookingOptions{repo: repo}
}

// Professionals lists who can be picked on the booking form.
func (uc *ListBookingOptions) Professionals(ctx context.Context) ([]models.Professional, error) {
	return uc.repo.ListActiveProfessionals(ctx)
}

// Services lists the active services offered by a professional.
func (uc *ListBookingOptions) Services(ctx context.Context, professionalID uint) ([]models.Service, error) {
	if professionalID == 0 {
		return []models.Service{}, nil
	}
	return uc.repo.ListServicesForProfessional(ctx, professionalID)
}
