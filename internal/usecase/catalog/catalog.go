// Package catalog manages professionals, services and who offers what.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/agenda-online/internal/audit"
	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/validators"
)

const (
	CodeNameRequired = "name_required"
	CodeInvalidEmail = "invalid_email"
	CodeInvalidIDs   = "invalid_ids"
	CodeNotFound     = "not_found"
)

// Link is a professional/service pair with display names.
type Link struct {
	ProfessionalID   uint
	ServiceID        uint
	ProfessionalName string
	ServiceName      string
}

// Repository lookups return domain.ErrNotFound for missing rows.
type Repository interface {
	ListProfessionals(ctx context.Context) ([]models.Professional, error)
	ListActiveProfessionals(ctx context.Context) ([]models.Professional, error)
	CreateProfessional(ctx context.Context, p *models.Professional) error
	SetProfessionalActive(ctx context.Context, id uint, active bool) error
	GetProfessional(ctx context.Context, id uint) (*models.Professional, error)

	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	SetServiceActive(ctx context.Context, id uint, active bool) error
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// LinkService is idempotent.
	LinkService(ctx context.Context, professionalID, serviceID uint) error
	ListLinks(ctx context.Context) ([]Link, error)
}

type Service struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewService(repo Repository, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, audit: audit}
}

// ======================================================
// Professionals
// ======================================================

type NewProfessionalInput struct {
	Name  string
	Email string
	Phone string
}

func (s *Service) Professionals(ctx context.Context) ([]models.Professional, error) {
	return s.repo.ListProfessionals(ctx)
}

func (s *Service) CreateProfessional(ctx context.Context, staffUserID uint, in NewProfessionalInput) (*models.Professional, error) {
	name := strings.TrimSpace(in.Name)
	email := validators.NormalizeEmail(in.Email)

	if name == "" {
		return nil, httperr.ErrBusiness(CodeNameRequired)
	}
	if email != "" && !validators.IsEmail(email) {
		return nil, httperr.ErrBusiness(CodeInvalidEmail)
	}

	p := &models.Professional{
		Name:   name,
		Email:  email,
		Phone:  strings.TrimSpace(in.Phone),
		Active: true,
	}
	if err := s.repo.CreateProfessional(ctx, p); err != nil {
		return nil, err
	}

	s.dispatch(staffUserID, "professional_created", "professional", p.ID, nil)
	return p, nil
}

// ToggleProfessional flips the active flag and returns the new value.
func (s *Service) ToggleProfessional(ctx context.Context, staffUserID, id uint) (bool, error) {
	p, err := s.repo.GetProfessional(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, httperr.ErrBusiness(CodeNotFound)
	}
	if err != nil {
		return false, err
	}

	active := !p.Active
	if err := s.repo.SetProfessionalActive(ctx, id, active); err != nil {
		return false, err
	}

	s.dispatch(staffUserID, "professional_status_changed", "professional", id, map[string]any{"active": active})
	return active, nil
}

// ======================================================
// Services
// ======================================================

type NewServiceInput struct {
	Name        string
	Description string
}

// Overview is what the services page shows.
type Overview struct {
	Professionals []models.Professional
	Services      []models.Service
	Links         []Link
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	pros, err := s.repo.ListActiveProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.repo.ListLinks(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{Professionals: pros, Services: services, Links: links}, nil
}

func (s *Service) CreateService(ctx context.Context, staffUserID uint, in NewServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrBusiness(CodeNameRequired)
	}

	svc := &models.Service{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Active:      true,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	s.dispatch(staffUserID, "service_created", "service", svc.ID, nil)
	return svc, nil
}

func (s *Service) ToggleService(ctx context.Context, staffUserID, id uint) (bool, error) {
	svc, err := s.repo.GetService(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, httperr.ErrBusiness(CodeNotFound)
	}
	if err != nil {
		return false, err
	}

	active := !svc.Active
	if err := s.repo.SetServiceActive(ctx, id, active); err != nil {
		return false, err
	}

	s.dispatch(staffUserID, "service_status_changed", "service", id, map[string]any{"active": active})
	return active, nil
}

// Link associates a professional with a service. Linking twice is a no-op.
func (s *Service) Link(ctx context.Context, staffUserID, professionalID, serviceID uint) error {
	if professionalID == 0 || serviceID == 0 {
		return httperr.ErrBusiness(CodeInvalidIDs)
	}

	if _, err := s.repo.GetProfessional(ctx, professionalID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness(CodeInvalidIDs)
		}
		return err
	}
	if _, err := s.repo.GetService(ctx, serviceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness(CodeInvalidIDs)
		}
		return err
	}

	if err := s.repo.LinkService(ctx, professionalID, serviceID); err != nil {
		return err
	}

	s.dispatch(staffUserID, "service_linked", "professional", professionalID, map[string]any{"service_id": serviceID})
	return nil
}

func (s *Service) dispatch(userID uint, action, entity string, entityID uint, meta map[string]any) {
	ev := audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	s.audit.Dispatch(ev)
}
