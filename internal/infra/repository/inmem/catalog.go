package inmem

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/usecase/catalog"
)

func (r *Repository) ListProfessionals(_ context.Context) ([]models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.Professional, 0, len(r.professionals))
	for _, p := range r.professionals {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) CreateProfessional(_ context.Context, p *models.Professional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	p.ID = r.id()
	r.professionals[p.ID] = *p
	return nil
}

func (r *Repository) SetProfessionalActive(_ context.Context, id uint, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	p, ok := r.professionals[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = active
	r.professionals[id] = p
	return nil
}

func (r *Repository) ListServices(_ context.Context) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) CreateService(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	s.ID = r.id()
	r.services[s.ID] = *s
	return nil
}

func (r *Repository) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *Repository) SetServiceActive(_ context.Context, id uint, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	s, ok := r.services[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = active
	r.services[id] = s
	return nil
}

func (r *Repository) LinkService(_ context.Context, professionalID, serviceID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.links[link{professionalID, serviceID}] = struct{}{}
	return nil
}

func (r *Repository) ListLinks(_ context.Context) ([]catalog.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]catalog.Link, 0, len(r.links))
	for l := range r.links {
		out = append(out, catalog.Link{
			ProfessionalID:   l.professionalID,
			ServiceID:        l.serviceID,
			ProfessionalName: r.professionals[l.professionalID].Name,
			ServiceName:      r.services[l.serviceID].Name,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProfessionalName != out[j].ProfessionalName {
			return out[i].ProfessionalName < out[j].ProfessionalName
		}
		return out[i].ServiceName < out[j].ServiceName
	})
	return out, nil
}

var _ catalog.Repository = (*Repository)(nil)
