// Package inmem is an in-process implementation of the appointment
// repository. It mirrors the Postgres semantics that matter to the booking
// flow, in particular the atomic scheduled-slot uniqueness, and is meant for
// tests.
package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/timeofday"
)

type link struct {
	professionalID uint
	serviceID      uint
}

type Repository struct {
	mu sync.Mutex

	professionals map[uint]models.Professional
	services      map[uint]models.Service
	links         map[link]struct{}
	clients       []models.Client
	appointments  []models.Appointment

	nextID uint
	err    error
}

func New() *Repository {
	return &Repository{
		professionals: make(map[uint]models.Professional),
		services:      make(map[uint]models.Service),
		links:         make(map[link]struct{}),
	}
}

// ======================================================
// Seeding / inspection
// ======================================================

func (r *Repository) id() uint {
	r.nextID++
	return r.nextID
}

// reserve keeps generated IDs above explicitly seeded ones.
func (r *Repository) reserve(id uint) uint {
	if id == 0 {
		return r.id()
	}
	if id > r.nextID {
		r.nextID = id
	}
	return id
}

// AddProfessional stores p, assigning an ID when p.ID is zero.
func (r *Repository) AddProfessional(p models.Professional) models.Professional {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.reserve(p.ID)
	r.professionals[p.ID] = p
	return p
}

func (r *Repository) AddService(s models.Service) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.reserve(s.ID)
	r.services[s.ID] = s
	return s
}

func (r *Repository) Link(professionalID, serviceID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link{professionalID, serviceID}] = struct{}{}
}

func (r *Repository) AddClient(c models.Client) models.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.reserve(c.ID)
	r.clients = append(r.clients, c)
	return c
}

// AddAppointment stores ap as is, bypassing the slot check.
func (r *Repository) AddAppointment(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap.ID = r.reserve(ap.ID)
	if ap.Status == "" {
		ap.Status = string(domain.StatusScheduled)
	}
	r.appointments = append(r.appointments, ap)
	return ap
}

func (r *Repository) Clients() []models.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Client(nil), r.clients...)
}

func (r *Repository) Appointments() []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Appointment(nil), r.appointments...)
}

// FailWith makes every subsequent call return err (nil restores).
func (r *Repository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// ======================================================
// domain.Repository
// ======================================================

func (r *Repository) GetProfessional(_ context.Context, id uint) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.professionals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *Repository) ListActiveProfessionals(_ context.Context) ([]models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Professional
	for _, p := range r.professionals {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) ListServicesForProfessional(_ context.Context, professionalID uint) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Service
	for l := range r.links {
		if l.professionalID != professionalID {
			continue
		}
		if s, ok := r.services[l.serviceID]; ok && s.Active {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) IsServiceOffered(_ context.Context, professionalID, serviceID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.links[link{professionalID, serviceID}]; !ok {
		return false, nil
	}
	p, okP := r.professionals[professionalID]
	s, okS := r.services[serviceID]
	return okP && okS && p.Active && s.Active, nil
}

func (r *Repository) ListScheduledTimes(_ context.Context, professionalID uint, date time.Time) ([]timeofday.Clock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []timeofday.Clock
	for _, ap := range r.appointments {
		if ap.ProfessionalID == professionalID &&
			ap.AppointmentDate.Equal(date) &&
			ap.Status == string(domain.StatusScheduled) {
			out = append(out, ap.AppointmentTime)
		}
	}
	return out, nil
}

// BookAppointment holds the lock across lookup and insert, standing in for
// the transaction plus partial unique index used in Postgres.
func (r *Repository) BookAppointment(_ context.Context, client models.Client, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}

	for _, other := range r.appointments {
		if other.ProfessionalID == ap.ProfessionalID &&
			other.AppointmentDate.Equal(ap.AppointmentDate) &&
			other.AppointmentTime == ap.AppointmentTime &&
			other.Status == string(domain.StatusScheduled) {
			return httperr.ErrBusiness(domain.CodeSlotTaken)
		}
	}

	clientID := uint(0)
	if client.Email != "" {
		for _, c := range r.clients {
			if strings.EqualFold(c.Email, client.Email) {
				clientID = c.ID
				break
			}
		}
	}
	if clientID == 0 {
		client.ID = r.id()
		r.clients = append(r.clients, client)
		clientID = client.ID
	}

	ap.ID = r.id()
	ap.ClientID = clientID
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *Repository) find(id uint) (int, bool) {
	for i, ap := range r.appointments {
		if ap.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (r *Repository) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	i, ok := r.find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	ap := r.appointments[i]
	return &ap, nil
}

func (r *Repository) GetAppointmentDetails(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	i, ok := r.find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	ap := r.detailed(r.appointments[i])
	return &ap, nil
}

func (r *Repository) detailed(ap models.Appointment) models.Appointment {
	for _, c := range r.clients {
		if c.ID == ap.ClientID {
			ap.Client = c
			break
		}
	}
	ap.Professional = r.professionals[ap.ProfessionalID]
	ap.Service = r.services[ap.ServiceID]
	return ap
}

func (r *Repository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	i, ok := r.find(ap.ID)
	if !ok {
		return domain.ErrNotFound
	}
	r.appointments[i].Status = ap.Status
	r.appointments[i].CancelledAt = ap.CancelledAt
	return nil
}

func (r *Repository) filter(keep func(models.Appointment) bool) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if keep(ap) {
			out = append(out, r.detailed(ap))
		}
	}
	return out
}

func before(a, b models.Appointment) bool {
	if !a.AppointmentDate.Equal(b.AppointmentDate) {
		return a.AppointmentDate.Before(b.AppointmentDate)
	}
	return a.AppointmentTime.Long() < b.AppointmentTime.Long()
}

func limited(aps []models.Appointment, limit int) []models.Appointment {
	if limit > 0 && len(aps) > limit {
		return aps[:limit]
	}
	return aps
}

func (r *Repository) ListAppointmentsOn(_ context.Context, date time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := r.filter(func(ap models.Appointment) bool { return ap.AppointmentDate.Equal(date) })
	sort.SliceStable(out, func(i, j int) bool { return before(out[i], out[j]) })
	return out, nil
}

func (r *Repository) ListRecentAppointments(_ context.Context, limit int) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := r.filter(func(models.Appointment) bool { return true })
	sort.SliceStable(out, func(i, j int) bool { return before(out[j], out[i]) })
	return limited(out, limit), nil
}

func (r *Repository) ListUpcomingScheduled(_ context.Context, from time.Time, limit int) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := r.filter(func(ap models.Appointment) bool {
		return !ap.AppointmentDate.Before(from) && ap.Status == string(domain.StatusScheduled)
	})
	sort.SliceStable(out, func(i, j int) bool { return before(out[i], out[j]) })
	return limited(out, limit), nil
}

func (r *Repository) CountScheduledOn(_ context.Context, date time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, ap := range r.appointments {
		if ap.AppointmentDate.Equal(date) && ap.Status == string(domain.StatusScheduled) {
			n++
		}
	}
	return n, nil
}

func (r *Repository) DailyScheduledCounts(_ context.Context, limit int) ([]domain.DailyCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	totals := make(map[time.Time]int64)
	for _, ap := range r.appointments {
		if ap.Status == string(domain.StatusScheduled) {
			totals[ap.AppointmentDate]++
		}
	}
	out := make([]domain.DailyCount, 0, len(totals))
	for d, n := range totals {
		out = append(out, domain.DailyCount{Date: d, Total: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ domain.Repository = (*Repository)(nil)
