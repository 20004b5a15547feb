package appointment

import (
	"context"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/agenda-online/internal/audit"
	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/timeofday"
	"github.com/BruksfildServices01/agenda-online/internal/timezone"
	"github.com/BruksfildServices01/agenda-online/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

// CreateBookingInput carries the raw form values.
type CreateBookingInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string

	Date           string // dd/mm/yyyy
	Time           string // HH:MM, one of the slots
	ProfessionalID string
	ServiceID      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates and commits a booking, returning the new appointment.
// Every rejection is a business error whose code names the failed check.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	name := strings.TrimSpace(in.ClientName)
	email := validators.NormalizeEmail(in.ClientEmail)
	phone := strings.TrimSpace(in.ClientPhone)
	dateStr := strings.TrimSpace(in.Date)
	timeStr := strings.TrimSpace(in.Time)
	professionalStr := strings.TrimSpace(in.ProfessionalID)
	serviceStr := strings.TrimSpace(in.ServiceID)

	// --------------------------------------------------
	// 1️⃣ Campos obrigatórios
	// --------------------------------------------------
	if name == "" || dateStr == "" || timeStr == "" || professionalStr == "" || serviceStr == "" {
		return nil, httperr.ErrBusiness(domain.CodeMissingFields)
	}

	// --------------------------------------------------
	// 2️⃣ Data (dd/mm/aaaa)
	// --------------------------------------------------
	date, err := timezone.ParseBookingDate(dateStr)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDate)
	}

	// --------------------------------------------------
	// 3️⃣ Horário dentro da grade fixa
	// --------------------------------------------------
	if !domain.IsSlot(timeStr) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidTime)
	}
	slot, err := timeofday.Parse(timeStr)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidTime)
	}

	// --------------------------------------------------
	// 4️⃣ IDs
	// --------------------------------------------------
	professionalID, err1 := parseID(professionalStr)
	serviceID, err2 := parseID(serviceStr)
	if err1 != nil || err2 != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidIDs)
	}

	// --------------------------------------------------
	// 5️⃣ Profissional atende o serviço
	// --------------------------------------------------
	offered, err := uc.repo.IsServiceOffered(ctx, professionalID, serviceID)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, httperr.ErrBusiness(domain.CodeServiceNotOffered)
	}

	// --------------------------------------------------
	// 6️⃣ Cliente + agendamento (atômico, conflito detectado no insert)
	// --------------------------------------------------
	ap := &models.Appointment{
		ProfessionalID:  professionalID,
		ServiceID:       serviceID,
		AppointmentDate: date,
		AppointmentTime: slot,
		Status:          string(domain.InitialStatus()),
	}

	client := models.Client{
		Name:  name,
		Email: email,
		Phone: phone,
	}

	if err := uc.repo.BookAppointment(ctx, client, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"professional_id": professionalID,
			"service_id":      serviceID,
			"date":            dateStr,
			"time":            timeStr,
		},
	})

	return ap, nil
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, strconv.ErrRange
	}
	return uint(n), nil
}
