package appointment

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/BruksfildServices01/agenda-online/internal/audit"
	"github.com/BruksfildServices01/agenda-online/internal/infra/repository/inmem"
	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/timeofday"
)

type nopWriter struct{}

func (nopWriter) Write(context.Context, audit.Event) error { return nil }

func newDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()
	d := audit.NewDispatcher(nopWriter{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = d.Close(ctx)
	})
	return d
}

// seeded returns a repository with professional 3 offering service 7, an
// inactive professional 4 offering 7, and service 8 not offered by anyone.
func seeded() *inmem.Repository {
	repo := inmem.New()
	repo.AddProfessional(models.Professional{ID: 3, Name: "Ana", Active: true})
	repo.AddProfessional(models.Professional{ID: 4, Name: "Bruno", Active: false})
	repo.AddService(models.Service{ID: 7, Name: "Excel Básico", Active: true})
	repo.AddService(models.Service{ID: 8, Name: "Word", Active: true})
	repo.Link(3, 7)
	repo.Link(4, 7)
	return repo
}

var christmas = time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

func scheduledAt(professionalID uint, date time.Time, hm string) models.Appointment {
	return models.Appointment{
		ClientID:        1,
		ProfessionalID:  professionalID,
		ServiceID:       7,
		AppointmentDate: date,
		AppointmentTime: timeofday.MustParse(hm),
	}
}
