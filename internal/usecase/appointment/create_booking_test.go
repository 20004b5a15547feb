package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/models"
)

func validInput() CreateBookingInput {
	return CreateBookingInput{
		ClientName:     "Maria Silva",
		ClientEmail:    "maria@example.com",
		ClientPhone:    "11999990000",
		Date:           "25/12/2025",
		Time:           "09:00",
		ProfessionalID: "3",
		ServiceID:      "7",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, newDispatcher(t))

	ap, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, christmas, ap.AppointmentDate)
	assert.Equal(t, "09:00", ap.AppointmentTime.String())

	require.Len(t, repo.Clients(), 1)
	assert.Equal(t, repo.Clients()[0].ID, ap.ClientID)
	assert.Len(t, repo.Appointments(), 1)
}

func TestCreateBooking_ValidationSequence(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
		code   string
	}{
		{"missing name", func(in *CreateBookingInput) { in.ClientName = "   " }, domain.CodeMissingFields},
		{"missing service", func(in *CreateBookingInput) { in.ServiceID = "" }, domain.CodeMissingFields},
		{"iso date", func(in *CreateBookingInput) { in.Date = "2025-12-25" }, domain.CodeInvalidDate},
		{"impossible date", func(in *CreateBookingInput) { in.Date = "32/12/2025" }, domain.CodeInvalidDate},
		{"lunch time", func(in *CreateBookingInput) { in.Time = "12:00" }, domain.CodeInvalidTime},
		{"fuzzy time", func(in *CreateBookingInput) { in.Time = "9:00" }, domain.CodeInvalidTime},
		{"non numeric id", func(in *CreateBookingInput) { in.ProfessionalID = "tres" }, domain.CodeInvalidIDs},
		{"zero id", func(in *CreateBookingInput) { in.ServiceID = "0" }, domain.CodeInvalidIDs},
		{"not offered", func(in *CreateBookingInput) { in.ServiceID = "8" }, domain.CodeServiceNotOffered},
		{"inactive professional", func(in *CreateBookingInput) { in.ProfessionalID = "4" }, domain.CodeServiceNotOffered},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := seeded()
			uc := NewCreateBooking(repo, newDispatcher(t))

			in := validInput()
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)

			assert.Empty(t, repo.Clients())
			assert.Empty(t, repo.Appointments())
		})
	}
}

func TestCreateBooking_SlotAlreadyScheduled(t *testing.T) {
	repo := seeded()
	repo.AddAppointment(scheduledAt(3, christmas, "09:00"))
	before := repo.Appointments()

	uc := NewCreateBooking(repo, newDispatcher(t))

	_, err := uc.Execute(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotTaken))

	assert.Equal(t, before, repo.Appointments())
	assert.Empty(t, repo.Clients())
}

func TestCreateBooking_CancelledSlotCanBeRebooked(t *testing.T) {
	repo := seeded()
	old := scheduledAt(3, christmas, "09:00")
	old.Status = string(domain.StatusCancelled)
	repo.AddAppointment(old)

	uc := NewCreateBooking(repo, newDispatcher(t))

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.Len(t, repo.Appointments(), 2)
}

func TestCreateBooking_SecondAttemptRejected(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, newDispatcher(t))

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.ClientEmail = "outra@example.com"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotTaken))
	assert.Len(t, repo.Appointments(), 1)
}

func TestCreateBooking_ConcurrentSubmissionsBookOnce(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, newDispatcher(t))

	const attempts = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		rejects int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validInput())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case httperr.IsBusiness(err, domain.CodeSlotTaken):
				rejects++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, rejects)
	assert.Len(t, repo.Appointments(), 1)
}

func TestCreateBooking_ReusesClientByEmail(t *testing.T) {
	repo := seeded()
	existing := repo.AddClient(models.Client{Name: "Maria", Email: "maria@example.com"})

	uc := NewCreateBooking(repo, newDispatcher(t))

	ap, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, existing.ID, ap.ClientID)
	assert.Len(t, repo.Clients(), 1)
}

func TestCreateBooking_EmailMatchIgnoresCase(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, newDispatcher(t))

	first := validInput()
	first.ClientEmail = " Maria@Example.COM "
	ap1, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.Time = "10:00"
	ap2, err := uc.Execute(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, ap1.ClientID, ap2.ClientID)
	require.Len(t, repo.Clients(), 1)
	assert.Equal(t, "maria@example.com", repo.Clients()[0].Email)
}

func TestCreateBooking_EmptyEmailAlwaysCreatesClient(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, newDispatcher(t))

	for _, hm := range []string{"08:00", "10:00"} {
		in := validInput()
		in.ClientEmail = ""
		in.Time = hm
		_, err := uc.Execute(context.Background(), in)
		require.NoError(t, err)
	}

	assert.Len(t, repo.Clients(), 2)
}

func TestCreateBooking_StoreFailureIsNotBusiness(t *testing.T) {
	repo := seeded()
	repo.FailWith(errors.New("connection refused"))

	uc := NewCreateBooking(repo, newDispatcher(t))

	_, err := uc.Execute(context.Background(), validInput())
	require.Error(t, err)
	_, isBusiness := httperr.Code(err)
	assert.False(t, isBusiness)
}
