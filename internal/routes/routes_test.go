package routes

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-online/internal/audit"
	"github.com/BruksfildServices01/agenda-online/internal/config"
	"github.com/BruksfildServices01/agenda-online/internal/infra/repository/inmem"
	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/ratelimit"
	"github.com/BruksfildServices01/agenda-online/internal/session"
	"github.com/BruksfildServices01/agenda-online/internal/timeofday"
	ucAuth "github.com/BruksfildServices01/agenda-online/internal/usecase/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopWriter struct{}

func (nopWriter) Write(context.Context, audit.Event) error { return nil }

type users struct {
	mu   sync.Mutex
	byID map[string]models.User
}

func (u *users) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.byID[email]
	if !ok {
		return nil, ucAuth.ErrUserNotFound
	}
	return &user, nil
}

func (u *users) CreateUser(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	user.ID = uint(len(u.byID) + 1)
	u.byID[user.Email] = *user
	return nil
}

type app struct {
	t      *testing.T
	router *gin.Engine
	repo   *inmem.Repository
}

var christmas = time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

func newApp(t *testing.T) *app {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := audit.NewDispatcher(nopWriter{}, log)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = d.Close(ctx)
	})

	repo := inmem.New()
	repo.AddProfessional(models.Professional{ID: 3, Name: "Ana", Active: true})
	repo.AddService(models.Service{ID: 7, Name: "Excel Básico", Active: true})
	repo.Link(3, 7)

	hash, err := ucAuth.HashPassword("segredo123")
	require.NoError(t, err)
	us := &users{byID: map[string]models.User{}}
	require.NoError(t, us.CreateUser(context.Background(), &models.User{
		Name:         "Admin",
		Email:        "admin@agenda.local",
		PasswordHash: hash,
		Role:         "admin",
	}))

	cfg := &config.Config{
		Timezone:        "America/Sao_Paulo",
		SessionSecret:   "segredo-de-teste",
		SessionTTL:      time.Hour,
		PublicBaseURL:   "https://agenda.example.com",
		RateLimitMax:    100,
		RateLimitWindow: time.Minute,
	}

	r := gin.New()
	require.NoError(t, RegisterRoutes(r, Deps{
		Config:       cfg,
		Log:          log,
		Appointments: repo,
		Catalog:      repo,
		Users:        us,
		Audit:        d,
		Limiter:      ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
	}))

	return &app{t: t, router: r, repo: repo}
}

func (a *app) do(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) login() *http.Cookie {
	a.t.Helper()
	w := a.do(http.MethodPost, "/admin/login", url.Values{
		"email":    {"Admin@Agenda.local"},
		"password": {"segredo123"},
	})
	require.Equal(a.t, http.StatusSeeOther, w.Code)
	require.Equal(a.t, "/admin/dashboard", w.Header().Get("Location"))
	c := cookie(w, session.CookieName)
	require.NotNil(a.t, c)
	return c
}

func cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func flashOf(t *testing.T, w *httptest.ResponseRecorder) session.Flash {
	t.Helper()
	c := cookie(w, session.FlashCookieName)
	require.NotNil(t, c, "no flash cookie")
	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	require.NoError(t, err)
	var f session.Flash
	require.NoError(t, json.Unmarshal(b, &f))
	return f
}

func booking(date, hm string) url.Values {
	return url.Values{
		"name":            {"Maria Silva"},
		"email":           {"maria@example.com"},
		"phone":           {"11999990000"},
		"date":            {date},
		"time":            {hm},
		"professional_id": {"3"},
		"service_id":      {"7"},
	}
}

// ======================================================
// API
// ======================================================

func TestAPISlots_AllFreeOnEmptyDay(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/api/horarios?date=25/12/2025&professional_id=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"slots":["08:00","09:00","10:00","11:00","14:00","15:00","16:00","17:00"]}`,
		w.Body.String(),
	)
}

func TestAPISlots_DegradesToEmptyArray(t *testing.T) {
	a := newApp(t)

	for _, q := range []string{
		"?date=25/12/2025",
		"?date=25/12/2025&professional_id=0",
		"?date=25/12/2025&professional_id=abc",
		"?date=2025-12-25&professional_id=3",
		"?date=25/12/2025&professional_id=99",
	} {
		w := a.do(http.MethodGet, "/api/horarios"+q, nil)
		require.Equal(t, http.StatusOK, w.Code, q)
		assert.JSONEq(t, `{"slots":[]}`, w.Body.String(), q)
	}

	a.repo.FailWith(assertErr)
	w := a.do(http.MethodGet, "/api/horarios?date=25/12/2025&professional_id=3", nil)
	assert.JSONEq(t, `{"slots":[]}`, w.Body.String())
}

func TestAPISlots_HidesScheduled(t *testing.T) {
	a := newApp(t)
	a.repo.AddAppointment(models.Appointment{
		ClientID:        1,
		ProfessionalID:  3,
		ServiceID:       7,
		AppointmentDate: christmas,
		AppointmentTime: timeofday.MustParse("09:00"),
	})

	w := a.do(http.MethodGet, "/api/horarios?date=25/12/2025&professional_id=3", nil)
	assert.JSONEq(t,
		`{"slots":["08:00","10:00","11:00","14:00","15:00","16:00","17:00"]}`,
		w.Body.String(),
	)
}

func TestAPIServices(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/api/servicos?professional_id=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"services":[{"id":7,"name":"Excel Básico"}]}`, w.Body.String())

	w = a.do(http.MethodGet, "/api/servicos?professional_id=x", nil)
	assert.JSONEq(t, `{"services":[]}`, w.Body.String())
}

// ======================================================
// Booking
// ======================================================

func TestBooking_SuccessAndConfirmation(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/agendar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana")

	w = a.do(http.MethodPost, "/agendar", booking("25/12/2025", "14:00"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	loc := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/agendar/sucesso/"), loc)

	w = a.do(http.MethodGet, loc, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "25/12/2025")
	assert.Contains(t, body, "14:00")
	assert.Contains(t, body, "Maria Silva")
	assert.Contains(t, body, "Excel Básico")

	w = a.do(http.MethodGet, loc+"/qrcode.png", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))
}

func TestBooking_AcceptsUnpaddedDate(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/agendar", booking("5/1/2026", "08:00"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "/agendar/sucesso/"))

	aps := a.repo.Appointments()
	require.Len(t, aps, 1)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), aps[0].AppointmentDate)

	w = a.do(http.MethodGet, "/api/horarios?date=05/01/2026&professional_id=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"08:00"`)
}

func TestBooking_SlotTakenRedirectsWithWarning(t *testing.T) {
	a := newApp(t)
	a.repo.AddAppointment(models.Appointment{
		ClientID:        1,
		ProfessionalID:  3,
		ServiceID:       7,
		AppointmentDate: christmas,
		AppointmentTime: timeofday.MustParse("09:00"),
	})
	before := a.repo.Appointments()

	w := a.do(http.MethodPost, "/agendar", booking("25/12/2025", "09:00"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/agendar", w.Header().Get("Location"))

	f := flashOf(t, w)
	assert.Equal(t, session.LevelWarning, f.Level)
	assert.Contains(t, f.Message, "já está agendado")

	assert.Equal(t, before, a.repo.Appointments())
}

func TestBooking_ValidationMessages(t *testing.T) {
	a := newApp(t)

	form := booking("2025-12-25", "09:00")
	w := a.do(http.MethodPost, "/agendar", form)
	assert.Equal(t, "/agendar", w.Header().Get("Location"))
	assert.Equal(t, "Data inválida. Use o formato dd/mm/aaaa.", flashOf(t, w).Message)

	form = booking("25/12/2025", "12:00")
	w = a.do(http.MethodPost, "/agendar", form)
	assert.Equal(t, "Horário inválido.", flashOf(t, w).Message)

	assert.Empty(t, a.repo.Appointments())
	assert.Empty(t, a.repo.Clients())
}

func TestBooking_StoreFailureGoesHome(t *testing.T) {
	a := newApp(t)
	a.repo.FailWith(assertErr)

	w := a.do(http.MethodGet, "/agendar", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "Erro ao conectar ao banco de dados.", flashOf(t, w).Message)
}

func TestBooking_UnknownConfirmation(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/agendar/sucesso/999", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = a.do(http.MethodGet, "/agendar/sucesso/999/qrcode.png", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlash_RenderedOnNextPage(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/agendar", booking("25/12/2025", "12:00"))
	f := cookie(w, session.FlashCookieName)
	require.NotNil(t, f)

	w = a.do(http.MethodGet, "/agendar", nil, f)
	assert.Contains(t, w.Body.String(), "Horário inválido.")
}

// ======================================================
// Admin
// ======================================================

func TestAdmin_RequiresLogin(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{
		"/admin/dashboard",
		"/admin/agendamentos",
		"/admin/relatorios",
		"/admin/profissionais",
		"/admin/servicos",
	} {
		w := a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}
}

func TestAdmin_LoginFailureIsGeneric(t *testing.T) {
	a := newApp(t)

	for _, form := range []url.Values{
		{"email": {"admin@agenda.local"}, "password": {"errada"}},
		{"email": {"ninguem@agenda.local"}, "password": {"segredo123"}},
	} {
		w := a.do(http.MethodPost, "/admin/login", form)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"))
		assert.Equal(t, "Usuário ou senha inválidos.", flashOf(t, w).Message)
		assert.Nil(t, cookie(w, session.CookieName))
	}
}

func TestAdmin_DashboardAndLogout(t *testing.T) {
	a := newApp(t)
	sess := a.login()

	w := a.do(http.MethodGet, "/admin/dashboard", nil, sess)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Próximos agendamentos")
	assert.Contains(t, w.Body.String(), "Sair (Admin)")

	w = a.do(http.MethodGet, "/admin/logout", nil, sess)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	cleared := cookie(w, session.CookieName)
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0)
}

func TestAdmin_ListAndCancel(t *testing.T) {
	a := newApp(t)
	sess := a.login()

	w := a.do(http.MethodPost, "/agendar", booking("25/12/2025", "10:00"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	id := strings.TrimPrefix(w.Header().Get("Location"), "/agendar/sucesso/")

	w = a.do(http.MethodGet, "/admin/agendamentos?date=2025-12-25", nil, sess)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Maria Silva")
	assert.Contains(t, w.Body.String(), "/admin/agendamentos/"+id+"/cancelar")

	w = a.do(http.MethodPost, "/admin/agendamentos/"+id+"/cancelar", url.Values{}, sess)
	assert.Equal(t, "/admin/agendamentos", w.Header().Get("Location"))
	assert.Equal(t, session.LevelSuccess, flashOf(t, w).Level)

	w = a.do(http.MethodPost, "/admin/agendamentos/"+id+"/cancelar", url.Values{}, sess)
	assert.Equal(t, session.LevelWarning, flashOf(t, w).Level)

	w = a.do(http.MethodPost, "/admin/agendamentos/999/cancelar", url.Values{}, sess)
	assert.Equal(t, "Agendamento não encontrado.", flashOf(t, w).Message)

	// horário liberado após o cancelamento
	w = a.do(http.MethodGet, "/api/horarios?date=25/12/2025&professional_id=3", nil)
	assert.Contains(t, w.Body.String(), `"10:00"`)
}

func TestAdmin_ReportPDF(t *testing.T) {
	a := newApp(t)
	sess := a.login()

	w := a.do(http.MethodGet, "/admin/relatorios", nil, sess)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Relatórios")

	w = a.do(http.MethodGet, "/admin/relatorios?format=pdf", nil, sess)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestAdmin_Catalog(t *testing.T) {
	a := newApp(t)
	sess := a.login()

	w := a.do(http.MethodPost, "/admin/profissionais", url.Values{"name": {"Bruno"}, "email": {"bruno@senac.br"}}, sess)
	assert.Equal(t, "Profissional cadastrado com sucesso.", flashOf(t, w).Message)

	w = a.do(http.MethodPost, "/admin/profissionais", url.Values{"name": {""}}, sess)
	assert.Equal(t, "Informe o nome do profissional.", flashOf(t, w).Message)

	w = a.do(http.MethodGet, "/admin/profissionais", nil, sess)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bruno")

	w = a.do(http.MethodPost, "/admin/servicos", url.Values{"form_type": {"new_service"}, "name": {"Word"}}, sess)
	assert.Equal(t, "Módulo/serviço cadastrado com sucesso.", flashOf(t, w).Message)

	w = a.do(http.MethodPost, "/admin/servicos", url.Values{"form_type": {"link"}, "professional_id": {"3"}, "service_id": {"7"}}, sess)
	assert.Equal(t, session.LevelSuccess, flashOf(t, w).Level)

	w = a.do(http.MethodPost, "/admin/servicos", url.Values{"form_type": {"link"}, "professional_id": {"x"}, "service_id": {"7"}}, sess)
	assert.Equal(t, "Profissional ou módulo inválido.", flashOf(t, w).Message)

	w = a.do(http.MethodGet, "/admin/servicos", nil, sess)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Word")

	// desativar o profissional tira ele do formulário público
	w = a.do(http.MethodPost, "/admin/profissionais/3/status", url.Values{}, sess)
	assert.Equal(t, "Profissional desativado.", flashOf(t, w).Message)

	w = a.do(http.MethodGet, "/api/horarios?date=25/12/2025&professional_id=3", nil)
	assert.JSONEq(t, `{"slots":[]}`, w.Body.String())
}

type testErr string

func (e testErr) Error() string { return string(e) }

const assertErr = testErr("connection refused")
