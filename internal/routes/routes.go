package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-online/internal/audit"
	"github.com/BruksfildServices01/agenda-online/internal/config"
	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/handlers"
	"github.com/BruksfildServices01/agenda-online/internal/middleware"
	"github.com/BruksfildServices01/agenda-online/internal/ratelimit"
	"github.com/BruksfildServices01/agenda-online/internal/session"
	ucAppointment "github.com/BruksfildServices01/agenda-online/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/agenda-online/internal/usecase/auth"
	"github.com/BruksfildServices01/agenda-online/internal/usecase/catalog"
	"github.com/BruksfildServices01/agenda-online/internal/web"
)

// Deps are the singletons built by main (or by tests).
type Deps struct {
	Config       *config.Config
	Log          *slog.Logger
	Appointments domain.Repository
	Catalog      catalog.Repository
	Users        ucAuth.UserRepository
	Audit        *audit.Dispatcher
	Limiter      ratelimit.Limiter
	DB           handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.PublicBaseURL))

	// ======================================================
	// 🎨 TEMPLATES / ESTÁTICOS
	// ======================================================
	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	view := handlers.NewView(sessions, d.Log, cfg.Timezone)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	bookingOptionsUC := ucAppointment.NewListBookingOptions(d.Appointments)
	availabilityUC := ucAppointment.NewGetAvailability(d.Appointments)
	createBookingUC := ucAppointment.NewCreateBooking(d.Appointments, d.Audit)
	confirmationUC := ucAppointment.NewGetConfirmation(d.Appointments)

	dashboardUC := ucAppointment.NewGetDashboard(d.Appointments, cfg.Timezone)
	listAppointmentsUC := ucAppointment.NewListAppointments(d.Appointments)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(d.Appointments, d.Audit, cfg.Timezone)
	reportUC := ucAppointment.NewGetReport(d.Appointments)

	loginUC := ucAuth.NewLogin(d.Users, d.Audit)
	catalogSvc := catalog.NewService(d.Catalog, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		view,
		bookingOptionsUC,
		createBookingUC,
		confirmationUC,
		cfg.Timezone,
		cfg.PublicBaseURL,
	)
	apiHandler := handlers.NewAPIHandler(availabilityUC, bookingOptionsUC, d.Log)
	authHandler := handlers.NewAdminAuthHandler(view, sessions, loginUC)
	appointmentHandler := handlers.NewAdminAppointmentHandler(
		view,
		dashboardUC,
		listAppointmentsUC,
		cancelAppointmentUC,
	)
	reportHandler := handlers.NewAdminReportHandler(view, reportUC, cfg.Timezone)
	catalogHandler := handlers.NewCatalogHandler(view, catalogSvc)

	limit := func(scope string) gin.HandlerFunc {
		return middleware.RateLimit(d.Limiter, sessions, d.Log, scope)
	}

	if d.DB != nil {
		r.GET("/health", handlers.NewHealthHandler(d.DB).Check)
	}

	// ======================================================
	// 🌍 PÚBLICO (HTML)
	// ======================================================
	r.GET("/", bookingHandler.Home)
	r.GET("/agendar", bookingHandler.Form)
	r.POST("/agendar", limit("booking"), bookingHandler.Submit)
	r.GET("/agendar/sucesso/:id", bookingHandler.Success)
	r.GET("/agendar/sucesso/:id/qrcode.png", bookingHandler.QRCode)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/horarios", apiHandler.Slots)
		api.GET("/servicos", apiHandler.Services)
	}

	// ======================================================
	// 🔐 ADMIN
	// ======================================================
	r.GET("/admin/login", authHandler.LoginPage)
	r.POST("/admin/login", limit("login"), authHandler.Login)
	r.GET("/admin/logout", authHandler.Logout)

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin(sessions))
	{
		admin.GET("/dashboard", appointmentHandler.Dashboard)

		admin.GET("/agendamentos", appointmentHandler.List)
		admin.POST("/agendamentos/:id/cancelar", appointmentHandler.Cancel)

		admin.GET("/relatorios", reportHandler.Show)

		admin.GET("/profissionais", catalogHandler.Professionals)
		admin.POST("/profissionais", catalogHandler.CreateProfessional)
		admin.POST("/profissionais/:id/status", catalogHandler.ToggleProfessional)

		admin.GET("/servicos", catalogHandler.Services)
		admin.POST("/servicos", catalogHandler.ServicesPost)
		admin.POST("/servicos/:id/status", catalogHandler.ToggleService)
	}

	return nil
}
