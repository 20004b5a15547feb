package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/middleware"
	"github.com/BruksfildServices01/agenda-online/internal/session"
	"github.com/BruksfildServices01/agenda-online/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda-online/internal/usecase/appointment"
)

type AdminAppointmentHandler struct {
	view      *View
	dashboard *ucAppointment.GetDashboard
	list      *ucAppointment.ListAppointments
	cancel    *ucAppointment.CancelAppointment
}

func NewAdminAppointmentHandler(
	view *View,
	dashboard *ucAppointment.GetDashboard,
	list *ucAppointment.ListAppointments,
	cancel *ucAppointment.CancelAppointment,
) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{
		view:      view,
		dashboard: dashboard,
		list:      list,
		cancel:    cancel,
	}
}

// ======================================================
// GET /admin/dashboard
// ======================================================

func (h *AdminAppointmentHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		h.view.storeFailure(c, "/admin/login", err)
		return
	}

	h.view.render(c, "admin_dashboard.html", gin.H{
		"Title":     "Painel",
		"Dashboard": d,
	})
}

// ======================================================
// GET /admin/agendamentos[?date=yyyy-mm-dd]
// ======================================================

func (h *AdminAppointmentHandler) List(c *gin.Context) {
	var (
		filter     *time.Time
		filterDate string
	)
	if raw := c.Query("date"); raw != "" {
		if d, err := timezone.ParseAdminDate(raw); err == nil {
			filter = &d
			filterDate = raw
		}
	}

	appointments, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		h.view.storeFailure(c, "/admin/dashboard", err)
		return
	}

	h.view.render(c, "admin_appointments.html", gin.H{
		"Title":        "Agendamentos",
		"Appointments": appointments,
		"FilterDate":   filterDate,
	})
}

// ======================================================
// POST /admin/agendamentos/:id/cancelar
// ======================================================

func (h *AdminAppointmentHandler) Cancel(c *gin.Context) {
	const back = "/admin/agendamentos"

	id, ok := paramID(c, "id")
	if !ok {
		h.view.redirect(c, back, session.LevelWarning, "Agendamento não encontrado.")
		return
	}

	staff, _ := middleware.IdentityFrom(c)

	_, err := h.cancel.Execute(c.Request.Context(), staff.UserID, id)
	switch {
	case err == nil:
		h.view.redirect(c, back, session.LevelSuccess, "Agendamento cancelado com sucesso.")
	case httperr.IsBusiness(err, domain.CodeAppointmentNotFound):
		h.view.redirect(c, back, session.LevelWarning, "Agendamento não encontrado.")
	case httperr.IsBusiness(err, domain.CodeInvalidState):
		h.view.redirect(c, back, session.LevelWarning, "Este agendamento já foi cancelado.")
	default:
		h.view.storeFailure(c, back, err)
	}
}
