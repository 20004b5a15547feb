package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-online/internal/report"
	"github.com/BruksfildServices01/agenda-online/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda-online/internal/usecase/appointment"
)

type AdminReportHandler struct {
	view     *View
	report   *ucAppointment.GetReport
	timezone string
}

func NewAdminReportHandler(view *View, report *ucAppointment.GetReport, tz string) *AdminReportHandler {
	return &AdminReportHandler{view: view, report: report, timezone: tz}
}

// GET /admin/relatorios[?format=pdf]
func (h *AdminReportHandler) Show(c *gin.Context) {
	r, err := h.report.Execute(c.Request.Context())
	if err != nil {
		h.view.storeFailure(c, "/admin/dashboard", err)
		return
	}

	if c.Query("format") == "pdf" {
		pdf, err := report.Bytes(r.Rows, r.MaxTotal, timezone.NowIn(h.timezone))
		if err != nil {
			h.view.storeFailure(c, "/admin/relatorios", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="relatorio-agendamentos.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
		return
	}

	h.view.render(c, "admin_reports.html", gin.H{
		"Title":  "Relatórios",
		"Report": r,
	})
}
