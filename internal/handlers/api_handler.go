package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/httpresp"
	"github.com/BruksfildServices01/agenda-online/internal/middleware"
	"github.com/BruksfildServices01/agenda-online/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda-online/internal/usecase/appointment"
)

// APIHandler serves the JSON lookups used by the booking form. Every
// failure degrades to an empty list.
type APIHandler struct {
	availability *ucAppointment.GetAvailability
	options      *ucAppointment.ListBookingOptions
	log          *slog.Logger
}

func NewAPIHandler(
	availability *ucAppointment.GetAvailability,
	options *ucAppointment.ListBookingOptions,
	log *slog.Logger,
) *APIHandler {
	return &APIHandler{
		availability: availability,
		options:      options,
		log:          log,
	}
}

// GET /api/horarios?date=dd/mm/yyyy&professional_id=
func (h *APIHandler) Slots(c *gin.Context) {
	professionalID, ok := queryID(c, "professional_id")
	if !ok {
		httpresp.Slots(c, nil)
		return
	}

	date, err := timezone.ParseBookingDate(c.Query("date"))
	if err != nil {
		httpresp.Slots(c, nil)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ProfessionalID: professionalID,
		Date:           date,
	})
	if err != nil {
		h.log.Error("load availability", "request_id", middleware.RequestIDFrom(c), "err", err)
		httpresp.Slots(c, nil)
		return
	}

	httpresp.Slots(c, slots)
}

// GET /api/servicos?professional_id=
func (h *APIHandler) Services(c *gin.Context) {
	professionalID, ok := queryID(c, "professional_id")
	if !ok {
		httpresp.Services(c, nil)
		return
	}

	services, err := h.options.Services(c.Request.Context(), professionalID)
	if err != nil {
		h.log.Error("load services", "request_id", middleware.RequestIDFrom(c), "err", err)
		httpresp.Services(c, nil)
		return
	}

	httpresp.Services(c, services)
}
