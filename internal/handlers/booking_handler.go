package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/session"
	"github.com/BruksfildServices01/agenda-online/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda-online/internal/usecase/appointment"
)

const qrCodeSize = 256

type bookingMessage struct {
	level string
	text  string
}

var bookingMessages = map[string]bookingMessage{
	domain.CodeMissingFields:     {session.LevelDanger, "Preencha nome, data, horário, profissional e módulo."},
	domain.CodeInvalidDate:       {session.LevelDanger, "Data inválida. Use o formato dd/mm/aaaa."},
	domain.CodeInvalidTime:       {session.LevelDanger, "Horário inválido."},
	domain.CodeInvalidIDs:        {session.LevelDanger, "Profissional ou módulo inválido."},
	domain.CodeServiceNotOffered: {session.LevelDanger, "Este profissional não atende o módulo selecionado."},
	domain.CodeSlotTaken:         {session.LevelWarning, "Este horário já está agendado para este profissional. Escolha outro horário."},
}

type BookingHandler struct {
	view     *View
	options  *ucAppointment.ListBookingOptions
	create   *ucAppointment.CreateBooking
	confirm  *ucAppointment.GetConfirmation
	timezone string
	baseURL  string
}

func NewBookingHandler(
	view *View,
	options *ucAppointment.ListBookingOptions,
	create *ucAppointment.CreateBooking,
	confirm *ucAppointment.GetConfirmation,
	tz string,
	baseURL string,
) *BookingHandler {
	return &BookingHandler{
		view:     view,
		options:  options,
		create:   create,
		confirm:  confirm,
		timezone: tz,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// ======================================================
// GET /
// ======================================================

func (h *BookingHandler) Home(c *gin.Context) {
	h.view.render(c, "index.html", nil)
}

// ======================================================
// GET /agendar
// ======================================================

func (h *BookingHandler) Form(c *gin.Context) {
	professionals, err := h.options.Professionals(c.Request.Context())
	if err != nil {
		h.view.storeFailure(c, "/", err)
		return
	}

	h.view.render(c, "booking.html", gin.H{
		"Title":         "Agendar",
		"Today":         timezone.FormatBookingDate(timezone.Today(h.timezone)),
		"Professionals": professionals,
	})
}

// ======================================================
// POST /agendar
// ======================================================

func (h *BookingHandler) Submit(c *gin.Context) {
	in := ucAppointment.CreateBookingInput{
		ClientName:     c.PostForm("name"),
		ClientEmail:    c.PostForm("email"),
		ClientPhone:    c.PostForm("phone"),
		Date:           c.PostForm("date"),
		Time:           c.PostForm("time"),
		ProfessionalID: c.PostForm("professional_id"),
		ServiceID:      c.PostForm("service_id"),
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		if code, ok := httperr.Code(err); ok {
			msg, known := bookingMessages[code]
			if !known {
				msg = bookingMessage{session.LevelDanger, "Não foi possível concluir o agendamento."}
			}
			h.view.redirect(c, "/agendar", msg.level, msg.text)
			return
		}
		h.view.storeFailure(c, "/", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/agendar/sucesso/"+strconv.FormatUint(uint64(ap.ID), 10))
}

// ======================================================
// GET /agendar/sucesso/:id
// ======================================================

func (h *BookingHandler) Success(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.view.redirect(c, "/", session.LevelWarning, "Agendamento não encontrado.")
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), id)
	if httperr.IsBusiness(err, domain.CodeAppointmentNotFound) {
		h.view.redirect(c, "/", session.LevelWarning, "Agendamento não encontrado.")
		return
	}
	if err != nil {
		h.view.storeFailure(c, "/", err)
		return
	}

	h.view.render(c, "booking_success.html", gin.H{
		"Title":       "Agendamento confirmado",
		"Appointment": ap,
	})
}

// ======================================================
// GET /agendar/sucesso/:id/qrcode.png
// ======================================================

func (h *BookingHandler) QRCode(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.NotFound(c, domain.CodeAppointmentNotFound, "Agendamento não encontrado.")
		return
	}

	if _, err := h.confirm.Execute(c.Request.Context(), id); err != nil {
		if httperr.IsBusiness(err, domain.CodeAppointmentNotFound) {
			httperr.NotFound(c, domain.CodeAppointmentNotFound, "Agendamento não encontrado.")
			return
		}
		httperr.Internal(c, "store_failure", msgStoreFailure)
		return
	}

	png, err := qrcode.Encode(h.ConfirmationURL(id), qrcode.Medium, qrCodeSize)
	if err != nil {
		httperr.Internal(c, "qrcode_failed", "Falha ao gerar QR code.")
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *BookingHandler) ConfirmationURL(id uint) string {
	return h.baseURL + "/agendar/sucesso/" + strconv.FormatUint(uint64(id), 10)
}
