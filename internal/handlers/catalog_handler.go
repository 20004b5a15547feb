package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/middleware"
	"github.com/BruksfildServices01/agenda-online/internal/session"
	"github.com/BruksfildServices01/agenda-online/internal/usecase/catalog"
)

const (
	professionalsPath = "/admin/profissionais"
	servicesPath      = "/admin/servicos"
)

type CatalogHandler struct {
	view    *View
	catalog *catalog.Service
}

func NewCatalogHandler(view *View, catalog *catalog.Service) *CatalogHandler {
	return &CatalogHandler{view: view, catalog: catalog}
}

func staffID(c *gin.Context) uint {
	id, _ := middleware.IdentityFrom(c)
	return id.UserID
}

// ======================================================
// PROFISSIONAIS
// ======================================================

// GET /admin/profissionais
func (h *CatalogHandler) Professionals(c *gin.Context) {
	professionals, err := h.catalog.Professionals(c.Request.Context())
	if err != nil {
		h.view.storeFailure(c, "/admin/dashboard", err)
		return
	}

	h.view.render(c, "admin_professionals.html", gin.H{
		"Title":         "Profissionais",
		"Professionals": professionals,
	})
}

// POST /admin/profissionais
func (h *CatalogHandler) CreateProfessional(c *gin.Context) {
	_, err := h.catalog.CreateProfessional(c.Request.Context(), staffID(c), catalog.NewProfessionalInput{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),
	})
	switch {
	case err == nil:
		h.view.redirect(c, professionalsPath, session.LevelSuccess, "Profissional cadastrado com sucesso.")
	case httperr.IsBusiness(err, catalog.CodeNameRequired):
		h.view.redirect(c, professionalsPath, session.LevelDanger, "Informe o nome do profissional.")
	case httperr.IsBusiness(err, catalog.CodeInvalidEmail):
		h.view.redirect(c, professionalsPath, session.LevelDanger, "E-mail inválido.")
	default:
		h.view.storeFailure(c, "/admin/dashboard", err)
	}
}

// POST /admin/profissionais/:id/status
func (h *CatalogHandler) ToggleProfessional(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.view.redirect(c, professionalsPath, session.LevelWarning, "Profissional não encontrado.")
		return
	}

	active, err := h.catalog.ToggleProfessional(c.Request.Context(), staffID(c), id)
	switch {
	case err == nil && active:
		h.view.redirect(c, professionalsPath, session.LevelSuccess, "Profissional ativado.")
	case err == nil:
		h.view.redirect(c, professionalsPath, session.LevelSuccess, "Profissional desativado.")
	case httperr.IsBusiness(err, catalog.CodeNotFound):
		h.view.redirect(c, professionalsPath, session.LevelWarning, "Profissional não encontrado.")
	default:
		h.view.storeFailure(c, "/admin/dashboard", err)
	}
}

// ======================================================
// MÓDULOS / SERVIÇOS
// ======================================================

// GET /admin/servicos
func (h *CatalogHandler) Services(c *gin.Context) {
	ov, err := h.catalog.Overview(c.Request.Context())
	if err != nil {
		h.view.storeFailure(c, "/admin/dashboard", err)
		return
	}

	h.view.render(c, "admin_services.html", gin.H{
		"Title":    "Módulos",
		"Overview": ov,
	})
}

// POST /admin/servicos (form_type=new_service | link)
func (h *CatalogHandler) ServicesPost(c *gin.Context) {
	switch c.PostForm("form_type") {
	case "new_service":
		h.createService(c)
	case "link":
		h.link(c)
	default:
		h.view.redirect(c, servicesPath, session.LevelDanger, "Formulário inválido.")
	}
}

func (h *CatalogHandler) createService(c *gin.Context) {
	_, err := h.catalog.CreateService(c.Request.Context(), staffID(c), catalog.NewServiceInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	})
	switch {
	case err == nil:
		h.view.redirect(c, servicesPath, session.LevelSuccess, "Módulo/serviço cadastrado com sucesso.")
	case httperr.IsBusiness(err, catalog.CodeNameRequired):
		h.view.redirect(c, servicesPath, session.LevelDanger, "Informe o nome do módulo/serviço.")
	default:
		h.view.storeFailure(c, "/admin/dashboard", err)
	}
}

func (h *CatalogHandler) link(c *gin.Context) {
	professionalID, err1 := strconv.ParseUint(strings.TrimSpace(c.PostForm("professional_id")), 10, 64)
	serviceID, err2 := strconv.ParseUint(strings.TrimSpace(c.PostForm("service_id")), 10, 64)
	if err1 != nil || err2 != nil {
		h.view.redirect(c, servicesPath, session.LevelDanger, "Profissional ou módulo inválido.")
		return
	}

	err := h.catalog.Link(c.Request.Context(), staffID(c), uint(professionalID), uint(serviceID))
	switch {
	case err == nil:
		h.view.redirect(c, servicesPath, session.LevelSuccess, "Vínculo entre profissional e módulo criado com sucesso.")
	case httperr.IsBusiness(err, catalog.CodeInvalidIDs):
		h.view.redirect(c, servicesPath, session.LevelDanger, "Profissional ou módulo inválido.")
	default:
		h.view.storeFailure(c, "/admin/dashboard", err)
	}
}

// POST /admin/servicos/:id/status
func (h *CatalogHandler) ToggleService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.view.redirect(c, servicesPath, session.LevelWarning, "Módulo não encontrado.")
		return
	}

	active, err := h.catalog.ToggleService(c.Request.Context(), staffID(c), id)
	switch {
	case err == nil && active:
		h.view.redirect(c, servicesPath, session.LevelSuccess, "Módulo ativado.")
	case err == nil:
		h.view.redirect(c, servicesPath, session.LevelSuccess, "Módulo desativado.")
	case httperr.IsBusiness(err, catalog.CodeNotFound):
		h.view.redirect(c, servicesPath, session.LevelWarning, "Módulo não encontrado.")
	default:
		h.view.storeFailure(c, "/admin/dashboard", err)
	}
}
