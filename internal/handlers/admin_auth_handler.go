package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/session"
	ucAuth "github.com/BruksfildServices01/agenda-online/internal/usecase/auth"
)

type AdminAuthHandler struct {
	view     *View
	sessions *session.Manager
	login    *ucAuth.Login
}

func NewAdminAuthHandler(view *View, sessions *session.Manager, login *ucAuth.Login) *AdminAuthHandler {
	return &AdminAuthHandler{view: view, sessions: sessions, login: login}
}

// GET /admin/login
func (h *AdminAuthHandler) LoginPage(c *gin.Context) {
	if _, err := h.sessions.Read(c); err == nil {
		h.view.redirect(c, "/admin/dashboard", "", "")
		return
	}
	h.view.render(c, "admin_login.html", gin.H{"Title": "Login"})
}

// POST /admin/login
func (h *AdminAuthHandler) Login(c *gin.Context) {
	user, err := h.login.Execute(c.Request.Context(), ucAuth.LoginInput{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	})
	if httperr.IsBusiness(err, ucAuth.CodeInvalidCredentials) {
		h.view.redirect(c, "/admin/login", session.LevelDanger, "Usuário ou senha inválidos.")
		return
	}
	if err != nil {
		h.view.storeFailure(c, "/admin/login", err)
		return
	}

	if err := h.sessions.Issue(c, session.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}); err != nil {
		h.view.storeFailure(c, "/admin/login", err)
		return
	}

	h.view.redirect(c, "/admin/dashboard", session.LevelSuccess, "Login realizado com sucesso.")
}

// GET /admin/logout
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	h.view.redirect(c, "/admin/login", session.LevelSuccess, "Logout realizado com sucesso.")
}
