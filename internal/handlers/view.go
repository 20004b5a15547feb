package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-online/internal/middleware"
	"github.com/BruksfildServices01/agenda-online/internal/session"
	"github.com/BruksfildServices01/agenda-online/internal/timezone"
)

const msgStoreFailure = "Erro ao conectar ao banco de dados."

// View renders pages and carries flash messages across redirects.
type View struct {
	sessions *session.Manager
	log      *slog.Logger
	timezone string
}

func NewView(sessions *session.Manager, log *slog.Logger, tz string) *View {
	return &View{sessions: sessions, log: log, timezone: tz}
}

func (v *View) render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flash"] = v.sessions.PopFlash(c)
	data["CurrentYear"] = timezone.NowIn(v.timezone).Year()
	if id, ok := middleware.IdentityFrom(c); ok {
		data["Identity"] = &id
	}
	c.HTML(http.StatusOK, name, data)
}

func (v *View) redirect(c *gin.Context, path, level, message string) {
	if message != "" {
		v.sessions.SetFlash(c, level, message)
	}
	c.Redirect(http.StatusSeeOther, path)
}

// storeFailure logs err and sends the user to a safe page.
func (v *View) storeFailure(c *gin.Context, path string, err error) {
	v.log.Error("store failure",
		"request_id", middleware.RequestIDFrom(c),
		"path", c.Request.URL.Path,
		"err", err,
	)
	v.redirect(c, path, session.LevelDanger, msgStoreFailure)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func queryID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
