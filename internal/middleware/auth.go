package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-online/internal/session"
)

const ContextIdentity = "identity"

const loginPath = "/admin/login"

// RequireAdmin lets through requests carrying a valid session cookie and
// stores the identity in the context. Anything else is redirected to the
// login page with a flash message.
func RequireAdmin(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := sessions.Read(c)
		if err != nil {
			sessions.SetFlash(c, session.LevelWarning, "Faça login para acessar a área administrativa.")
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Set(ContextIdentity, id)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireAdmin.
func IdentityFrom(c *gin.Context) (session.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return session.Identity{}, false
	}
	id, ok := v.(session.Identity)
	return id, ok
}
