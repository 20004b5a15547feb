package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-online/internal/ratelimit"
	"github.com/BruksfildServices01/agenda-online/internal/session"
)

// RateLimit throttles a form POST per client IP. Over the limit, the user
// is sent back to the form with a flash message. Limiter errors fail open.
func RateLimit(
	limiter ratelimit.Limiter,
	sessions *session.Manager,
	log *slog.Logger,
	scope string,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			log.Warn("rate limiter error", "scope", scope, "err", err)
			c.Next()
			return
		}
		if !ok {
			sessions.SetFlash(c, session.LevelWarning, "Muitas tentativas. Aguarde um instante e tente novamente.")
			c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Next()
	}
}
