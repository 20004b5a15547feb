package session

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const FlashCookieName = "agenda_flash"

const flashMaxAge = 60

// Flash levels, matching the alert classes used by the templates.
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelDanger  = "danger"
	LevelInfo    = "info"
)

type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SetFlash stores a message for the next rendered page.
func (m *Manager) SetFlash(c *gin.Context, level, message string) {
	b, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return
	}
	m.setCookie(c, FlashCookieName, base64.RawURLEncoding.EncodeToString(b), flashMaxAge)
}

// PopFlash returns the pending message, if any, and clears it.
func (m *Manager) PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(FlashCookieName)
	if err != nil || raw == "" {
		return nil
	}
	m.setCookie(c, FlashCookieName, "", -1)

	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(b, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}
