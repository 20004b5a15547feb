// Package session keeps the admin identity in a signed cookie and carries
// one-shot flash messages between redirects.
package session

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "agenda_session"

var ErrNoSession = errors.New("session: missing or invalid")

// Identity is the authenticated staff member of a request.
type Identity struct {
	UserID uint
	Name   string
	Role   string
}

type claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Issue signs id and sets the session cookie.
func (m *Manager) Issue(c *gin.Context, id Identity) error {
	token, err := m.Sign(id, time.Now())
	if err != nil {
		return err
	}
	m.setCookie(c, CookieName, token, int(m.ttl.Seconds()))
	return nil
}

func (m *Manager) Sign(id Identity, now time.Time) (string, error) {
	cl := claims{
		Name: id.Name,
		Role: id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(m.secret)
}

// Read returns the identity of the request or ErrNoSession.
func (m *Manager) Read(c *gin.Context) (Identity, error) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return Identity{}, ErrNoSession
	}
	return m.Parse(raw)
}

func (m *Manager) Parse(raw string) (Identity, error) {
	var cl claims
	token, err := jwt.ParseWithClaims(raw, &cl, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, ErrNoSession
	}

	userID, err := strconv.ParseUint(cl.Subject, 10, 64)
	if err != nil || userID == 0 {
		return Identity{}, ErrNoSession
	}

	return Identity{
		UserID: uint(userID),
		Name:   cl.Name,
		Role:   cl.Role,
	}, nil
}

func (m *Manager) Clear(c *gin.Context) {
	m.setCookie(c, CookieName, "", -1)
}

func (m *Manager) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", m.secure, true)
}
