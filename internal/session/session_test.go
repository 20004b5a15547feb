package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSignParse_RoundTrip(t *testing.T) {
	m := NewManager("segredo", time.Hour, false)

	token, err := m.Sign(Identity{UserID: 7, Name: "Admin", Role: "admin"}, time.Now())
	require.NoError(t, err)

	id, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 7, Name: "Admin", Role: "admin"}, id)
}

func TestParse_Rejects(t *testing.T) {
	m := NewManager("segredo", time.Hour, false)

	expired, err := m.Sign(Identity{UserID: 7}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = m.Parse(expired)
	assert.ErrorIs(t, err, ErrNoSession)

	other, err := NewManager("outro", time.Hour, false).Sign(Identity{UserID: 7}, time.Now())
	require.NoError(t, err)
	_, err = m.Parse(other)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = m.Parse("lixo")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestIssueRead_ThroughCookie(t *testing.T) {
	m := NewManager("segredo", time.Hour, false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, m.Issue(c, Identity{UserID: 1, Name: "Admin", Role: "admin"}))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = req

	id, err := m.Read(c2)
	require.NoError(t, err)
	assert.Equal(t, uint(1), id.UserID)

	c3, _ := gin.CreateTestContext(httptest.NewRecorder())
	c3.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = m.Read(c3)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFlash_PopOnce(t *testing.T) {
	m := NewManager("segredo", time.Hour, false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	m.SetFlash(c, LevelDanger, "Horário já reservado.")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = req

	f := m.PopFlash(c2)
	require.NotNil(t, f)
	assert.Equal(t, LevelDanger, f.Level)
	assert.Equal(t, "Horário já reservado.", f.Message)

	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].MaxAge < 0)
}
