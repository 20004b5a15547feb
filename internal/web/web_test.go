package web

import (
	"bytes"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_ParseAllPages(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"index.html",
		"booking.html",
		"booking_success.html",
		"admin_login.html",
		"admin_dashboard.html",
		"admin_appointments.html",
		"admin_reports.html",
		"admin_professionals.html",
		"admin_services.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_RenderIndex(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index.html", map[string]any{"CurrentYear": 2025}))
	assert.Contains(t, buf.String(), "Agendar agora")
	assert.Contains(t, buf.String(), "2025")
}

func TestFuncs(t *testing.T) {
	f := Funcs()
	d := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "25/12/2025", f["formatDate"].(func(time.Time) string)(d))
	assert.Equal(t, "2025-12-25", f["isoDate"].(func(time.Time) string)(d))
	assert.Equal(t, int64(50), f["barPercent"].(func(int64, int64) int64)(2, 4))
	assert.Equal(t, int64(0), f["barPercent"].(func(int64, int64) int64)(2, 0))
}

func TestStatic(t *testing.T) {
	b, err := fs.ReadFile(Static(), "js/main.js")
	require.NoError(t, err)
	assert.Contains(t, string(b), "/api/horarios")
}
