// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/BruksfildServices01/agenda-online/internal/timezone"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate": timezone.FormatBookingDate,
		"isoDate": func(t time.Time) string {
			return t.Format(timezone.AdminDateLayout)
		},
		"barPercent": func(total, maxTotal int64) int64 {
			if maxTotal <= 0 {
				return 0
			}
			return total * 100 / maxTotal
		},
	}
}

// Templates parses every page. Pages are addressed by file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templatesFS, "templates/*.html")
}

// Static is the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
