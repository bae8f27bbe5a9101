package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/garnizeh/emsportal/internal/validate"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"formatDate": formatDate,
	"dateInput":  dateInputValue,
	"add":        func(a, b int) int { return a + b },
	// profile images travel as raw base64; the data URI is assembled here so
	// the template engine does not reject the scheme
	"imgsrc": func(b64 string) template.URL {
		return template.URL("data:image/jpeg;base64," + b64)
	},
}).ParseFS(templateFS, "templates/*.html"))

// formatDate renders a backend date for display, falling back to "-" for
// absent or unparseable values.
func formatDate(s string) string {
	if s == "" {
		return "-"
	}
	t, err := validate.ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// dateInputValue renders a backend date for an <input type="date"> value.
func dateInputValue(s string) string {
	if s == "" {
		return ""
	}
	t, err := validate.ParseDate(s)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("render template", "template", name, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
