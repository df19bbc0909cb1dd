package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"timestamp": func(t time.Time) string { return utcTimestamp(t) },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl"))
}

// render executes a named page into a buffer first, so a template failure
// still produces a clean 500 instead of a half-written body.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	buf := new(bytes.Buffer)
	err := h.templates.ExecuteTemplate(buf, page, data)
	if err != nil {
		h.logError(r, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
