package frontend

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Page is the data rendered by index.html.
type Page struct {
	Symbol   string
	Warning  string
	Error    string
	Analysis string
}
