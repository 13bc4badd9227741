package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/script.js
var Script []byte

func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
