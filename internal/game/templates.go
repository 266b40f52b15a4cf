package game

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// pages holds the HTML pages served by the handler: the session view and
// the resolution confirmation.
var pages = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
