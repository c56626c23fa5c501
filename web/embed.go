package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templateFS embed.FS

// TemplateFS provides access to the embedded page templates.
var TemplateFS fs.FS = templateFS
