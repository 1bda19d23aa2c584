package web

import "embed"

// TemplatesFS embeds the terminal view templates.
//
//go:embed templates/*.tmpl
var TemplatesFS embed.FS
