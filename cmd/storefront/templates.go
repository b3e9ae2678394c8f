package main

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

func loadTemplates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"money": money}).
		ParseFS(templatesFS, "templates/*.html")
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }
