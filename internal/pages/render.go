package pages

import (
	"fmt"
	"io"
	"text/template"

	"moneymaven/internal/core"
	"moneymaven/internal/form"
	"moneymaven/internal/session"
	"moneymaven/web"
)

// Renderer executes the embedded view templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("views").Funcs(template.FuncMap{
		"amount": core.FormatAmount,
	}).ParseFS(web.TemplatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// MustRenderer is NewRenderer for callers that cannot go on without views.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) render(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Header is the navigation bar shown on every page.
type Header struct {
	Title    string
	LoggedIn bool
	Subject  string
	Links    []session.Link
}

// FieldView is one labelled form field.
type FieldView struct {
	Name  string
	Label string
	Value string
	Error string
}

// SeriesView wraps a chart series for the series template.
type SeriesView struct {
	Points core.Series
}

type fieldLabel struct {
	name, label string
	secret      bool
}

func fieldViews(labels []fieldLabel, state form.State) []FieldView {
	out := make([]FieldView, len(labels))
	for i, l := range labels {
		v := state.Values[l.name]
		if l.secret && v != "" {
			v = "******"
		}
		out[i] = FieldView{Name: l.name, Label: l.label, Value: v, Error: state.Errors[l.name]}
	}
	return out
}
