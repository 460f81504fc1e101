package handler

import (
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Renderer satisfies echo.Renderer with a set of html/template views parsed
// once at startup. Each view file defines the template named after itself.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every template matching pattern (e.g. "web/templates/*.html").
func NewRenderer(pattern string) (*Renderer, error) {
	t, err := template.ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render satisfies the echo.Renderer interface.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
