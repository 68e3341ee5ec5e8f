package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/bnema/todos/internal/domain"
)

//go:embed templates/*.html templates/app.css
var templateFS embed.FS

const layoutFile = "templates/layout.html"

var views = []string{"lists", "new_list", "list", "edit_list"}

// Page holds the bindings a view may use.
type Page struct {
	Flash domain.Flash
	Lists []domain.List
	List  domain.List
	Todos []domain.Todo
	// Name is the value echoed back into the form input.
	Name string
}

type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(views))
	for _, view := range views {
		tmpl, err := template.ParseFS(templateFS, layoutFile, "templates/"+view+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", view, err)
		}
		templates[view] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// Render executes view into w. Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, view string, data any) error {
	tmpl, ok := r.templates[view]
	if !ok {
		return fmt.Errorf("unknown view %q", view)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// Stylesheet returns the embedded stylesheet.
func Stylesheet() []byte {
	data, err := templateFS.ReadFile("templates/app.css")
	if err != nil {
		return nil
	}

	return data
}
