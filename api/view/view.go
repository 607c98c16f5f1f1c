// Package view renders the server-side HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/fastygo/todo/domain"
)

//go:embed templates/*.html
var files embed.FS

const (
	PageLogin    = "login"
	PageRegister = "register"
	PageIndex    = "index"
	PageTasks    = "tasks"
	PageSuccess  = "success"
)

var pages = []string{PageLogin, PageRegister, PageIndex, PageTasks, PageSuccess}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"priorities": func() []string {
			return []string{string(domain.PriorityLow), string(domain.PriorityMedium), string(domain.PriorityHigh)}
		},
		"flashClass": flashClass,
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render executes page into w. Output is buffered so a failing template writes nothing.
func (r *Renderer) Render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// flashClass maps notice severity to the CSS alert class.
func flashClass(level domain.FlashLevel) string {
	if level == domain.FlashError {
		return "danger"
	}
	return string(level)
}
