package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

const (
	PageIndex = "index.html"
	PageJoin  = "join.html"
	PageRoom  = "room.html"

	layoutName = "layout"
)

//go:embed templates/*.html
var templatesFS embed.FS

type IndexPage struct {
	Flash *Flash
}

type JoinPage struct {
	RoomID      string
	Name        string
	Role        Role
	AIStudioURL string
	Flash       *Flash
}

// Renderer holds one parsed set per page: the shared layout plus that page's content block.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)

	for _, name := range []string{PageIndex, PageJoin, PageRoom} {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}

		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

func (that *Renderer) RenderIndex(w io.Writer, page IndexPage) error {
	return that.render(w, PageIndex, page)
}

func (that *Renderer) RenderJoin(w io.Writer, page JoinPage) error {
	if page.AIStudioURL == "" {
		page.AIStudioURL = AIStudioURL
	}

	return that.render(w, PageJoin, page)
}

func (that *Renderer) Render(w io.Writer, page Page) error {
	return that.render(w, PageRoom, page)
}

func (that *Renderer) render(w io.Writer, name string, data any) error {
	tmpl, ok := that.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	if err := tmpl.ExecuteTemplate(w, layoutName, data); err != nil {
		return fmt.Errorf("template execution failed for %s: %w", name, err)
	}

	return nil
}
