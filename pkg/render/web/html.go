package web

import (
	"bytes"
	_ "embed"
	"html/template"

	errs "github.com/matzehuels/rpgmap/pkg/errors"
	"github.com/matzehuels/rpgmap/pkg/graph"
)

// DefaultD3URL is the script the page loads D3 from.
const DefaultD3URL = "https://cdn.jsdelivr.net/npm/d3@7"

var (
	//go:embed assets/page.html.tmpl
	pageHTML string

	//go:embed assets/style.css
	styleCSS string

	//go:embed assets/graph.js
	graphJS string

	pageTmpl = template.Must(template.New("page").Parse(pageHTML))
)

// Options configures [RenderHTML].
type Options struct {
	// Title is shown in the header and the browser tab.
	Title string
	// Selected is the node selected when the page opens. Empty or unknown
	// IDs open with nothing selected.
	Selected string
	// D3URL overrides where D3 is loaded from.
	D3URL string
}

type pageData struct {
	Title    string
	D3URL    string
	Style    template.CSS
	Script   template.JS
	Page     Page
	Selected string
}

// RenderHTML renders a self-contained page for g. The payload, stylesheet
// and script are inlined; only D3 is loaded from D3URL.
func RenderHTML(g *graph.Graph, opts Options) ([]byte, error) {
	page := Payload(g)
	if opts.Title != "" {
		page.Title = opts.Title
	}
	d3 := opts.D3URL
	if d3 == "" {
		d3 = DefaultD3URL
	}
	selected := opts.Selected
	if !g.Has(selected) {
		selected = ""
	}

	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, pageData{
		Title:    page.Title,
		D3URL:    d3,
		Style:    template.CSS(styleCSS),
		Script:   template.JS(graphJS),
		Page:     page,
		Selected: selected,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render page")
	}
	return buf.Bytes(), nil
}
