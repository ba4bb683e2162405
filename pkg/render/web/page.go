package web

import (
	"github.com/matzehuels/rpgmap/pkg/catalog"
	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/highlight"
	"github.com/matzehuels/rpgmap/pkg/render"
)

// Page is the data inlined into the web page. It is also served as
// graph.json by the server.
type Page struct {
	Title       string                    `json:"title"`
	SystemColor string                    `json:"system_color"`
	Categories  []Category                `json:"categories"`
	Nodes       []Node                    `json:"nodes"`
	Links       []Link                    `json:"links"`
	Views       map[string]highlight.View `json:"views"`
	Placeholder highlight.Details         `json:"placeholder"`
	Stats       graph.Stats               `json:"stats"`
}

// Category describes one legend entry.
type Category struct {
	Key   catalog.Category `json:"key"`
	Title string           `json:"title"`
	Color string           `json:"color"`
}

// Node is a graph node with its precomputed fill and tooltip.
type Node struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	Type     graph.Kind       `json:"type"`
	Category catalog.Category `json:"category,omitempty"`
	Fill     string           `json:"fill"`
	Tooltip  string           `json:"tooltip"`
}

// Link is an edge in the order of the graph's edge list, so that view edge
// indexes address it directly.
type Link struct {
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Category catalog.Category `json:"category"`
	Color    string           `json:"color"`
}

// DefaultTitle is used when no page title is configured.
const DefaultTitle = "RPG Systems Map"

// Payload converts g into the page data, including the precomputed view of
// every node.
func Payload(g *graph.Graph) Page {
	cats := catalog.Categories()
	p := Page{
		Title:       DefaultTitle,
		SystemColor: render.SystemColor,
		Categories:  make([]Category, 0, len(cats)),
		Nodes:       make([]Node, 0, g.NodeCount()),
		Links:       make([]Link, 0, g.EdgeCount()),
		Views:       highlight.Views(g),
		Placeholder: highlight.Placeholder(),
		Stats:       g.Stats(),
	}

	for _, c := range cats {
		p.Categories = append(p.Categories, Category{Key: c, Title: c.Title(), Color: render.CategoryColor(c)})
	}

	for _, n := range g.Nodes() {
		node := Node{
			ID:      n.ID,
			Label:   n.Label,
			Type:    n.Kind,
			Fill:    render.SystemColor,
			Tooltip: n.Label,
		}
		if n.IsTag() {
			node.Category = n.Category
			node.Fill = render.TagFill(n.Category)
			node.Tooltip = n.Label + " (" + n.Category.Title() + ")"
		}
		p.Nodes = append(p.Nodes, node)
	}

	for _, e := range g.Edges() {
		p.Links = append(p.Links, Link{
			Source:   e.Source,
			Target:   e.Target,
			Category: e.Category,
			Color:    render.CategoryColor(e.Category),
		})
	}
	return p
}
