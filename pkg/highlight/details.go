package highlight

import (
	"fmt"
	"slices"

	"github.com/matzehuels/rpgmap/pkg/catalog"
	"github.com/matzehuels/rpgmap/pkg/graph"
)

// DetailsKind says which variant of [Details] is populated.
type DetailsKind string

const (
	DetailsNone    DetailsKind = "none"
	DetailsSystem  DetailsKind = "system"
	DetailsTag     DetailsKind = "tag"
	DetailsUnknown DetailsKind = "unknown"
)

// Section is one non-empty category of a selected system.
type Section struct {
	Category catalog.Category `json:"category"`
	Title    string           `json:"title"`
	Tags     []string         `json:"tags"`
}

// Details is the contextual payload shown next to the graph.
//
// For systems, Sections lists every non-empty category in canonical order and
// NeighborCount is the number of connected tags. For tags, Category names the
// tag's category and Systems lists the sharing systems sorted ascending.
type Details struct {
	Kind          DetailsKind      `json:"kind"`
	Title         string           `json:"title"`
	Summary       string           `json:"summary"`
	Sections      []Section        `json:"sections,omitempty"`
	NeighborCount int              `json:"neighbor_count"`
	Category      catalog.Category `json:"category,omitempty"`
	CategoryTitle string           `json:"category_title,omitempty"`
	Systems       []string         `json:"systems,omitempty"`
}

// Placeholder returns the details shown while nothing is selected.
func Placeholder() Details {
	return Details{
		Kind:    DetailsNone,
		Title:   "Select a node",
		Summary: "Choose a system or tag in the graph to see more context.",
	}
}

func describe(g *graph.Graph, id string, neighbors []string) Details {
	node, ok := g.Node(id)
	if !ok {
		return Details{
			Kind:    DetailsUnknown,
			Title:   id,
			Summary: "No system or tag with this ID is in the catalog.",
		}
	}

	if node.IsSystem() {
		return describeSystem(g, node, len(neighbors))
	}
	return describeTag(g, node, neighbors)
}

func describeSystem(g *graph.Graph, node graph.Node, count int) Details {
	d := Details{
		Kind:          DetailsSystem,
		Title:         node.Label,
		Summary:       fmt.Sprintf("This system is connected to %d design element%s.", count, plural(count)),
		NeighborCount: count,
	}
	record, ok := g.System(node.ID)
	if !ok {
		return d
	}
	d.Title = record.System
	for _, sec := range record.Sections() {
		d.Sections = append(d.Sections, Section{
			Category: sec.Category,
			Title:    sec.Category.Title(),
			Tags:     slices.Clone(sec.Tags),
		})
	}
	return d
}

func describeTag(g *graph.Graph, node graph.Node, neighbors []string) Details {
	systems := make([]string, 0, len(neighbors))
	for _, id := range neighbors {
		if r, ok := g.System(id); ok {
			systems = append(systems, r.System)
		}
	}
	slices.Sort(systems)

	return Details{
		Kind:          DetailsTag,
		Title:         node.Label,
		Summary:       fmt.Sprintf("%s tag shared by %d system%s.", node.Category.Title(), len(systems), plural(len(systems))),
		NeighborCount: len(neighbors),
		Category:      node.Category,
		CategoryTitle: node.Category.Title(),
		Systems:       systems,
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
