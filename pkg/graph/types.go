package graph

import (
	"slices"

	"github.com/matzehuels/rpgmap/pkg/catalog"
)

// Kind distinguishes the two node variants of the bipartite graph.
type Kind string

const (
	// KindSystem marks a node created from a catalog record.
	KindSystem Kind = "system"
	// KindTag marks a node shared by every system carrying a (category, value) pair.
	KindTag Kind = "tag"
)

// Node is a vertex of the system/tag graph.
//
// System nodes use the system name as both ID and Label. Tag nodes use
// [TagID] as their ID, the tag value as Label, and record their Category.
type Node struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	Kind     Kind             `json:"type"`
	Category catalog.Category `json:"category,omitempty"`
}

// IsSystem reports whether n is a system node.
func (n Node) IsSystem() bool { return n.Kind == KindSystem }

// IsTag reports whether n is a tag node.
func (n Node) IsTag() bool { return n.Kind == KindTag }

// Edge connects a system node (Source) to a tag node (Target). Category is
// the category the tag came from.
type Edge struct {
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Category catalog.Category `json:"category"`
}

// Touches reports whether the edge has id as one of its endpoints.
func (e Edge) Touches(id string) bool { return e.Source == id || e.Target == id }

// Other returns the endpoint opposite to id.
func (e Edge) Other(id string) string {
	if e.Source == id {
		return e.Target
	}
	return e.Source
}

// TagID returns the node ID for a tag value within a category.
func TagID(c catalog.Category, value string) string {
	return string(c) + ":" + value
}

// Stats summarizes a graph.
type Stats struct {
	Systems     int                      `json:"systems"`
	Tags        int                      `json:"tags"`
	Edges       int                      `json:"edges"`
	PerCategory map[catalog.Category]int `json:"per_category"` // distinct tags per category
}

// Graph is the immutable system/tag graph produced by [Build].
//
// Nodes and edges keep their construction order. The neighbor index is
// symmetric: b is a neighbor of a exactly when a is a neighbor of b.
// A Graph is safe for concurrent reads.
type Graph struct {
	nodes     []Node
	index     map[string]int
	edges     []Edge
	neighbors map[string]map[string]struct{}
	records   map[string]catalog.Record
	ordered   []catalog.Record
}

func newGraph(capacity int) *Graph {
	return &Graph{
		index:     make(map[string]int, capacity),
		neighbors: make(map[string]map[string]struct{}, capacity),
		records:   make(map[string]catalog.Record, capacity),
		ordered:   make([]catalog.Record, 0, capacity),
	}
}

// Nodes returns a copy of all nodes in construction order.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns a copy of all edges in construction order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Has reports whether the graph contains a node with the given ID.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Neighbors returns the IDs directly connected to id, sorted ascending.
// Unknown IDs have no neighbors and yield nil.
func (g *Graph) Neighbors(id string) []string {
	set := g.neighbors[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// IsNeighbor reports whether a and b are joined by an edge.
func (g *Graph) IsNeighbor(a, b string) bool {
	_, ok := g.neighbors[a][b]
	return ok
}

// Degree returns the number of neighbors of id.
func (g *Graph) Degree(id string) int { return len(g.neighbors[id]) }

// System returns the record a system node was built from.
func (g *Graph) System(id string) (catalog.Record, bool) {
	r, ok := g.records[id]
	return r, ok
}

// Records returns the records the graph was built from, in input order.
func (g *Graph) Records() []catalog.Record { return slices.Clone(g.ordered) }

// Systems returns the system nodes in construction order.
func (g *Graph) Systems() []Node { return g.filter(KindSystem) }

// Tags returns the tag nodes in construction order.
func (g *Graph) Tags() []Node { return g.filter(KindTag) }

func (g *Graph) filter(k Kind) []Node {
	var out []Node
	for _, n := range g.nodes {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// Stats returns node and edge counts.
func (g *Graph) Stats() Stats {
	s := Stats{
		Edges:       len(g.edges),
		PerCategory: make(map[catalog.Category]int),
	}
	for _, n := range g.nodes {
		switch n.Kind {
		case KindSystem:
			s.Systems++
		case KindTag:
			s.Tags++
			s.PerCategory[n.Category]++
		}
	}
	return s
}
