package highlight

import (
	"github.com/matzehuels/rpgmap/pkg/graph"
)

// Class is the visual classification of a node or edge for one selection.
type Class string

const (
	// Neutral entities are drawn normally.
	Neutral Class = "neutral"
	// Highlighted entities are emphasized: the selected node and its edges.
	Highlighted Class = "highlighted"
	// Dimmed entities are outside the selection's neighborhood.
	Dimmed Class = "dimmed"
)

// NodeState is the classification of one node.
type NodeState struct {
	ID    string `json:"id"`
	Class Class  `json:"class"`
}

// EdgeState is the classification of one edge.
type EdgeState struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Class  Class  `json:"class"`
}

// State is everything a renderer needs to draw one selection. Nodes and Edges
// follow the graph's construction order.
type State struct {
	Selected string      `json:"selected,omitempty"`
	Nodes    []NodeState `json:"nodes"`
	Edges    []EdgeState `json:"edges"`
	Details  Details     `json:"details"`
}

// Select computes the highlight state for selecting id in g. An empty id
// means no selection: every node and edge is neutral and the details are the
// placeholder.
//
// For a non-empty id, the selected node is highlighted, its neighbors stay
// neutral and every other node is dimmed. Edges between id and a neighbor are
// highlighted; all other edges are dimmed. IDs absent from the graph have no
// neighbors, so everything is dimmed and the details report zero related
// systems.
//
// Select is a pure function of its arguments. Callers hold the current
// selection and use [Next] to apply click-to-deselect.
func Select(g *graph.Graph, id string) State {
	nodes := g.Nodes()
	edges := g.Edges()

	s := State{
		Selected: id,
		Nodes:    make([]NodeState, len(nodes)),
		Edges:    make([]EdgeState, len(edges)),
	}

	if id == "" {
		for i, n := range nodes {
			s.Nodes[i] = NodeState{ID: n.ID, Class: Neutral}
		}
		for i, e := range edges {
			s.Edges[i] = EdgeState{Source: e.Source, Target: e.Target, Class: Neutral}
		}
		s.Details = Placeholder()
		return s
	}

	neighbors := g.Neighbors(id)
	related := make(map[string]bool, len(neighbors))
	for _, n := range neighbors {
		related[n] = true
	}

	for i, n := range nodes {
		class := Dimmed
		switch {
		case n.ID == id:
			class = Highlighted
		case related[n.ID]:
			class = Neutral
		}
		s.Nodes[i] = NodeState{ID: n.ID, Class: class}
	}

	for i, e := range edges {
		class := Dimmed
		if (e.Source == id && related[e.Target]) || (e.Target == id && related[e.Source]) {
			class = Highlighted
		}
		s.Edges[i] = EdgeState{Source: e.Source, Target: e.Target, Class: class}
	}

	s.Details = describe(g, id, neighbors)
	return s
}

// Next returns the selection that results from clicking clicked while active
// is selected. Clicking the active node again clears the selection.
func Next(active, clicked string) string {
	if clicked == active {
		return ""
	}
	return clicked
}

// Selection holds the caller-side active node ID.
// The zero value has nothing selected.
type Selection struct {
	Active string
}

// Click toggles the selection to id and returns the resulting state.
func (s *Selection) Click(g *graph.Graph, id string) State {
	s.Active = Next(s.Active, id)
	return Select(g, s.Active)
}

// Clear drops the selection and returns the neutral state.
func (s *Selection) Clear(g *graph.Graph) State {
	s.Active = ""
	return Select(g, "")
}

// =============================================================================
// State Queries
// =============================================================================

// Node returns the class of the node with the given ID.
func (s State) Node(id string) (Class, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n.Class, true
		}
	}
	return "", false
}

// Highlighted returns the IDs of highlighted nodes.
func (s State) Highlighted() []string { return s.nodesWith(Highlighted) }

// Dimmed returns the IDs of dimmed nodes.
func (s State) Dimmed() []string { return s.nodesWith(Dimmed) }

// Related returns the IDs of nodes that are not dimmed while something is
// selected: the selected node and its neighbors. It is nil without a selection.
func (s State) Related() []string {
	if s.Selected == "" {
		return nil
	}
	var out []string
	for _, n := range s.Nodes {
		if n.Class != Dimmed {
			out = append(out, n.ID)
		}
	}
	return out
}

// HighlightedEdges returns the highlighted edges.
func (s State) HighlightedEdges() []EdgeState { return s.edgesWith(Highlighted) }

// DimmedEdges returns the dimmed edges.
func (s State) DimmedEdges() []EdgeState { return s.edgesWith(Dimmed) }

// IsEmpty reports whether nothing is highlighted or dimmed.
func (s State) IsEmpty() bool {
	for _, n := range s.Nodes {
		if n.Class != Neutral {
			return false
		}
	}
	for _, e := range s.Edges {
		if e.Class != Neutral {
			return false
		}
	}
	return true
}

func (s State) nodesWith(c Class) []string {
	var out []string
	for _, n := range s.Nodes {
		if n.Class == c {
			out = append(out, n.ID)
		}
	}
	return out
}

func (s State) edgesWith(c Class) []EdgeState {
	var out []EdgeState
	for _, e := range s.Edges {
		if e.Class == c {
			out = append(out, e)
		}
	}
	return out
}
