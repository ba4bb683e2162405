package highlight

import (
	"github.com/matzehuels/rpgmap/pkg/graph"
)

// View is the precomputed selection of one node in compact form. Related
// holds the node and its neighbors; Edges holds the indexes into the graph's
// edge list that become highlighted.
type View struct {
	Related []string `json:"related"`
	Edges   []int    `json:"edges"`
	Details Details  `json:"details"`
}

// Views precomputes the selection of every node in g, keyed by node ID.
// Each view describes the same highlighting as [Select] for that ID: nodes
// outside Related and edges outside Edges are dimmed.
func Views(g *graph.Graph) map[string]View {
	incident := make(map[string][]int, g.NodeCount())
	for i, e := range g.Edges() {
		incident[e.Source] = append(incident[e.Source], i)
		incident[e.Target] = append(incident[e.Target], i)
	}

	views := make(map[string]View, g.NodeCount())
	for _, n := range g.Nodes() {
		neighbors := g.Neighbors(n.ID)
		related := make([]string, 0, len(neighbors)+1)
		related = append(related, n.ID)
		related = append(related, neighbors...)

		edges := incident[n.ID]
		if edges == nil {
			edges = []int{}
		}

		views[n.ID] = View{
			Related: related,
			Edges:   edges,
			Details: describe(g, n.ID, neighbors),
		}
	}
	return views
}
