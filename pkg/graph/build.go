package graph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/rpgmap/pkg/catalog"
	errs "github.com/matzehuels/rpgmap/pkg/errors"
)

// Build converts records into a system/tag graph in a single pass.
//
// Records are processed in input order. Each record contributes one system
// node; its categories are walked in canonical order and their values in list
// order. A tag node is created the first time its (category, value) pair is
// seen and reused afterwards. Every (system, tag) pair yields exactly one edge
// and registers both endpoints as neighbors of each other.
//
// Missing or empty categories contribute nothing, and blank values are
// skipped. Build fails with INVALID_DATASET when a system name is empty or
// repeated, and with ID_COLLISION when a system name equals a tag ID.
func Build(records []catalog.Record) (*Graph, error) {
	g := newGraph(len(records))

	for i, r := range records {
		if err := errs.ValidateName(r.System); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := g.addSystem(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		for _, c := range catalog.Categories() {
			for _, value := range r.Tags(c) {
				if strings.TrimSpace(value) == "" {
					continue
				}
				tagID, err := g.ensureTag(c, value)
				if err != nil {
					return nil, fmt.Errorf("record %d: %w", i, err)
				}
				g.link(r.System, tagID, c)
			}
		}
	}

	return g, nil
}

func (g *Graph) addSystem(r catalog.Record) error {
	if i, exists := g.index[r.System]; exists {
		if g.nodes[i].IsSystem() {
			return errs.New(errs.ErrCodeInvalidDataset, "duplicate system %q", r.System)
		}
		return errs.New(errs.ErrCodeIDCollision, "system %q collides with an existing tag ID", r.System)
	}
	g.addNode(Node{ID: r.System, Label: r.System, Kind: KindSystem})
	g.records[r.System] = r
	g.ordered = append(g.ordered, r)
	return nil
}

func (g *Graph) ensureTag(c catalog.Category, value string) (string, error) {
	id := TagID(c, value)
	if i, exists := g.index[id]; exists {
		if !g.nodes[i].IsTag() {
			return "", errs.New(errs.ErrCodeIDCollision, "tag %q collides with system %q", value, id)
		}
		return id, nil
	}
	g.addNode(Node{ID: id, Label: value, Kind: KindTag, Category: c})
	return id, nil
}

func (g *Graph) addNode(n Node) {
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

// link adds the system→tag edge once and records the neighbor relation in
// both directions.
func (g *Graph) link(systemID, tagID string, c catalog.Category) {
	if g.IsNeighbor(systemID, tagID) {
		return
	}
	g.edges = append(g.edges, Edge{Source: systemID, Target: tagID, Category: c})
	g.addNeighbor(systemID, tagID)
	g.addNeighbor(tagID, systemID)
}

func (g *Graph) addNeighbor(a, b string) {
	set, ok := g.neighbors[a]
	if !ok {
		set = make(map[string]struct{})
		g.neighbors[a] = set
	}
	set[b] = struct{}{}
}
