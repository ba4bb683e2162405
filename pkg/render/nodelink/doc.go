// Package nodelink renders the catalog graph as a static node-link diagram.
//
// # Overview
//
// The diagram is a snapshot of one selection: systems are red circles, tags
// are smaller circles in their category color, and edges take the color of
// the category that links them. The selected node is outlined, the edges to
// its neighbors are thickened, and everything outside the neighborhood is
// faded.
//
// # Usage
//
//	state := highlight.Select(g, "Fate")
//	dot := nodelink.ToDOT(g, state, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Neato)
//
// # Engines
//
// Bipartite catalogs read best with a force-directed layout, so [Neato] is
// the default. [FDP] and [SFDP] scale better to large catalogs; [Dot] and
// [Circo] are available for comparison. [ParseEngine] validates user input.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process layout and
// SVG rendering, so no Graphviz installation is required.
package nodelink
