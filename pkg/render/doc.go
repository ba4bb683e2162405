// Package render holds what the catalog renderers share: the category color
// palette and the fill colors derived from it.
//
// # Palette
//
// Categories are mapped to the Tableau10 scheme in canonical order, so the
// first category gets the first color. System nodes use a single accent
// color, and tag nodes use a brightened version of their category color:
//
//	render.CategoryColor(catalog.DicePhilosophy) // "#b07aa1"
//	render.TagFill(catalog.DicePhilosophy)       // brighter variant
//
// # Renderers
//
//   - [nodelink]: Graphviz DOT and SVG snapshots of one selection
//   - [web]: a self-contained D3 page with precomputed selections
//
// [nodelink]: github.com/matzehuels/rpgmap/pkg/render/nodelink
// [web]: github.com/matzehuels/rpgmap/pkg/render/web
package render
