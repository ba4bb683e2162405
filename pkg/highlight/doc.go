// Package highlight computes what a selection in the catalog graph looks like.
//
// Selecting a node highlights it and the edges to its neighbors, leaves the
// neighbors themselves neutral and dims everything else. [Select] is a pure
// function from a graph and an optional node ID to a [State]; renderers such
// as the terminal explorer, the Graphviz snapshot and the web page all draw
// from it. The current selection is owned by the caller, and [Next]
// implements click-to-deselect:
//
//	active = highlight.Next(active, clicked)
//	state := highlight.Select(g, active)
//
// Besides per-node classes, a State carries [Details]: the placeholder when
// nothing is selected, the non-empty category sections of a system, or the
// sorted list of systems sharing a tag.
//
// [Views] precomputes the selection of every node so that a static page can
// apply highlighting without recomputing neighborhoods.
package highlight
