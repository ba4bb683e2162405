// Package web renders the catalog graph as an interactive D3 page.
//
// The page is a single HTML file: the graph payload, the stylesheet and the
// script are inlined, and only D3 itself is fetched from a CDN. Highlighting
// is not recomputed in the browser. [Payload] embeds the view of every node
// from [highlight.Views], and the script applies the view of the clicked
// node, so the page and the other renderers always agree.
//
// The script runs a force simulation with drag and zoom. Clicking a node
// selects it, clicking it again or clicking the background clears the
// selection, and the details panel shows the selected system's categories
// or the systems sharing the selected tag.
package web
