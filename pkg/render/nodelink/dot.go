package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/rpgmap/pkg/errors"
	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/highlight"
	"github.com/matzehuels/rpgmap/pkg/render"
)

// Engine is a Graphviz layout engine.
type Engine string

// Force-directed engines come first; dot and circo are offered for
// comparison.
const (
	Neato Engine = "neato"
	FDP   Engine = "fdp"
	SFDP  Engine = "sfdp"
	Dot   Engine = "dot"
	Circo Engine = "circo"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = Neato

var layouts = map[Engine]graphviz.Layout{
	Neato: graphviz.NEATO,
	FDP:   graphviz.FDP,
	SFDP:  graphviz.SFDP,
	Dot:   graphviz.DOT,
	Circo: graphviz.CIRCO,
}

// Engines returns the supported engines in preference order.
func Engines() []Engine {
	return []Engine{Neato, FDP, SFDP, Dot, Circo}
}

// ParseEngine converts a name into an Engine. An empty name selects
// [DefaultEngine].
func ParseEngine(s string) (Engine, error) {
	if s == "" {
		return DefaultEngine, nil
	}
	e := Engine(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := layouts[e]; !ok {
		return "", errs.New(errs.ErrCodeInvalidEngine, "unknown layout engine %q (valid: neato, fdp, sfdp, dot, circo)", s)
	}
	return e, nil
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the category title to tag labels.
	Detailed bool
	// Engine is written into the DOT source as the layout attribute.
	// Empty means [DefaultEngine].
	Engine Engine
}

const (
	dimAlpha     = 0.2
	neutralAlpha = 0.6
	edgeDimAlpha = 0.12
)

// ToDOT converts the catalog graph to undirected Graphviz DOT, styled for
// one highlight state. Pass highlight.Select(g, "") for an unselected
// diagram. Nodes missing from the state are drawn neutral.
func ToDOT(g *graph.Graph, state highlight.State, opts Options) string {
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}

	nodeClass := make(map[string]highlight.Class, len(state.Nodes))
	for _, n := range state.Nodes {
		nodeClass[n.ID] = n.Class
	}
	edgeClass := make(map[[2]string]highlight.Class, len(state.Edges))
	for _, e := range state.Edges {
		edgeClass[[2]string{e.Source, e.Target}] = e.Class
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", engine)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  forcelabels=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, label=\"\", fontname=\"Helvetica\", fontsize=11, color=white, penwidth=1.5];\n")
	buf.WriteString("  edge [penwidth=1.2];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtNodeAttrs(n, classOf(nodeClass, n.ID), opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := fmtEdgeAttrs(e, classOf(edgeClass, [2]string{e.Source, e.Target}))
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func classOf[K comparable](m map[K]highlight.Class, k K) highlight.Class {
	if c, ok := m[k]; ok {
		return c
	}
	return highlight.Neutral
}

func fmtNodeAttrs(n graph.Node, class highlight.Class, detailed bool) []string {
	fill := render.SystemColor
	width := 0.5
	tooltip := n.Label
	xlabel := n.Label
	if n.IsTag() {
		fill = render.TagFill(n.Category)
		width = 0.28
		tooltip = fmt.Sprintf("%s (%s)", n.Label, n.Category.Title())
		if detailed {
			xlabel = n.Label + "\n" + n.Category.Title()
		}
	}

	attrs := []string{
		fmt.Sprintf("xlabel=%q", xlabel),
		fmt.Sprintf("tooltip=%q", tooltip),
		fmt.Sprintf("width=%.2f", width),
	}
	switch class {
	case highlight.Highlighted:
		attrs = append(attrs,
			fmt.Sprintf("fillcolor=%q", fill),
			"color=\"#222222\"", "penwidth=3", "fontname=\"Helvetica-Bold\"")
	case highlight.Dimmed:
		attrs = append(attrs,
			fmt.Sprintf("fillcolor=%q", render.WithAlpha(fill, dimAlpha)),
			fmt.Sprintf("color=%q", render.WithAlpha("#ffffff", dimAlpha)),
			fmt.Sprintf("fontcolor=%q", render.WithAlpha("#000000", dimAlpha*1.5)))
	default:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	return attrs
}

func fmtEdgeAttrs(e graph.Edge, class highlight.Class) []string {
	color := render.CategoryColor(e.Category)
	switch class {
	case highlight.Highlighted:
		return []string{fmt.Sprintf("color=%q", color), "penwidth=2.5"}
	case highlight.Dimmed:
		return []string{fmt.Sprintf("color=%q", render.WithAlpha(color, edgeDimAlpha))}
	default:
		return []string{fmt.Sprintf("color=%q", render.WithAlpha(color, neutralAlpha))}
	}
}

// RenderSVG lays out a DOT graph with the given engine and renders it to SVG
// in-process. The engine overrides any layout attribute in the source.
func RenderSVG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	if engine == "" {
		engine = DefaultEngine
	}
	layout, ok := layouts[engine]
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidEngine, "unknown layout engine %q", engine)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
