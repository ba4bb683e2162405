package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/highlight"
	"github.com/matzehuels/rpgmap/pkg/render/nodelink"
	"github.com/matzehuels/rpgmap/pkg/render/web"
)

// Render generates output artifacts in the requested formats without
// consulting a cache.
func Render(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, g, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single artifact.
func RenderFormat(ctx context.Context, g *graph.Graph, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = graph.MarshalGraph(g)
	case FormatDOT:
		data = []byte(toDOT(g, opts))
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, toDOT(g, opts), nodelink.Engine(opts.Engine))
	case FormatHTML:
		data, err = web.RenderHTML(g, web.Options{Title: opts.Title, Selected: opts.Select})
	default:
		return nil, ValidateFormat(format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func toDOT(g *graph.Graph, opts Options) string {
	return nodelink.ToDOT(g, highlight.Select(g, opts.Select), nodelink.Options{
		Detailed: opts.Detailed,
		Engine:   nodelink.Engine(opts.Engine),
	})
}
