package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/pipeline"
)

// renderCommand creates the render command, which renders a graph written
// earlier by `build -f json` without reloading the dataset.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  renderFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a previously built graph",
		Long: `Render reads a graph.json produced by "rpgmap build -f json" and renders it to
other formats. The graph is rebuilt from the records it carries, so the
output is the same as building from the original dataset.`,
		Example: `  rpgmap render rpgmap.json -f svg -e fdp
  rpgmap render rpgmap.json -f html -s "genre_scope:horror"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if output == "" {
				output = strings.TrimSuffix(args[0], ".json")
			}
			return c.runRender(cmd.Context(), args[0], opts, flags.noCache, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without .json)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, noCache bool, output string) error {
	logger := loggerFromContext(ctx)

	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("read graph: %w", err)
	}
	logger.Debug("read graph", "path", input, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	artifacts, info, err := runner.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, output)
	if err != nil {
		return err
	}

	stats := g.Stats()
	printSuccess("Rendered %s", input)
	printStats(stats.Systems, stats.Tags, stats.Edges, info.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
