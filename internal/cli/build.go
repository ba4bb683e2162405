package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rpgmap/pkg/pipeline"
)

// defaultOutput is the base path for build outputs.
const defaultOutput = "rpgmap"

// buildCommand creates the build command: load a dataset, build the graph and
// write one file per format.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		flags  renderFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "build [dataset]",
		Short: "Build the system map from a dataset",
		Long: `Build loads a JSON or YAML catalog of RPG systems from a file or URL, links
each system to its design elements and writes the requested formats.

Outputs are written to <output>.<format>, e.g. rpgmap.html and rpgmap.svg.
The dataset may be omitted when the config file names one.`,
		Example: `  rpgmap build rpg_systems.json
  rpgmap build rpg_systems.json -f html,svg -s "Blades in the Dark"
  rpgmap build https://example.com/rpg_systems.json -o site/index`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := c.datasetSource(args)
			if err != nil {
				return err
			}
			opts := c.options(cmd, &flags)
			opts.Source = source
			return c.runBuild(cmd.Context(), opts, flags.noCache, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", defaultOutput, "output base path")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, noCache bool, output string) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built map of %d systems", result.Stats.Systems))

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}

	printSuccess("Built %s", opts.Source)
	printStats(result.Stats.Systems, result.Stats.Tags, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	if opts.Select != "" && !result.Graph.Has(opts.Select) {
		printWarning("%q is not a system or tag in this catalog", opts.Select)
	}
	return nil
}

// writeArtifacts writes one file per format and returns the paths in format
// order.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + pipeline.Extension(f)
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
