package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rpgmap/pkg/pipeline"
)

// exploreCommand creates the explore command, a terminal UI for trying
// selections.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [dataset]",
		Short: "Browse systems and tags interactively",
		Long: `Explore lists every system and tag. Press enter to select the node under the
cursor and again to deselect it; esc clears the selection and / filters the
list. The panel on the right shows the selection's details.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := c.datasetSource(args)
			if err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), source)
		},
	}
}

func (c *CLI) runExplore(ctx context.Context, source string) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()
	// Info logs would tear through the spinner line.
	runner.Logger = newLogger(os.Stderr, log.WarnLevel)

	spinner := newSpinnerWithContext(ctx, "Loading catalog...")
	spinner.Start()
	records, err := runner.Load(ctx, pipeline.Options{Source: source})
	if err != nil {
		spinner.StopWithError("Failed to load catalog")
		return err
	}
	g, err := runner.Build(ctx, records)
	if err != nil {
		spinner.StopWithError("Failed to build graph")
		return err
	}
	spinner.Stop()
	if err := ctx.Err(); err != nil {
		return err
	}

	p := tea.NewProgram(NewExploreModel(g), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
