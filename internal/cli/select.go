package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rpgmap/pkg/highlight"
	"github.com/matzehuels/rpgmap/pkg/pipeline"
)

// selectCommand creates the select command, which prints what selecting one
// node would highlight.
func (c *CLI) selectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "select <id> [dataset]",
		Short: "Show the details and neighborhood of one system or tag",
		Long: `Select prints the details panel for a node: the categorized design elements
of a system, or the systems sharing a tag. Tags are addressed as
category:value, for example "dice_philosophy:roll and keep".

With --json the full highlight state (every node and edge class) is printed.`,
		Example: `  rpgmap select "Fate Core" rpg_systems.json
  rpgmap select "genre_scope:horror" --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := c.datasetSource(args[1:])
			if err != nil {
				return err
			}
			return c.runSelect(cmd.Context(), cmd.OutOrStdout(), source, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the highlight state as JSON")

	return cmd
}

func (c *CLI) runSelect(ctx context.Context, w io.Writer, source, id string, asJSON bool) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	records, err := runner.Load(ctx, pipeline.Options{Source: source})
	if err != nil {
		return err
	}
	g, err := runner.Build(ctx, records)
	if err != nil {
		return err
	}
	state := runner.Select(ctx, g, id)

	if asJSON {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	_, err = fmt.Fprint(w, renderDetails(state.Details))
	return err
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderDetails formats details for the terminal.
func renderDetails(d highlight.Details) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(d.Summary))
	b.WriteString("\n")

	switch d.Kind {
	case highlight.DetailsSystem:
		if len(d.Sections) == 0 {
			break
		}
		rows := make([][]string, 0, len(d.Sections))
		for _, s := range d.Sections {
			rows = append(rows, []string{s.Title, strings.Join(s.Tags, ", ")})
		}
		b.WriteString(detailsTable([]string{"Category", "Elements"}, rows))
		b.WriteString("\n")

	case highlight.DetailsTag:
		b.WriteString(keyValue("Category", d.CategoryTitle))
		b.WriteString("\n")
		rows := make([][]string, 0, len(d.Systems))
		for _, s := range d.Systems {
			rows = append(rows, []string{s})
		}
		if len(rows) > 0 {
			b.WriteString(detailsTable([]string{"Systems"}, rows))
			b.WriteString("\n")
		}

	case highlight.DetailsUnknown:
		b.WriteString(StyleWarning.Render(iconWarning + " use a system name or category:value"))
		b.WriteString("\n")
	}

	return b.String()
}

func detailsTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle.Padding(0, 1)
			}
			if col == 0 && len(headers) > 1 {
				return tableCellStyle.Foreground(colorCyan)
			}
			return tableCellStyle
		})
	return t.Render()
}
