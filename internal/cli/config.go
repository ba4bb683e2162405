package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rpgmap/pkg/config"
)

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := config.Init()
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			if !created {
				printInfo("Config already exists")
				printFile(config.Path())
				return nil
			}
			printSuccess("Created config")
			printFile(config.Path())
			printNextStep("Set a default dataset", "[dataset] source = \"rpg_systems.json\"")
			return nil
		},
	})

	return cmd
}
