package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/config"
)

var (
	migrateInPlace bool
	migrateOutput  string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [file]",
	Short: "Migrate a config file to the latest schema version",
	Long: `Migrate a .stagecraft.yml or .toml config file to the latest schema version.

By default, prints the migrated config to stdout. Use --in-place to
overwrite the file, or --output to write to a different path.

Unversioned files are stamped with the current version after checking
that they still decode.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{noConfig: "true"},
	RunE:        runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVarP(&migrateInPlace, "in-place", "i", false, "overwrite the config file in place")
	migrateCmd.Flags().StringVarP(&migrateOutput, "output", "o", "", "write migrated config to this path")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	inputPath := configPath()
	if len(args) > 0 {
		inputPath = args[0]
	}
	if migrateInPlace && migrateOutput != "" {
		return fmt.Errorf("--in-place and --output are mutually exclusive")
	}
	if migrateInPlace && inputPath == "-" {
		return fmt.Errorf("--in-place needs a file, not stdin")
	}

	format, err := config.FormatFor(inputPath)
	if err != nil {
		return err
	}
	data, err := readInput(cmd.InOrStdin(), inputPath)
	if err != nil {
		return err
	}

	migrated, err := config.MigrateToLatest(data, format)
	if err != nil {
		return err
	}

	dest := migrateOutput
	if migrateInPlace {
		dest = inputPath
	}
	return writeOutput(cmd.OutOrStdout(), dest, migrated)
}
