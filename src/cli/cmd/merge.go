package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/config"
)

var (
	mergeFormat string
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <override>...",
	Short: "Layer override files onto the config",
	Long: `Apply override files in order on top of the loaded config and print
the merged result. Later files win; collections are replaced wholesale.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVar(&mergeFormat, "format", "yaml", "output format: yaml or toml")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "write the merged config to this path (default: stdout)")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	format, err := config.ParseFormat(mergeFormat)
	if err != nil {
		return err
	}

	merged := cfg.Clone()
	for _, path := range args {
		o, err := config.LoadOverride(path)
		if err != nil {
			return err
		}
		merged = config.Merge(merged, o)
		logger.Debug("applied override", "path", path)
	}

	data, err := config.Encode(merged, format)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), mergeOutput, data)
}
