package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/config"
)

var defaultsFormat string

var defaultsCmd = &cobra.Command{
	Use:         "defaults",
	Short:       "Print the default config",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := config.ParseFormat(defaultsFormat)
		if err != nil {
			return err
		}
		data, err := config.Encode(config.Default(), format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	defaultsCmd.Flags().StringVar(&defaultsFormat, "format", "yaml", "output format: yaml or toml")

	rootCmd.AddCommand(defaultsCmd)
}
