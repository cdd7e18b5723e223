package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/catalog"
)

var scenesCmd = &cobra.Command{
	Use:         "scenes [id]",
	Short:       "List project scenes",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{noConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if len(args) == 1 {
			s, ok := catalog.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown scene %q", args[0])
			}
			fmt.Fprintf(w, "%s\n  %s\n  icon: %s  color: %s\n", s.Name, s.Description, s.Icon, s.Color)
			return nil
		}
		for _, s := range catalog.Scenes() {
			fmt.Fprintf(w, "%-16s %-36s %s\n", s.ID, s.Name, s.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenesCmd)
}
