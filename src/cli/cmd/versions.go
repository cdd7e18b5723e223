package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/versions"
)

var (
	versionsQuery  string
	versionsLatest bool
)

var versionsCmd = &cobra.Command{
	Use:   "versions [file|-]",
	Short: "List toolchain versions from a release listing",
	Long: `Parse a release listing (for example a saved Rust channel page) and
list the versions it mentions: Stable, Beta, and Nightly first, then every
other N.N.N version in order of appearance. Reads stdin by default.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{noConfig: "true"},
	RunE:        runVersions,
}

func init() {
	versionsCmd.Flags().StringVarP(&versionsQuery, "query", "q", "", "keep only versions containing this text")
	versionsCmd.Flags().BoolVar(&versionsLatest, "latest", false, "print only the highest version")

	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	opts := versions.Parse(string(data), versionsQuery)
	logger.Debug("parsed versions", "count", len(opts))

	w := cmd.OutOrStdout()
	if versionsLatest {
		latest, ok := versions.Latest(opts)
		if !ok {
			return fmt.Errorf("no versions found")
		}
		fmt.Fprintln(w, latest.Value)
		return nil
	}
	for _, o := range opts {
		fmt.Fprintf(w, "%-12s %s\n", o.Value, o.Label)
	}
	return nil
}
