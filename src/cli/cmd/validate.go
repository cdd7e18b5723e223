package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/config"
	"github.com/sofmeright/stagecraft/src/output"
)

var validateJUnit string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config for errors",
	Long: `Validate the layered config and report every problem found.

Errors are grouped by config section. Exits non-zero if any rule fails.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateJUnit, "junit", "", "write a JUnit report to this directory")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	errs := config.Validate(cfg)
	elapsed := time.Since(start)

	output.ValidationReport(cmd.OutOrStdout(), errs, output.UseColor())

	if dir := junitTarget(validateJUnit); dir != "" {
		if err := output.WriteJUnit(dir, "validate.xml", output.ValidationJUnit(errs, elapsed)); err != nil {
			logger.Warn("failed to write junit report", "err", err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %d errors", len(errs))
	}
	return nil
}
