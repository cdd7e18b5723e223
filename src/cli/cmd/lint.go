package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/lint"
	_ "github.com/sofmeright/stagecraft/src/lint/modules"
	"github.com/sofmeright/stagecraft/src/output"
)

var (
	lintModules  []string
	lintNoModule []string
	lintJUnit    string
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Run config quality checks",
	Long: `Run lint modules over the layered config.

Modules run in parallel. Each one is toggled and tuned under lint.modules
in the config file; --module and --no-module override that selection.
Exits non-zero on critical findings.`,
	Args: cobra.NoArgs,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringSliceVar(&lintModules, "module", nil, "run only these modules (comma-separated)")
	lintCmd.Flags().StringSliceVar(&lintNoModule, "no-module", nil, "skip these modules (comma-separated)")
	lintCmd.Flags().StringVar(&lintJUnit, "junit", "", "write a JUnit report to this directory")

	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	engine, err := lint.NewEngine(cfg.Lint, lintModules, lintNoModule)
	if err != nil {
		return err
	}
	logger.Debug("lint modules", "modules", engine.ModuleNames())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	color := output.UseColor()
	w := cmd.OutOrStdout()

	start := time.Now()
	findings, stats, runErr := engine.RunWithStats(ctx, cfg)
	elapsed := time.Since(start)

	critical, _, _ := output.Counts(findings)

	if dir := junitTarget(lintJUnit); dir != "" {
		report := output.LintJUnit(findings, engine.ModuleNames(), elapsed)
		if jErr := output.WriteJUnit(dir, "lint.xml", report); jErr != nil {
			logger.Warn("failed to write junit report", "err", jErr)
		}
	}

	// ── Lint section ──
	sec := output.NewSection(w, "Lint", elapsed, color)
	output.LintTable(sec, stats)
	sec.Close()

	// ── Findings section (only when findings > 0) ──
	if len(findings) > 0 {
		fSec := output.NewSection(w, "Findings", 0, color)
		output.SectionFindings(fSec, findings, color)
		fSec.Separator()
		fSec.Row("%s", output.FindingsSummaryLine(findings, len(stats), color))
		fSec.Close()
	}

	if runErr != nil {
		logger.Warn("lint incomplete", "err", runErr)
	}

	if critical > 0 {
		return fmt.Errorf("lint failed: %d critical findings", critical)
	}
	return runErr
}
