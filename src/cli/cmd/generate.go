package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/build"
	"github.com/sofmeright/stagecraft/src/config"
	"github.com/sofmeright/stagecraft/src/gitver"
	"github.com/sofmeright/stagecraft/src/output"
)

var (
	generateOutput     string
	generateGitLabels  bool
	generateNoValidate bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile the config into a Dockerfile",
	Long: `Generate a Dockerfile from the layered config.

The config is validated first and nothing is written if it is invalid.
Use --no-validate to emit the lines regardless. With --git-labels, OCI
labels derived from the surrounding git repository are merged in, and
templates such as {version} in existing labels are resolved.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write the Dockerfile to this path (default: stdout)")
	generateCmd.Flags().BoolVar(&generateGitLabels, "git-labels", false, "add OCI labels from git metadata")
	generateCmd.Flags().BoolVar(&generateNoValidate, "no-validate", false, "skip validation")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	effective := cfg.Clone()

	if generateGitLabels {
		info, err := gitver.Detect(filepath.Dir(configPath()))
		if err != nil {
			return fmt.Errorf("git labels: %w", err)
		}
		logger.Debug("git metadata", "version", info.Version, "sha", info.ShortSHA(), "branch", info.Branch)
		effective = config.Merge(effective, info.Override(effective.Build.Labels))
	}

	var art *build.Artifact
	if generateNoValidate {
		art = &build.Artifact{Lines: build.Generate(effective)}
	} else {
		var err error
		art, err = build.Render(effective)
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			output.ValidationReport(cmd.ErrOrStderr(), verr.Errors, output.UseColor())
			return fmt.Errorf("generate: %d validation errors", len(verr.Errors))
		}
		if err != nil {
			return err
		}
	}

	return writeOutput(cmd.OutOrStdout(), generateOutput, []byte(art.String()))
}
