package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/config"
)

// noConfig marks commands that run without loading the project config.
const noConfig = "stagecraft/no-config"

var (
	cfgFile string
	verbose bool
	cfg     *config.ContainerConfig

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.InfoLevel,
		Prefix: "stagecraft",
	})
)

var rootCmd = &cobra.Command{
	Use:   "stagecraft",
	Short: "Container build configuration compiler",
	Long: `StageCraft validates, merges, and lints layered container configurations
and compiles them into Dockerfiles.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogger()

		// Skip config loading for commands that don't need it.
		if cmd.Annotations[noConfig] != "" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Debug("config loaded", "path", configPath(), "version", cfg.Version)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, .yml or .toml (default: "+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// configureLogger applies --verbose, then STAGECRAFT_LOG_LEVEL if set.
func configureLogger() {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	if env := os.Getenv("STAGECRAFT_LOG_LEVEL"); env != "" {
		level, err := log.ParseLevel(env)
		if err != nil {
			logger.Warn("ignoring STAGECRAFT_LOG_LEVEL", "value", env, "err", err)
			return
		}
		logger.SetLevel(level)
	}
}

func configPath() string {
	if cfgFile == "" {
		return config.DefaultConfigFile
	}
	return cfgFile
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		return err
	}
	return nil
}
