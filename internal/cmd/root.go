package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/petrarca/snippet-lang/internal/config"
	"github.com/spf13/cobra"
)

// settings holds defaults and environment overrides; flags write into it
var settings = config.LoadSettings()

var rootCmd = &cobra.Command{
	Use:   "snippetlang",
	Short: "Programming-language detector for code snippets",
	Long: `snippetlang guesses the programming or markup language of a code snippet.

It asks an optional trained classifier first and falls back to an ordered cascade
of keyword, structural-pattern and feature rules covering 21 languages.`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	PersistentPreRunE: configureLogging,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settings.ModelDir, "model-dir", settings.ModelDir, "Directory containing language-classifier.yaml (default: no model)")
	flags.StringVar(&settings.RulesDir, "rules-dir", settings.RulesDir, "Directory of rule files overriding the embedded rules")

	// Logging flags - use defaults from environment variables
	flags.String("log-level", settings.LogLevel.String(), "Log level: debug, info, warn, error")
	flags.StringVar(&settings.LogFormat, "log-format", settings.LogFormat, "Log format: text or json")
	flags.StringVar(&settings.LogFile, "log-file", settings.LogFile, "Log file path (default: stderr)")
}

// configureLogging sets up the default logger from the logging flags
func configureLogging(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("log-level") {
		logLevel, _ := cmd.Flags().GetString("log-level")
		level, err := config.ParseLogLevel(logLevel)
		if err != nil {
			return err
		}
		settings.LogLevel = level
	}

	slog.SetDefault(settings.ConfigureLogger())
	return nil
}

// exitOnError logs err and terminates the process
func exitOnError(msg string, err error) {
	if err == nil {
		return
	}
	slog.Error(msg, "error", err)
	os.Exit(1)
}
