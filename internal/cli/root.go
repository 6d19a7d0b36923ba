// Package cli provides the Cobra command structure for gdformat.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/l0ser140/GDScript-formatter/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gdformat command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gdformat",
		Short: "A GDScript formatter and linter",
		Long: `gdformat formats GDScript source files and checks them against the
GDScript style guide.

Formatting delegates structural pretty-printing to an external engine and
layers tree-aware cleanup on top: vertical spacing between declarations,
whitespace normalization, optional style-guide reordering of top-level
declarations, and an opt-in safety check that rejects any output whose
syntax tree no longer matches the input's.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			// Subcommands pull the logger back out with logging.FromContext.
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	newHelpFormatter(color, os.Stdout).install(rootCmd)

	return rootCmd
}
