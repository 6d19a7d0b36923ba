package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/l0ser140/GDScript-formatter/internal/configloader"
	"github.com/l0ser140/GDScript-formatter/internal/logging"
	"github.com/l0ser140/GDScript-formatter/internal/ui/pretty"
	"github.com/l0ser140/GDScript-formatter/pkg/config"
)

// Sentinel errors used to signal exit codes without double-logging.
var (
	// ErrIssuesFound is returned when lint finds error-severity issues.
	ErrIssuesFound = errors.New("lint issues found")

	// ErrWarningsFound is returned when lint finds warnings in strict mode.
	ErrWarningsFound = errors.New("lint warnings found")

	// ErrCheckFailed is returned when --check detects unformatted files.
	ErrCheckFailed = errors.New("files need formatting")

	// ErrFilesFailed is returned when one or more files could not be
	// processed. Per-file details are logged before this is returned.
	ErrFilesFailed = errors.New("some files failed")
)

// commandContext returns the command's context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the effective configuration for a command, honoring
// the root --config flag.
func loadConfig(cmd *cobra.Command, workDir string) (*config.Config, error) {
	logger := logging.FromContext(commandContext(cmd))

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// newStyles builds output styles from the root --color flag.
func newStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))
}
