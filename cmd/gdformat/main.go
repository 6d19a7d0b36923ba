// Package main is the entry point for the gdformat CLI.
package main

import (
	"errors"
	"os"

	"github.com/l0ser140/GDScript-formatter/internal/cli"
	"github.com/l0ser140/GDScript-formatter/internal/logging"

	// Import rules package to register built-in lint rules via init().
	_ "github.com/l0ser140/GDScript-formatter/pkg/lint/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// Signal-only sentinels already produced their own output.
	switch {
	case errors.Is(err, cli.ErrIssuesFound), errors.Is(err, cli.ErrCheckFailed):
		return cli.ExitIssues
	case errors.Is(err, cli.ErrWarningsFound):
		return cli.ExitWarnings
	case errors.Is(err, cli.ErrFilesFailed):
		return cli.ExitInternalError
	}

	logger := logging.Default()
	logger.Error("command failed", logging.FieldError, err)
	return 1
}
