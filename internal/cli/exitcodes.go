package cli

import "github.com/l0ser140/GDScript-formatter/pkg/runner"

// Exit codes for gdformat.
const (
	// ExitSuccess indicates successful execution with no findings.
	ExitSuccess = 0

	// ExitIssues indicates lint errors were found, or --check detected
	// files that need reformatting.
	ExitIssues = 1

	// ExitWarnings indicates lint warnings were found in strict mode.
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// lintExitCode determines the exit code for a lint run.
func lintExitCode(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.FilesErrored > 0 || result.Stats.IssuesBySeverity["error"] > 0 {
		return ExitIssues
	}

	if strict && result.Stats.IssuesBySeverity["warning"] > 0 {
		return ExitWarnings
	}

	return ExitSuccess
}
