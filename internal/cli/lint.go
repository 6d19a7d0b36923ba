package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l0ser140/GDScript-formatter/internal/logging"
	"github.com/l0ser140/GDScript-formatter/pkg/fsutil"
	"github.com/l0ser140/GDScript-formatter/pkg/lint"
	_ "github.com/l0ser140/GDScript-formatter/pkg/lint/rules" // register built-in rules
	"github.com/l0ser140/GDScript-formatter/pkg/runner"
)

type lintFlags struct {
	disable       []string
	maxLineLength int
	strict        bool
	noContext     bool
	summary       bool
	format        string
	ignore        []string
	jobs          int
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint GDScript files",
		Long: `Lint GDScript files against the GDScript style guide.

By default, lints all .gd files in the current directory and
subdirectories. Specify paths to lint specific files or directories.

Issues can be suppressed per line with comments:
  # gdlint-ignore = rule-name
  # gdlint-ignore-next-line = rule-name

Examples:
  gdformat lint                    # Lint current directory
  gdformat lint scenes/            # Lint a directory
  gdformat lint player.gd          # Lint a single file
  gdformat lint --strict           # Treat warnings as errors
  gdformat lint --disable max-line-length`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule names to disable")
	cmd.Flags().IntVar(&flags.maxLineLength, "max-line-length", 0, "line length limit")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary block instead of one line")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(cmd, workDir)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("max-line-length") {
		cfg.Lint.MaxLineLength = flags.maxLineLength
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}

	// Unknown names from config files were already warned about during
	// loading; names from --disable surface here.
	var disabled []string
	for _, name := range append(append([]string{}, cfg.Lint.Disabled...), flags.disable...) {
		if !lint.DefaultRegistry.Has(name) {
			logger.Warn("unknown rule, ignoring", logging.FieldRule, name)
			continue
		}
		disabled = append(disabled, name)
	}

	linter, err := lint.New(lint.Config{
		MaxLineLength: cfg.Lint.MaxLineLength,
		Disabled:      disabled,
	})
	if err != nil {
		return err
	}

	process := func(ctx context.Context, path string) runner.FileOutcome {
		content, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return runner.FileOutcome{Error: err}
		}
		issues, err := linter.Lint(ctx, content)
		if err != nil {
			return runner.FileOutcome{Error: err}
		}
		// The source rides along so issue rendering can echo the
		// offending lines without a second read.
		return runner.FileOutcome{Output: content, Issues: issues}
	}

	result, err := runner.New(process).Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: append(append([]string{}, cfg.Ignore...), flags.ignore...),
		Jobs:         cfg.Jobs,
	})
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	out := cmd.OutOrStdout()

	if flags.format == formatJSON {
		if err := writeLintJSON(out, workDir, result); err != nil {
			return err
		}
		switch lintExitCode(result, flags.strict) {
		case ExitIssues:
			return ErrIssuesFound
		case ExitWarnings:
			return ErrWarningsFound
		}
		return nil
	}

	styles := newStyles(cmd)

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("lint failed",
				logging.FieldPath, outcome.Path,
				logging.FieldError, outcome.Error)
			continue
		}
		if len(outcome.Issues) == 0 {
			continue
		}

		path := relativeTo(workDir, outcome.Path)
		fmt.Fprintln(out, styles.FormatFileHeader(path, len(outcome.Issues)))

		lines := strings.Split(string(outcome.Output), "\n")
		for _, issue := range outcome.Issues {
			sourceLine := ""
			if !flags.noContext && issue.Line >= 1 && issue.Line <= len(lines) {
				sourceLine = lines[issue.Line-1]
			}
			fmt.Fprint(out, styles.FormatIssue(path, issue, sourceLine))
		}
		fmt.Fprintln(out)
	}

	if flags.summary {
		fmt.Fprint(out, styles.FormatLintSummary(result.Stats))
	} else {
		fmt.Fprint(out, styles.FormatLintSummaryOneLine(result.Stats))
	}

	switch lintExitCode(result, flags.strict) {
	case ExitIssues:
		return ErrIssuesFound
	case ExitWarnings:
		return ErrWarningsFound
	}
	return nil
}
