package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/l0ser140/GDScript-formatter/internal/logging"
	"github.com/l0ser140/GDScript-formatter/pkg/config"
	"github.com/l0ser140/GDScript-formatter/pkg/format"
	"github.com/l0ser140/GDScript-formatter/pkg/fsutil"
	"github.com/l0ser140/GDScript-formatter/pkg/runner"
	"github.com/l0ser140/GDScript-formatter/pkg/textedit"
)

// defaultEngine is the pretty-printing command used when none is
// configured: a topiary CLI with the GDScript query set.
//
//nolint:gochecknoglobals // Read-only fallback configuration.
var defaultEngine = config.EngineConfig{
	Path: "topiary",
	Args: []string{"format", "--language", "{ruleset}"},
}

type formatFlags struct {
	check       bool
	diff        bool
	indentStyle string
	indentSize  int
	reorder     bool
	safe        bool
	engine      string
	ignore      []string
	jobs        int
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format GDScript files",
		Long: `Format GDScript files in place.

By default, formats all .gd files in the current directory and
subdirectories. Specify paths to format specific files or directories,
or "-" to read from stdin and write to stdout.

Examples:
  gdformat format                  # Format current directory in place
  gdformat format player.gd        # Format a single file
  gdformat format - < player.gd    # Format stdin to stdout
  gdformat format --check          # Report files that need formatting
  gdformat format --diff           # Show diffs without writing
  gdformat format --reorder        # Also sort declarations by style guide`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.check, "check", false, "report files that need formatting without writing")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print unified diffs without writing")
	cmd.Flags().StringVar(&flags.indentStyle, "indent-style", "", "indentation unit: tabs, spaces")
	cmd.Flags().IntVar(&flags.indentSize, "indent-size", 0, "columns per indentation level (spaces only)")
	cmd.Flags().BoolVar(&flags.reorder, "reorder", false, "sort top-level declarations per the style guide")
	cmd.Flags().BoolVar(&flags.safe, "safe", false, "verify output structure matches the input")
	cmd.Flags().StringVar(&flags.engine, "engine", "", "pretty-printing engine executable")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
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
	applyFormatFlags(cmd, cfg, flags)

	formatter, opts, err := buildFormatter(cfg)
	if err != nil {
		return err
	}
	formatter.Logger = logger

	// Stdin mode bypasses discovery and writes to stdout.
	if len(args) == 1 && args[0] == "-" {
		return formatStdin(ctx, cmd.OutOrStdout(), formatter, opts)
	}

	process := func(ctx context.Context, path string) runner.FileOutcome {
		return formatFile(ctx, path, workDir, formatter, opts, flags)
	}

	result, err := runner.New(process).Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: append(append([]string{}, cfg.Ignore...), flags.ignore...),
		Jobs:         cfg.Jobs,
	})
	if err != nil {
		return fmt.Errorf("format run failed: %w", err)
	}

	styles := newStyles(cmd)
	out := cmd.OutOrStdout()

	for _, outcome := range result.Files {
		switch {
		case outcome.Error != nil:
			logger.Error("format failed",
				logging.FieldPath, outcome.Path,
				logging.FieldError, outcome.Error)
		case flags.diff && outcome.Changed:
			fmt.Fprint(out, styles.FormatDiff(string(outcome.Output)))
		case flags.check && outcome.Changed:
			fmt.Fprintln(out, "would reformat", relativeTo(workDir, outcome.Path))
		}
	}

	fmt.Fprint(out, styles.FormatFormatSummaryOneLine(result.Stats, flags.check))

	if result.Stats.FilesErrored > 0 {
		return ErrFilesFailed
	}
	if flags.check && result.HasChanges() {
		return ErrCheckFailed
	}
	return nil
}

// applyFormatFlags overlays explicitly-set CLI flags onto the config.
func applyFormatFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) {
	if cmd.Flags().Changed("indent-style") {
		cfg.Format.IndentStyle = config.IndentStyle(flags.indentStyle)
	}
	if cmd.Flags().Changed("indent-size") {
		cfg.Format.IndentSize = flags.indentSize
	}
	if cmd.Flags().Changed("reorder") {
		cfg.Format.Reorder = flags.reorder
	}
	if cmd.Flags().Changed("safe") {
		cfg.Format.SafeMode = flags.safe
	}
	if cmd.Flags().Changed("engine") {
		cfg.Format.Engine.Path = flags.engine
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
}

// buildFormatter assembles the formatter and per-run options from config.
func buildFormatter(cfg *config.Config) (*format.Formatter, format.Options, error) {
	if cfg.Format.IndentStyle != "" && !cfg.Format.IndentStyle.IsValid() {
		return nil, format.Options{}, fmt.Errorf("invalid indent style %q", cfg.Format.IndentStyle)
	}

	engineCfg := cfg.Format.Engine
	if engineCfg.Path == "" {
		engineCfg = defaultEngine
	} else if len(engineCfg.Args) == 0 {
		engineCfg.Args = defaultEngine.Args
	}

	formatter := format.New(&format.ExecEngine{
		Path: engineCfg.Path,
		Args: engineCfg.Args,
	})

	opts := format.Options{
		Indent: format.Indent{
			UseSpaces: cfg.Format.IndentStyle == config.IndentSpaces,
			Size:      cfg.Format.IndentSize,
		},
		Ruleset: cfg.Format.Ruleset,
		Reorder: cfg.Format.Reorder,
		Safe:    cfg.Format.SafeMode,
	}
	return formatter, opts, nil
}

// formatFile formats one file and, unless running in check or diff mode,
// rewrites it atomically. A file modified externally between read and
// write is left untouched and reported as an error.
func formatFile(
	ctx context.Context,
	path, workDir string,
	formatter *format.Formatter,
	opts format.Options,
	flags *formatFlags,
) runner.FileOutcome {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return runner.FileOutcome{Error: err}
	}

	formatted, err := formatter.Format(ctx, content, opts)
	if err != nil {
		return runner.FileOutcome{Error: err}
	}

	outcome := runner.FileOutcome{Changed: !bytes.Equal(content, formatted)}

	if flags.diff {
		outcome.Output = []byte(textedit.Unified(relativeTo(workDir, path), content, formatted))
		return outcome
	}
	outcome.Output = formatted

	if !outcome.Changed || flags.check {
		return outcome
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return runner.FileOutcome{Error: err}
	}
	if modified {
		return runner.FileOutcome{Error: fmt.Errorf("file changed while formatting, not writing")}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, formatted, info.Mode)
	if err != nil {
		return runner.FileOutcome{Error: err}
	}
	outcome.Written = written
	return outcome
}

// formatStdin formats a single source read from stdin and writes the
// result to out.
func formatStdin(ctx context.Context, out io.Writer, formatter *format.Formatter, opts format.Options) error {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	formatted, err := formatter.Format(ctx, source, opts)
	if err != nil {
		return err
	}

	if _, err := out.Write(formatted); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

// relativeTo renders path relative to base when possible.
func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
