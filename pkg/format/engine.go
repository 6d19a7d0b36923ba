package format

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Indent describes the indentation policy handed to the engine.
type Indent struct {
	// UseSpaces selects spaces over tabs.
	UseSpaces bool

	// Size is the number of spaces per level when UseSpaces is set.
	Size int
}

// String returns the literal indentation unit ("\t" or N spaces).
func (i Indent) String() string {
	if i.UseSpaces {
		return strings.Repeat(" ", i.Size)
	}
	return "\t"
}

// Engine is the external structural pretty-printer. It receives the current
// parse tree and buffer together with a ruleset identifier (the name of the
// formatting query set to apply) and the indentation policy, and returns the
// fully formatted text.
//
// Engine errors are treated as non-retryable and surfaced to the caller
// wrapped in ErrEngine.
type Engine interface {
	Format(ctx context.Context, tree *tree_sitter.Tree, source []byte, ruleset string, indent Indent) ([]byte, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, tree *tree_sitter.Tree, source []byte, ruleset string, indent Indent) ([]byte, error)

// Format calls f.
func (f EngineFunc) Format(ctx context.Context, tree *tree_sitter.Tree, source []byte, ruleset string, indent Indent) ([]byte, error) {
	return f(ctx, tree, source, ruleset, indent)
}

// ExecEngine runs an external formatter process, feeding the source on stdin
// and reading the formatted text from stdout. The argument list may contain
// the placeholders {ruleset}, {indent-size} and {indent-unit}, which are
// substituted per invocation.
type ExecEngine struct {
	// Path is the formatter executable.
	Path string

	// Args are the command-line arguments, with optional placeholders.
	Args []string
}

// Format implements Engine by invoking the configured command.
func (e *ExecEngine) Format(ctx context.Context, _ *tree_sitter.Tree, source []byte, ruleset string, indent Indent) ([]byte, error) {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		a = strings.ReplaceAll(a, "{ruleset}", ruleset)
		a = strings.ReplaceAll(a, "{indent-size}", strconv.Itoa(indent.Size))
		unit := "tabs"
		if indent.UseSpaces {
			unit = "spaces"
		}
		args[i] = strings.ReplaceAll(a, "{indent-unit}", unit)
	}

	cmd := exec.CommandContext(ctx, e.Path, args...)
	cmd.Stdin = bytes.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", e.Path, err)
		}
		return nil, fmt.Errorf("%s: %w: %s", e.Path, err, msg)
	}
	return stdout.Bytes(), nil
}
