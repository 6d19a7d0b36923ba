// Package format implements the GDScript formatting pipeline.
//
// The pipeline hands the heavy lifting to an external structural
// pretty-printing engine and concentrates on everything around it: regex
// preprocessing, tree-aware postprocessing (vertical spacing between
// declarations, whitespace cleanup), optional declaration reordering, and an
// opt-in structural safety check that aborts the whole operation if the
// output's syntax tree no longer matches the input's.
package format

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/l0ser140/GDScript-formatter/pkg/gdscript"
	"github.com/l0ser140/GDScript-formatter/pkg/reorder"
	"github.com/l0ser140/GDScript-formatter/pkg/textedit"
)

// Options controls a single formatting run.
type Options struct {
	// Indent is the indentation policy passed to the engine.
	Indent Indent

	// Ruleset names the formatting query set the engine should apply.
	Ruleset string

	// Reorder sorts top-level declarations per the GDScript style guide
	// after formatting. Reorder failures degrade to a warning.
	Reorder bool

	// Safe verifies that formatting did not change the program structure,
	// failing the whole operation if it did. The check compares declarations
	// positionally, so combining Safe with Reorder fails whenever reordering
	// actually moves something; the pair only passes on files already in
	// style-guide order.
	Safe bool
}

// DefaultOptions returns the options used when nothing is configured:
// tab indentation, no reordering, safety check off.
func DefaultOptions() Options {
	return Options{
		Indent:  Indent{UseSpaces: false, Size: 4},
		Ruleset: "gdscript",
	}
}

// Formatter formats GDScript source files. A Formatter is stateless apart
// from its collaborators and may be shared across goroutines; each call to
// Format owns its buffer and tree privately for the duration of the call.
type Formatter struct {
	// Engine is the external pretty-printer. Required.
	Engine Engine

	// Logger receives non-fatal warnings (reorder failures). Defaults to
	// the process-wide logger.
	Logger *log.Logger
}

// New creates a Formatter around the given engine.
func New(engine Engine) *Formatter {
	return &Formatter{Engine: engine}
}

// Format runs the full pipeline over source and returns the formatted text.
//
// Stage order is fixed: preprocessing edits, the external engine, a re-parse
// of the engine output, postprocessing edits plus the structural spacing
// pass, optional reordering, and finally the safe-mode structure check.
// On any error no partial output is returned.
func (f *Formatter) Format(ctx context.Context, source []byte, opts Options) ([]byte, error) {
	parser := gdscript.NewParser()
	defer parser.Close()

	doc, err := textedit.NewDocument(parser, source)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	// The reference fingerprint is taken before any mutation and
	// immediately normalized for the structural deltas the pipeline is
	// known to introduce on purpose.
	var want *Fingerprint
	if opts.Safe {
		want = Normalize(NewFingerprint(doc.Root()))
	}

	if err := preprocess(doc); err != nil {
		return nil, err
	}

	formatted, err := f.Engine.Format(ctx, doc.Tree(), doc.Content(), opts.Ruleset, opts.Indent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngine, err)
	}
	if !utf8.Valid(formatted) {
		return nil, ErrEncoding
	}

	out, err := textedit.NewDocument(parser, formatted)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if err := postprocess(out); err != nil {
		return nil, err
	}

	content := out.Content()
	if opts.Reorder {
		reordered, rerr := reorder.Source(out.Tree(), content)
		if rerr != nil {
			f.logger().Warn("code reordering failed, returning formatted code without reordering",
				"error", rerr)
		} else {
			content = reordered
		}
	}

	if opts.Safe {
		final, perr := parser.Parse(content, nil)
		if perr != nil {
			return nil, perr
		}
		defer final.Close()
		if got := NewFingerprint(final.RootNode()); !want.Equal(got) {
			return nil, ErrStructureChanged
		}
	}

	return content, nil
}

func (f *Formatter) logger() *log.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return log.Default()
}

// Preprocessing and postprocessing patterns. These are process-wide
// immutable constants; compilation failure is a defect in this file and
// aborts at init.
var (
	// extendsBlankLines matches an extends statement (bare identifier or
	// quoted path, no comment before it on the line) followed by one or
	// more blank lines.
	extendsBlankLines = regexp.MustCompile(`(?m)^([^#\n]*extends )([a-zA-Z0-9]+|".*?")\n\n*`)

	// whitespaceOnlyLine matches lines holding nothing but spaces or tabs.
	whitespaceOnlyLine = regexp.MustCompile(`(?m)^[ \t]+\n`)

	// danglingSemicolons matches runs of semicolons, possibly pushed onto
	// their own lines, at the end of a statement line.
	danglingSemicolons = regexp.MustCompile(`(?m)(\s*;)+$`)
)

// preprocess normalizes inputs the engine handles poorly. Collapsing blank
// lines directly after extends also saves the engine redundant work.
func preprocess(doc *textedit.Document) error {
	_, err := doc.ReplaceAll(extendsBlankLines, []byte("$1$2\n"))
	return err
}

// postprocess cleans up engine output: whitespace-only lines, semicolons
// stranded on their own lines, and vertical spacing between declarations.
func postprocess(doc *textedit.Document) error {
	if _, err := doc.ReplaceAll(whitespaceOnlyLine, []byte("\n")); err != nil {
		return err
	}
	if bytes.ContainsRune(doc.Content(), ';') {
		if _, err := doc.ReplaceAll(danglingSemicolons, []byte("")); err != nil {
			return err
		}
	}
	return applySpacing(doc)
}
