// Package gdscript wraps the tree-sitter runtime with the GDScript grammar.
// It provides the parser used by every pass in the formatter and linter, plus
// small helpers for querying and inspecting concrete syntax trees.
package gdscript

import (
	"errors"
	"fmt"
	"sync"

	tree_sitter_gdscript "github.com/prestonknopp/tree-sitter-gdscript/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrParse indicates the underlying parser failed catastrophically. Syntax
// errors in the input do NOT produce this error: the grammar tolerates
// malformed input and returns a best-effort tree containing error nodes.
var ErrParse = errors.New("gdscript: parser failure")

//nolint:gochecknoglobals // The grammar is immutable and shared process-wide.
var (
	language     *tree_sitter.Language
	languageOnce sync.Once
)

// Language returns the GDScript tree-sitter language. The language is
// constructed once and shared; it is safe for concurrent use.
func Language() *tree_sitter.Language {
	languageOnce.Do(func() {
		language = tree_sitter.NewLanguage(tree_sitter_gdscript.Language())
	})
	return language
}

// Parser parses GDScript source into concrete syntax trees. A Parser is not
// safe for concurrent use; create one per goroutine (they are cheap).
type Parser struct {
	ts *tree_sitter.Parser
}

// NewParser creates a parser configured for the GDScript grammar.
func NewParser() *Parser {
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(Language()); err != nil {
		// The bundled grammar and runtime are version-matched; failure here
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("gdscript: set language: %v", err))
	}
	return &Parser{ts: p}
}

// Parse parses content into a syntax tree. When oldTree is non-nil the parse
// is incremental: tree-sitter reuses unchanged subtrees, which is cheap after
// small edits. The caller owns the returned tree and must Close it.
func (p *Parser) Parse(content []byte, oldTree *tree_sitter.Tree) (*tree_sitter.Tree, error) {
	tree := p.ts.Parse(content, oldTree)
	if tree == nil {
		return nil, ErrParse
	}
	return tree, nil
}

// Close releases the underlying parser resources.
func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
		p.ts = nil
	}
}

// MustQuery compiles a tree-sitter query against the GDScript grammar.
// The built-in query patterns are compile-time constants, so a malformed
// pattern is a defect in this program and aborts loudly.
func MustQuery(pattern string) *tree_sitter.Query {
	query, err := tree_sitter.NewQuery(Language(), pattern)
	if err != nil {
		panic(fmt.Sprintf("gdscript: invalid query %q: %v", pattern, err))
	}
	return query
}
