// Package lint provides the rule engine, issue model, and registry for
// linting GDScript source files.
package lint

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Severity indicates the importance of an issue.
type Severity int

const (
	// SeverityWarning flags code that is suspicious but valid.
	SeverityWarning Severity = iota

	// SeverityError flags violations of the GDScript style guide.
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue represents a single lint finding in a file.
type Issue struct {
	// Line is the 1-based line number where the issue starts.
	Line int

	// Column is the 1-based column number where the issue starts.
	Column int

	// Rule is the name of the rule that produced this issue.
	Rule string

	// Severity indicates the importance of the issue.
	Severity Severity

	// Message is the human-readable description of the issue.
	Message string
}

// Rule defines the interface all lint rules implement. A rule instance
// lives for one lint run over one file and may accumulate state across its
// CheckNode calls; Finalize is where such state turns into issues.
type Rule interface {
	// Name returns the rule's identifier (e.g. "unnecessary-pass").
	Name() string

	// NodeKinds returns the syntax node kinds the rule wants to inspect.
	// The engine builds a kind-to-rule dispatch table from these so the
	// tree is walked only once regardless of how many rules run. Rules
	// that work on the source text alone return nil.
	NodeKinds() []string

	// CheckSource runs once, before the tree walk, for rules that operate
	// directly on the source text.
	CheckSource(source []byte) []Issue

	// CheckNode runs for every node whose kind appears in NodeKinds.
	CheckNode(node *tree_sitter.Node, source []byte) []Issue

	// Finalize runs once after the tree walk, for rules that collect data
	// during traversal and report afterwards.
	Finalize(source []byte) []Issue
}

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
type BaseRule struct {
	name string
}

// NewBaseRule creates a BaseRule with the given rule name.
func NewBaseRule(name string) BaseRule {
	return BaseRule{name: name}
}

// Name returns the rule's identifier.
func (r *BaseRule) Name() string {
	return r.name
}

// NodeKinds returns no kinds. Override for tree-walking rules.
func (r *BaseRule) NodeKinds() []string {
	return nil
}

// CheckSource returns no issues. Override for source-text rules.
func (r *BaseRule) CheckSource(_ []byte) []Issue {
	return nil
}

// CheckNode returns no issues. Override for tree-walking rules.
func (r *BaseRule) CheckNode(_ *tree_sitter.Node, _ []byte) []Issue {
	return nil
}

// Finalize returns no issues. Override for accumulating rules.
func (r *BaseRule) Finalize(_ []byte) []Issue {
	return nil
}

// Position returns the 1-based line and column of a node's start.
func Position(node *tree_sitter.Node) (int, int) {
	p := node.StartPosition()
	return int(p.Row) + 1, int(p.Column) + 1
}
