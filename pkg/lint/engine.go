package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/gdscript"
)

// ErrUnknownRule is returned when a configured rule name does not match any
// registered rule.
var ErrUnknownRule = errors.New("unknown lint rule")

// Config controls a lint run.
type Config struct {
	// MaxLineLength is the display width limit for the max-line-length
	// rule. Tabs count as four columns.
	MaxLineLength int

	// Disabled lists rule names that should not run.
	Disabled []string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{MaxLineLength: 100}
}

// Linter runs the registered rules over GDScript source. A Linter is
// immutable after construction and safe for concurrent use; every Lint call
// builds its own parser, tree, and rule instances.
type Linter struct {
	cfg      Config
	registry *Registry
}

// New creates a Linter backed by the default rule registry.
func New(cfg Config) (*Linter, error) {
	return NewWithRegistry(cfg, DefaultRegistry)
}

// NewWithRegistry creates a Linter backed by the given registry. Disabled
// rule names are validated here so typos surface immediately rather than
// silently running the rule they meant to turn off.
func NewWithRegistry(cfg Config, registry *Registry) (*Linter, error) {
	for _, name := range cfg.Disabled {
		if !registry.Has(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
	}
	return &Linter{cfg: cfg, registry: registry}, nil
}

// RuleNames returns the names of all rules this linter knows about.
func (l *Linter) RuleNames() []string {
	return l.registry.Names()
}

// Lint checks source and returns all issues sorted by position. Syntax
// errors in the source do not fail the run; rules simply see the
// best-effort tree the grammar produced.
func (l *Linter) Lint(ctx context.Context, source []byte) ([]Issue, error) {
	parser := gdscript.NewParser()
	defer parser.Close()

	tree, err := parser.Parse(source, nil)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	ignores := parseIgnoreDirectives(source)
	rules := l.registry.Build(l.cfg)

	// Invert each rule's interest set into a kind-to-rule table so the
	// tree is traversed exactly once no matter how many rules run.
	dispatch := make(map[string][]int)
	var sourceOnly []int
	for i, rule := range rules {
		kinds := rule.NodeKinds()
		if len(kinds) == 0 {
			sourceOnly = append(sourceOnly, i)
			continue
		}
		for _, kind := range kinds {
			dispatch[kind] = append(dispatch[kind], i)
		}
	}

	var issues []Issue
	report := func(found []Issue) {
		for _, issue := range found {
			if !ignores.allows(issue.Line, issue.Rule) {
				issues = append(issues, issue)
			}
		}
	}

	for _, i := range sourceOnly {
		report(rules[i].CheckSource(source))
	}

	if err := walk(ctx, tree.RootNode(), func(node *tree_sitter.Node) {
		for _, i := range dispatch[node.Kind()] {
			report(rules[i].CheckNode(node, source))
		}
	}); err != nil {
		return nil, err
	}

	for _, rule := range rules {
		report(rule.Finalize(source))
	}

	// Without this, source-level rules like max-line-length would trail
	// behind all tree-walk findings in the output.
	slices.SortFunc(issues, func(a, b Issue) int {
		if c := cmp.Compare(a.Line, b.Line); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Column, b.Column); c != 0 {
			return c
		}
		return cmp.Compare(a.Rule, b.Rule)
	})
	return issues, nil
}

// walk visits every node depth-first using cursor navigation, which keeps
// the traversal iterative and immune to deep-tree stack growth.
func walk(ctx context.Context, root *tree_sitter.Node, visit func(*tree_sitter.Node)) error {
	cursor := root.Walk()
	defer cursor.Close()

	visited := 0
	for {
		if visited%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("linting cancelled: %w", err)
			}
		}
		visited++

		visit(cursor.Node())

		if cursor.GotoFirstChild() {
			continue
		}
		for !cursor.GotoNextSibling() {
			if !cursor.GotoParent() {
				return nil
			}
		}
	}
}
