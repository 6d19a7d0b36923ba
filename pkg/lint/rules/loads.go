package rules

import (
	"fmt"
	"slices"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/lint"
)

// DuplicatedLoad flags resources loaded more than once in a file. The rule
// collects every load() and preload() path during the tree walk and
// reports the duplicates from Finalize.
type DuplicatedLoad struct {
	lint.BaseRule
	loadPaths map[string][]lint.Issue
}

// NewDuplicatedLoad creates the duplicated-load rule.
func NewDuplicatedLoad() *DuplicatedLoad {
	return &DuplicatedLoad{
		BaseRule:  lint.NewBaseRule("duplicated-load"),
		loadPaths: make(map[string][]lint.Issue),
	}
}

// NodeKinds implements lint.Rule.
func (r *DuplicatedLoad) NodeKinds() []string {
	return []string{"call"}
}

// CheckNode implements lint.Rule.
func (r *DuplicatedLoad) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	fn := node.Child(0)
	if fn == nil {
		return nil
	}
	switch nodeText(fn, source) {
	case "load", "preload":
	default:
		return nil
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for _, arg := range childNodes(args) {
		if arg.Kind() != "string" {
			continue
		}
		path := nodeText(&arg, source)
		r.loadPaths[path] = append(r.loadPaths[path],
			issueAt(&arg, r.Name(), lint.SeverityWarning,
				fmt.Sprintf("Duplicated load of %s. Consider extracting to a constant.", path)))
	}
	return nil
}

// Finalize implements lint.Rule.
func (r *DuplicatedLoad) Finalize(_ []byte) []lint.Issue {
	paths := make([]string, 0, len(r.loadPaths))
	for path := range r.loadPaths {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	var issues []lint.Issue
	for _, path := range paths {
		if occurrences := r.loadPaths[path]; len(occurrences) > 1 {
			issues = append(issues, occurrences...)
		}
	}
	clear(r.loadPaths)
	return issues
}

// MaxLineLength flags lines wider than the configured limit. Width is
// counted in display columns with tabs expanded to four.
type MaxLineLength struct {
	lint.BaseRule
	limit int
}

// NewMaxLineLength creates the max-line-length rule.
func NewMaxLineLength(limit int) *MaxLineLength {
	return &MaxLineLength{
		BaseRule: lint.NewBaseRule("max-line-length"),
		limit:    limit,
	}
}

// CheckSource implements lint.Rule.
func (r *MaxLineLength) CheckSource(source []byte) []lint.Issue {
	var issues []lint.Issue
	for i, line := range strings.Split(string(source), "\n") {
		width := 0
		for _, ch := range line {
			if ch == '\t' {
				width += 4
			} else {
				width++
			}
		}
		if width <= r.limit {
			continue
		}
		issues = append(issues, lint.Issue{
			Line:     i + 1,
			Column:   r.limit + 1,
			Rule:     r.Name(),
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("Line is too long. Found %d characters, maximum allowed is %d", width, r.limit),
		})
	}
	return issues
}
