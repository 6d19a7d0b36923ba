package rules

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/lint"
)

func nodeText(node *tree_sitter.Node, source []byte) string {
	return node.Utf8Text(source)
}

func issueAt(node *tree_sitter.Node, rule string, severity lint.Severity, message string) lint.Issue {
	line, column := lint.Position(node)
	return lint.Issue{
		Line:     line,
		Column:   column,
		Rule:     rule,
		Severity: severity,
		Message:  message,
	}
}

// childNodes returns every child of node, anonymous tokens included.
func childNodes(node *tree_sitter.Node) []tree_sitter.Node {
	count := node.ChildCount()
	children := make([]tree_sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		if child := node.Child(i); child != nil {
			children = append(children, *child)
		}
	}
	return children
}

// parameterName extracts the identifier from a parameter node, which may be
// a bare identifier or a typed/default parameter wrapping one.
func parameterName(node *tree_sitter.Node, source []byte) string {
	if node.Kind() == "identifier" {
		return nodeText(node, source)
	}
	if child := node.Child(0); child != nil {
		return nodeText(child, source)
	}
	return ""
}

func isParameterKind(kind string) bool {
	switch kind {
	case "identifier", "typed_parameter", "default_parameter", "typed_default_parameter":
		return true
	}
	return false
}
