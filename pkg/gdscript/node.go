package gdscript

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// InsideKind reports whether the given byte offset falls inside a node of the
// given kind. The check walks from the smallest node covering the offset up
// to the root, so offsets inside nested children (e.g. the content of a
// string literal) are still attributed to the enclosing node.
func InsideKind(root *tree_sitter.Node, offset uint, kind string) bool {
	node := root.NamedDescendantForByteRange(offset, offset)
	for node != nil {
		if node.Kind() == kind {
			return true
		}
		node = node.Parent()
	}
	return false
}
