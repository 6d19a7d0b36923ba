package format

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Fingerprint is a reduced copy of a syntax tree: grammar ids and shape,
// without text or positions. Two fingerprints that are Equal describe
// programs with the same structure; formatting that only moves whitespace
// and comments around keeps the fingerprint intact.
//
// Kind is carried for diagnostics and for the normalization rules, which
// select nodes by kind name. Equality is decided on grammar ids alone.
type Fingerprint struct {
	Kind      string
	GrammarID uint16
	Children  []*Fingerprint
}

// NewFingerprint builds the fingerprint of the subtree rooted at node,
// covering all children, anonymous tokens included. Anonymous tokens must be
// part of the shape: dropping or duplicating a keyword or operator token is
// exactly the kind of engine defect safe mode exists to catch.
func NewFingerprint(node *tree_sitter.Node) *Fingerprint {
	count := node.ChildCount()
	fp := &Fingerprint{
		Kind:      node.Kind(),
		GrammarID: node.GrammarId(),
	}
	if count == 0 {
		return fp
	}
	fp.Children = make([]*Fingerprint, 0, count)
	for i := uint(0); i < count; i++ {
		if child := node.Child(i); child != nil {
			fp.Children = append(fp.Children, NewFingerprint(child))
		}
	}
	return fp
}

// Equal walks both fingerprints depth-first and fails on the first
// difference in grammar id or child count. No partial matching is
// attempted: a single divergence means the program structure changed.
func (f *Fingerprint) Equal(other *Fingerprint) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.GrammarID != other.GrammarID {
		return false
	}
	if len(f.Children) != len(other.Children) {
		return false
	}
	for i := range f.Children {
		if !f.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the fingerprint as an s-expression of node kinds. Used in
// diagnostics only.
func (f *Fingerprint) String() string {
	var b strings.Builder
	f.write(&b)
	return b.String()
}

func (f *Fingerprint) write(b *strings.Builder) {
	if len(f.Children) == 0 {
		b.WriteString(f.Kind)
		return
	}
	b.WriteByte('(')
	b.WriteString(f.Kind)
	for _, child := range f.Children {
		b.WriteByte(' ')
		child.write(b)
	}
	b.WriteByte(')')
}

// A NormalizationRule rewrites an input fingerprint to pre-apply a
// structural change the pipeline introduces on purpose, so that the
// comparison against the output tree only trips on unintended changes.
//
// The rule set is a whitelist of tolerated deltas, not a general
// equivalence relation. New engine behaviors may require new rules; each
// rule therefore carries a versioned name so additions and revisions stay
// visible in diagnostics and tests.
type NormalizationRule struct {
	// Name identifies the rule, suffixed with its revision.
	Name string

	// Apply rewrites the fingerprint in place.
	Apply func(*Fingerprint)
}

var normalizationRules = []NormalizationRule{
	{Name: "annotation-adoption/v1", Apply: adoptAnnotations},
	{Name: "semicolon-removal/v1", Apply: dropSemicolons},
}

// Normalize applies every normalization rule to the fingerprint of the
// original input, in order, and returns it. The output fingerprint is never
// normalized: rules model the forward transformation only.
func Normalize(fp *Fingerprint) *Fingerprint {
	for _, rule := range normalizationRules {
		rule.Apply(fp)
	}
	return fp
}

// adoptAnnotations moves annotation siblings into the variable statement
// that directly follows them. The engine may pull a leading annotation onto
// the declaration's own line, and after reparse the annotation is a child
// of the statement node instead of a standalone sibling.
func adoptAnnotations(fp *Fingerprint) {
	var children []*Fingerprint
	var pending []*Fingerprint
	for _, child := range fp.Children {
		switch {
		case child.Kind == "annotation":
			pending = append(pending, child)
		case child.Kind == "variable_statement" && len(pending) > 0:
			child.Children = append(pending, child.Children...)
			children = append(children, child)
			pending = nil
		default:
			children = append(children, pending...)
			children = append(children, child)
			pending = nil
		}
	}
	children = append(children, pending...)
	fp.Children = children

	for _, child := range fp.Children {
		adoptAnnotations(child)
	}
}

// dropSemicolons removes semicolon tokens from the fingerprint.
// Postprocessing strips statement-terminating semicolons from the text, so
// the output tree legitimately has fewer of them than the input.
func dropSemicolons(fp *Fingerprint) {
	children := fp.Children[:0]
	for _, child := range fp.Children {
		if child.Kind == ";" {
			continue
		}
		dropSemicolons(child)
		children = append(children, child)
	}
	fp.Children = children
}
