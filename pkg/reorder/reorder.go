// Package reorder rearranges top-level GDScript declarations into the order
// prescribed by the official GDScript style guide: class annotations, then
// class_name, extends, the class docstring, signals, enums, constants,
// variables grouped by flavor, methods grouped by kind, and inner classes
// last.
//
// Reordering runs on already formatted text. Docstrings, comments and
// annotations written above a declaration move together with it; syntax the
// package does not recognize is preserved verbatim rather than dropped.
package reorder

import (
	"errors"
	"slices"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/gdscript"
)

// ErrSyntaxErrors is returned when the source contains parse errors.
// Reordering a broken tree could move code into or out of the damaged
// region, so the pass refuses to run.
var ErrSyntaxErrors = errors.New("source contains syntax errors")

var elementQuery = gdscript.MustQuery(`(source (_) @element)`)

// Source returns content with its top-level declarations reordered.
func Source(tree *tree_sitter.Tree, content []byte) ([]byte, error) {
	root := tree.RootNode()
	if root.HasError() {
		return nil, ErrSyntaxErrors
	}
	tokens := extract(root, content)
	slices.SortStableFunc(tokens, compare)
	return rebuild(tokens), nil
}

type rawElement struct {
	node tree_sitter.Node
	text string
}

func topLevelElements(root *tree_sitter.Node, content []byte) []rawElement {
	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	var out []rawElement
	matches := cursor.Matches(elementQuery, root, content)
	for m := matches.Next(); m != nil; m = matches.Next() {
		for _, c := range m.Captures {
			out = append(out, rawElement{node: c.Node, text: c.Node.Utf8Text(content)})
		}
	}
	return out
}

// extract walks the top-level nodes in document order, attaching pending
// comments and annotations to the declaration that follows them.
func extract(root *tree_sitter.Node, content []byte) []token {
	all := topLevelElements(root, content)

	// ## comments appearing before any body declaration form the class
	// docstring. They are emitted as their own token right after extends
	// instead of being attached to whatever happens to follow them. Claimed
	// comments are tracked by position, not text, so a body comment that
	// merely repeats a docstring line stays with its own declaration.
	var docstringComments []string
	claimed := make(map[uint]struct{})
	pastHeader := false
	for _, el := range all {
		switch el.node.Kind() {
		case "comment":
			if !pastHeader && isDocComment(el.text) {
				docstringComments = append(docstringComments, el.text)
				claimed[el.node.StartByte()] = struct{}{}
			}
		case "class_name_statement", "extends_statement", "annotation":
		default:
			pastHeader = true
		}
	}

	var tokens []token
	var pendingComments, pendingAnnotations []string
	foundExtends := false
	docstringAttached := false

	// A trailing #endregion is attached to the most recent function that
	// opened a region, so the pair travels together. Regions spanning
	// several functions cannot be reordered faithfully; only the common
	// one-function case is handled.
	var regionEnd string
	hasRegionEnd := false

	appendDocstring := func() {
		if docstringAttached || len(docstringComments) == 0 {
			return
		}
		text := strings.Join(docstringComments, "\n")
		tokens = append(tokens, token{kind: kindDocstring, name: text, text: text})
		docstringAttached = true
	}

	for _, el := range all {
		node := el.node
		text := el.text

		switch node.Kind() {
		case "comment":
			// Class docstring comments were claimed above.
			if _, ok := claimed[node.StartByte()]; ok {
				continue
			}
			pendingComments = append(pendingComments, text)

		case "region_start":
			pendingComments = append(pendingComments, text)

		case "region_end":
			regionEnd = text
			hasRegionEnd = true

		case "annotation":
			if isClassAnnotation(text) {
				tokens = append(tokens, token{kind: kindClassAnnotation, name: text, text: text})
			} else {
				pendingAnnotations = append(pendingAnnotations, text)
			}

		case "class_name_statement":
			tok := classify(&node, text)
			tok.attached = pendingComments
			tokens = append(tokens, tok)
			pendingComments, pendingAnnotations = nil, nil

		case "extends_statement":
			foundExtends = true
			tok := classify(&node, text)
			tok.attached = pendingComments
			tokens = append(tokens, tok)
			pendingComments, pendingAnnotations = nil, nil
			appendDocstring()

		default:
			// Files without an extends statement still get their
			// docstring emitted before the first declaration.
			if !foundExtends {
				appendDocstring()
			}
			if hasRegionEnd {
				attachRegionEnd(tokens, regionEnd)
				hasRegionEnd = false
			}

			tok := classify(&node, text)
			tok.attached = append(slices.Clone(pendingAnnotations), pendingComments...)
			tokens = append(tokens, tok)
			pendingComments, pendingAnnotations = nil, nil
		}
	}

	return tokens
}

// attachRegionEnd hangs an #endregion comment off the most recent method
// whose attached comments opened a region.
func attachRegionEnd(tokens []token, comment string) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].kind != kindMethod {
			continue
		}
		for _, c := range tokens[i].attached {
			if strings.HasPrefix(strings.TrimSpace(c), "#region") {
				tokens[i].trailing = append(tokens[i].trailing, comment)
				return
			}
		}
	}
}

func isDocComment(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t"), "##")
}

// rebuild assembles the sorted tokens back into source text. Tokens in the
// same group sit directly below each other; crossing into a new group adds
// a blank line, and methods and inner classes always get two.
func rebuild(tokens []token) []byte {
	var b strings.Builder
	var prev group
	havePrev := false

	for _, tok := range tokens {
		g := tok.group()
		isFunc := tok.kind == kindMethod
		isInner := tok.kind == kindInnerClass

		needsSpacing := b.Len() > 0 && havePrev &&
			(prev != g || isFunc || (isInner && prev == groupInnerClass))
		if needsSpacing {
			if isFunc || (isInner && (prev == groupMethod || prev == groupInnerClass)) {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}

		for _, c := range tok.attached {
			writeLine(&b, c)
		}
		writeLine(&b, tok.text)
		for _, c := range tok.trailing {
			writeLine(&b, c)
		}

		prev = g
		havePrev = true
	}

	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func writeLine(b *strings.Builder, text string) {
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
}
