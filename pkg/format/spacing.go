package format

import (
	"bytes"
	"slices"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/gdscript"
	"github.com/l0ser140/GDScript-formatter/pkg/textedit"
)

// wantBlankLines is the number of blank lines separating a definition from
// the declaration above it, at class body level and at the top level alike.
const wantBlankLines = 2

var (
	// defBeforeQuery matches a function, constructor or class definition
	// following another declaration, with any run of comments and
	// annotations in between.
	defBeforeQuery = gdscript.MustQuery(`(
		[
			(variable_statement)
			(function_definition)
			(constructor_definition)
			(class_definition)
			(signal_statement)
			(const_statement)
			(enum_definition)
		] @first
		.
		[
			(comment)
			(annotation)
		]* @trivia
		.
		[
			(function_definition)
			(constructor_definition)
			(class_definition)
		] @second
	)`)

	// defAfterQuery matches a simple declaration directly following a
	// definition.
	defAfterQuery = gdscript.MustQuery(`(
		[
			(function_definition)
			(constructor_definition)
			(class_definition)
		] @first
		.
		[
			(variable_statement)
			(signal_statement)
			(const_statement)
			(enum_definition)
		] @second
	)`)
)

// applySpacing tops up the blank lines around definitions to wantBlankLines.
// Existing blank lines are never removed, so the pass is idempotent: a
// second run over its own output finds nothing to insert.
func applySpacing(doc *textedit.Document) error {
	offsets := spacingOffsets(doc)
	if len(offsets) == 0 {
		return nil
	}

	// Descending offsets: each insertion only moves text after itself, so
	// every remaining offset stays valid against the growing buffer.
	slices.SortFunc(offsets, func(a, b uint) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})

	edited := false
	for _, offset := range offsets {
		text, ok := missingBlankLines(doc.Content(), offset)
		if !ok {
			continue
		}
		doc.Splice(textedit.Insert(offset, doc.PointAt(offset), text), text)
		edited = true
	}
	if !edited {
		return nil
	}
	return doc.Reparse()
}

// spacingOffsets collects the candidate insertion offsets from both queries.
// Every offset is at the start of a physical line, so insertions land before
// indentation rather than inside it.
func spacingOffsets(doc *textedit.Document) []uint {
	content := doc.Content()
	root := doc.Root()

	seen := make(map[uint]struct{})
	var offsets []uint
	add := func(offset uint) {
		if _, dup := seen[offset]; !dup {
			seen[offset] = struct{}{}
			offsets = append(offsets, offset)
		}
	}

	names := defBeforeQuery.CaptureNames()
	cursor := tree_sitter.NewQueryCursor()
	matches := cursor.Matches(defBeforeQuery, root, content)
	for m := matches.Next(); m != nil; m = matches.Next() {
		var first, second *tree_sitter.Node
		var trivia []tree_sitter.Node
		for _, c := range m.Captures {
			node := c.Node
			switch names[c.Index] {
			case "first":
				first = &node
			case "trivia":
				trivia = append(trivia, node)
			case "second":
				second = &node
			}
		}
		if first == nil || second == nil {
			continue
		}
		add(insertionPoint(content, first, trivia, second))
	}
	cursor.Close()

	names = defAfterQuery.CaptureNames()
	cursor = tree_sitter.NewQueryCursor()
	matches = cursor.Matches(defAfterQuery, root, content)
	for m := matches.Next(); m != nil; m = matches.Next() {
		for _, c := range m.Captures {
			if names[c.Index] != "second" {
				continue
			}
			node := c.Node
			add(lineStart(content, node.StartByte()))
		}
	}
	cursor.Close()

	return offsets
}

// insertionPoint decides where the blank lines go for a first/trivia/second
// match. When a contiguous doc-comment block sits on the lines directly
// above the second declaration, the block moves down with it and spacing
// goes above the block. In every other case, including trailing comments on
// the first declaration's line and annotation runs, spacing goes on the line
// right after the first declaration.
func insertionPoint(content []byte, first *tree_sitter.Node, trivia []tree_sitter.Node, second *tree_sitter.Node) uint {
	if start, ok := docBlockStart(content, trivia, second); ok {
		return lineStart(content, start)
	}
	return nextLineStart(content, first.EndByte())
}

// docBlockStart finds the first comment of the contiguous doc-comment block
// ending on the line directly above second. ok is false when the last
// trivia node is not such a doc comment.
func docBlockStart(content []byte, trivia []tree_sitter.Node, second *tree_sitter.Node) (uint, bool) {
	if len(trivia) == 0 {
		return 0, false
	}
	last := trivia[len(trivia)-1]
	secondRow := second.StartPosition().Row
	if !isDocComment(content, &last) || secondRow == 0 || last.StartPosition().Row != secondRow-1 {
		return 0, false
	}

	start := last.StartByte()
	row := last.StartPosition().Row
	for i := len(trivia) - 2; i >= 0; i-- {
		prev := trivia[i]
		if !isDocComment(content, &prev) || row == 0 || prev.StartPosition().Row != row-1 {
			break
		}
		start = prev.StartByte()
		row = prev.StartPosition().Row
	}
	return start, true
}

// isDocComment reports whether node is a ##-prefixed comment.
func isDocComment(content []byte, node *tree_sitter.Node) bool {
	if node.Kind() != "comment" {
		return false
	}
	return bytes.HasPrefix(content[node.StartByte():node.EndByte()], []byte("##"))
}

// missingBlankLines counts the blank lines already present before the line
// starting at offset and returns the newlines needed to reach
// wantBlankLines. ok is false when nothing needs inserting or when offset
// is at the start of the file.
func missingBlankLines(content []byte, offset uint) ([]byte, bool) {
	if offset == 0 || offset > uint(len(content)) {
		return nil, false
	}

	// Count the newline run ending at offset. The first newline terminates
	// the previous declaration's line; every further one is a blank line.
	run := uint(0)
	for run < offset && content[offset-run-1] == '\n' {
		run++
	}
	if run == 0 {
		// Not at a line boundary; inserting here would split a line.
		return nil, false
	}

	need := wantBlankLines - int(run-1)
	if need <= 0 {
		return nil, false
	}
	return bytes.Repeat([]byte("\n"), need), true
}

func lineStart(content []byte, offset uint) uint {
	for offset > 0 && content[offset-1] != '\n' {
		offset--
	}
	return offset
}

func nextLineStart(content []byte, offset uint) uint {
	for offset < uint(len(content)) {
		if content[offset] == '\n' {
			return offset + 1
		}
		offset++
	}
	return uint(len(content))
}
