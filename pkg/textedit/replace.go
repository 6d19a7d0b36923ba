package textedit

import (
	"bytes"
	"regexp"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/gdscript"
)

// ReplaceAll applies a regex replacement to the document, skipping any match
// that starts inside a string literal so that formatting passes never touch
// string contents. The template may reference capture groups with $1, $name.
//
// Matches are discovered against the unmodified buffer in one left-to-right
// scan. Position deltas for each surviving match are computed by walking the
// unedited gap between the previous match and the current one, so they stay
// correct even though earlier matches in the same pass change the buffer.
// The recorded edits are then replayed onto the tree in descending offset
// order and the document is reparsed incrementally.
//
// A match of zero width is ignored: an empty replacement target has no
// meaning here and guarding against it prevents pathological patterns from
// looping forever.
//
// Returns the number of replacements applied.
func (d *Document) ReplaceAll(re *regexp.Regexp, template []byte) (int, error) {
	matches := re.FindAllSubmatchIndex(d.content, -1)
	if len(matches) == 0 {
		return 0, nil
	}

	root := d.Root()

	var out bytes.Buffer
	out.Grow(len(d.content))

	var edits []Edit
	prev := 0
	cursor := d.PointAt(0)
	cursorByte := uint(0)

	for _, m := range matches {
		start, end := uint(m[0]), uint(m[1])
		if start == end {
			continue
		}
		if insideString(root, start) {
			continue
		}

		replacement := re.Expand(nil, template, d.content, m)

		// Advance the running cursor over the untouched original text
		// between the previous match and this one, then over the match.
		startPos := advancePoint(cursor, d.content[cursorByte:start])
		oldEndPos := advancePoint(startPos, d.content[start:end])
		newEndPos := advancePoint(startPos, replacement)
		cursor = oldEndPos
		cursorByte = end

		out.Write(d.content[prev:m[0]])
		out.Write(replacement)
		prev = m[1]

		edits = append(edits, Edit{
			StartByte:      start,
			OldEndByte:     end,
			NewEndByte:     start + uint(len(replacement)),
			StartPosition:  startPos,
			OldEndPosition: oldEndPos,
			NewEndPosition: newEndPos,
		})
	}

	if len(edits) == 0 {
		return 0, nil
	}
	out.Write(d.content[prev:])
	d.content = out.Bytes()

	// Descending order: applying a later edit first leaves every earlier
	// edit's pre-edit coordinates intact.
	for i := len(edits) - 1; i >= 0; i-- {
		d.tree.Edit(edits[i].InputEdit())
	}

	if err := d.Reparse(); err != nil {
		return 0, err
	}
	return len(edits), nil
}

// insideString reports whether the byte offset falls inside a string node.
// A match that merely starts inside a string is treated as in-string: this is
// a deliberate approximation that errs on the side of leaving text alone.
func insideString(root *tree_sitter.Node, offset uint) bool {
	return gdscript.InsideKind(root, offset, "string")
}
