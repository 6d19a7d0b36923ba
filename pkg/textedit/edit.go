// Package textedit keeps a mutable source buffer and its tree-sitter parse
// tree synchronized while incremental, pattern-based edits are applied.
//
// Every mutation is expressed as an Edit: a contiguous byte-range replacement
// together with the positional delta tree-sitter needs to shift node
// coordinates without a full reparse. Edits are computed against the
// unmodified buffer and replayed onto the tree in descending offset order, so
// an edit never invalidates the offsets of edits that precede it in the file.
package textedit

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Edit is a single contiguous text replacement plus the position bookkeeping
// required to keep a parse tree's node coordinates valid after the edit.
type Edit struct {
	// StartByte is where the replaced range begins, in pre-edit coordinates.
	StartByte uint

	// OldEndByte is where the replaced range ends (exclusive), pre-edit.
	OldEndByte uint

	// NewEndByte is where the replacement ends (exclusive), post-edit.
	NewEndByte uint

	// StartPosition is the row/column of StartByte.
	StartPosition tree_sitter.Point

	// OldEndPosition is the row/column of OldEndByte, pre-edit.
	OldEndPosition tree_sitter.Point

	// NewEndPosition is the row/column of NewEndByte, post-edit.
	NewEndPosition tree_sitter.Point
}

// Insert builds an Edit that inserts text at the given offset and position.
func Insert(at uint, atPos tree_sitter.Point, text []byte) Edit {
	return Edit{
		StartByte:      at,
		OldEndByte:     at,
		NewEndByte:     at + uint(len(text)),
		StartPosition:  atPos,
		OldEndPosition: atPos,
		NewEndPosition: advancePoint(atPos, text),
	}
}

// InputEdit converts the edit to the tree-sitter representation.
func (e Edit) InputEdit() *tree_sitter.InputEdit {
	return &tree_sitter.InputEdit{
		StartByte:      e.StartByte,
		OldEndByte:     e.OldEndByte,
		NewEndByte:     e.NewEndByte,
		StartPosition:  e.StartPosition,
		OldEndPosition: e.OldEndPosition,
		NewEndPosition: e.NewEndPosition,
	}
}

// advancePoint walks text byte by byte from p: a newline moves to the start
// of the next row, any other byte advances the column. Columns are byte
// counts, matching tree-sitter's convention.
func advancePoint(p tree_sitter.Point, text []byte) tree_sitter.Point {
	for _, b := range text {
		if b == '\n' {
			p.Row++
			p.Column = 0
		} else {
			p.Column++
		}
	}
	return p
}
