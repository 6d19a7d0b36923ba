package textedit

import (
	"bytes"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/gdscript"
)

// Document couples a source buffer with its parse tree and the parser that
// produced it. All mutations go through the Document so that at every stage
// boundary the buffer and the tree describe the same text.
//
// A Document belongs to a single pipeline instance and must not be shared
// across goroutines.
type Document struct {
	content []byte
	tree    *tree_sitter.Tree
	parser  *gdscript.Parser
}

// NewDocument parses content and returns a Document owning the result.
func NewDocument(parser *gdscript.Parser, content []byte) (*Document, error) {
	tree, err := parser.Parse(content, nil)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{
		content: content,
		tree:    tree,
		parser:  parser,
	}, nil
}

// Content returns the current buffer. Callers must not mutate it.
func (d *Document) Content() []byte {
	return d.content
}

// Tree returns the current parse tree. Node references taken from it become
// stale after any mutation of the document.
func (d *Document) Tree() *tree_sitter.Tree {
	return d.tree
}

// Root returns the root node of the current parse tree.
func (d *Document) Root() *tree_sitter.Node {
	return d.tree.RootNode()
}

// Close releases the parse tree.
func (d *Document) Close() {
	if d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
}

// PointAt computes the row/column position of a byte offset by scanning the
// buffer from the start. Offsets past the end clamp to the final position.
func (d *Document) PointAt(offset uint) tree_sitter.Point {
	end := min(int(offset), len(d.content))
	return advancePoint(tree_sitter.Point{}, d.content[:end])
}

// Splice applies a single edit to the buffer and mirrors it into the tree's
// position bookkeeping. It does not reparse: callers batching several splices
// in descending offset order call Reparse once at the end of the batch.
func (d *Document) Splice(edit Edit, replacement []byte) {
	var out bytes.Buffer
	out.Grow(len(d.content) + len(replacement) - int(edit.OldEndByte-edit.StartByte))
	out.Write(d.content[:edit.StartByte])
	out.Write(replacement)
	out.Write(d.content[edit.OldEndByte:])
	d.content = out.Bytes()
	d.tree.Edit(edit.InputEdit())
}

// Reparse refreshes the tree after one or more splices. The previous tree is
// supplied to the parser so the parse is incremental.
func (d *Document) Reparse() error {
	tree, err := d.parser.Parse(d.content, d.tree)
	if err != nil {
		return fmt.Errorf("reparse document: %w", err)
	}
	d.tree.Close()
	d.tree = tree
	return nil
}
