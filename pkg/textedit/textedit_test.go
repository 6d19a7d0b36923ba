package textedit

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/gdscript"
)

func newDoc(t *testing.T, source string) *Document {
	t.Helper()

	parser := gdscript.NewParser()
	t.Cleanup(parser.Close)

	doc, err := NewDocument(parser, []byte(source))
	require.NoError(t, err)
	t.Cleanup(doc.Close)
	return doc
}

func TestReplaceAllBasic(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "var x = 1;\nvar y = 2;\n")

	n, err := doc.ReplaceAll(regexp.MustCompile(`;`), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "var x = 1\nvar y = 2\n", string(doc.Content()))
}

func TestReplaceAllSkipsStringLiterals(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "var x = \"a;b\";\n")

	n, err := doc.ReplaceAll(regexp.MustCompile(`;`), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "var x = \"a;b\"\n", string(doc.Content()))
}

func TestReplaceAllNoMatches(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "var x = 1\n")

	n, err := doc.ReplaceAll(regexp.MustCompile(`;`), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "var x = 1\n", string(doc.Content()))
}

func TestReplaceAllExpandsTemplate(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "extends Node\n\n\nvar x = 1\n")

	re := regexp.MustCompile(`(?m)^(extends \w+)\n\n*`)
	n, err := doc.ReplaceAll(re, []byte("$1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "extends Node\nvar x = 1\n", string(doc.Content()))
}

func TestReplaceAllKeepsTreeInSync(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "var x = 1;\n\n\nfunc run():\n\tpass\n")

	_, err := doc.ReplaceAll(regexp.MustCompile(`;`), nil)
	require.NoError(t, err)

	// The tree was reparsed incrementally; node positions must agree with
	// the edited buffer.
	root := doc.Root()
	assert.False(t, root.HasError())
	assert.Equal(t, uint(len(doc.Content())), root.EndByte())
}

func TestSpliceInsert(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "func a():\n\tpass\nfunc b():\n\tpass\n")

	offset := uint(16) // start of the "func b" line
	text := []byte("\n\n")
	doc.Splice(Insert(offset, doc.PointAt(offset), text), text)
	require.NoError(t, doc.Reparse())

	assert.Equal(t, "func a():\n\tpass\n\n\nfunc b():\n\tpass\n", string(doc.Content()))
	assert.False(t, doc.Root().HasError())
}

func TestPointAt(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "var x = 1\nvar y = 2\n")

	assert.Equal(t, tree_sitter.Point{Row: 0, Column: 0}, doc.PointAt(0))
	assert.Equal(t, tree_sitter.Point{Row: 0, Column: 4}, doc.PointAt(4))
	assert.Equal(t, tree_sitter.Point{Row: 1, Column: 0}, doc.PointAt(10))
	assert.Equal(t, tree_sitter.Point{Row: 2, Column: 0}, doc.PointAt(999))
}

func TestAdvancePoint(t *testing.T) {
	t.Parallel()

	p := advancePoint(tree_sitter.Point{}, []byte("ab\ncd"))
	assert.Equal(t, tree_sitter.Point{Row: 1, Column: 2}, p)

	p = advancePoint(tree_sitter.Point{Row: 3, Column: 5}, []byte("xyz"))
	assert.Equal(t, tree_sitter.Point{Row: 3, Column: 8}, p)
}
