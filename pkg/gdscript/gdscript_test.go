package gdscript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidSource(t *testing.T) {
	t.Parallel()

	parser := NewParser()
	defer parser.Close()

	tree, err := parser.Parse([]byte("extends Node\n\nvar health = 100\n"), nil)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "source", root.Kind())
	assert.False(t, root.HasError())
}

func TestParseBrokenSourceYieldsErrorNodes(t *testing.T) {
	t.Parallel()

	parser := NewParser()
	defer parser.Close()

	tree, err := parser.Parse([]byte("func broken(:\n\tpass\n"), nil)
	require.NoError(t, err)
	defer tree.Close()

	assert.True(t, tree.RootNode().HasError())
}

func TestInsideKind(t *testing.T) {
	t.Parallel()

	parser := NewParser()
	defer parser.Close()

	source := []byte("var x = \"a;b\";\n")
	tree, err := parser.Parse(source, nil)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	semicolonInString := uint(strings.IndexByte(string(source), ';'))
	semicolonOutside := uint(strings.LastIndexByte(string(source), ';'))

	assert.True(t, InsideKind(root, semicolonInString, "string"))
	assert.False(t, InsideKind(root, semicolonOutside, "string"))
}

func TestNodeFields(t *testing.T) {
	t.Parallel()

	parser := NewParser()
	defer parser.Close()

	source := []byte("func run():\n\tpass\n")
	tree, err := parser.Parse(source, nil)
	require.NoError(t, err)
	defer tree.Close()

	fn := tree.RootNode().Child(0)
	require.NotNil(t, fn)
	require.Equal(t, "function_definition", fn.Kind())

	name := fn.ChildByFieldName("name")
	require.NotNil(t, name)
	assert.Equal(t, "run", name.Utf8Text(source))
}

func TestMustQueryPanicsOnBadPattern(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustQuery("(this is not a query")
	})
	assert.NotPanics(t, func() {
		MustQuery("(function_definition) @fn").Close()
	})
}
