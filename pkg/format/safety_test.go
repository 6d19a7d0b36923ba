package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ser140/GDScript-formatter/pkg/gdscript"
)

func fingerprintOf(t *testing.T, source string) *Fingerprint {
	t.Helper()

	parser := gdscript.NewParser()
	defer parser.Close()

	tree, err := parser.Parse([]byte(source), nil)
	require.NoError(t, err)
	defer tree.Close()

	return NewFingerprint(tree.RootNode())
}

func TestFingerprintIgnoresWhitespace(t *testing.T) {
	t.Parallel()

	a := fingerprintOf(t, "func run():\n\tpass\nvar x = 1\n")
	b := fingerprintOf(t, "func run():\n\tpass\n\n\nvar x = 1\n")

	assert.True(t, a.Equal(b))
}

func TestFingerprintDetectsMissingDeclaration(t *testing.T) {
	t.Parallel()

	a := fingerprintOf(t, "var x = 1\nvar y = 2\n")
	b := fingerprintOf(t, "var x = 1\n")

	assert.False(t, a.Equal(b))
	assert.False(t, b.Equal(a))
}

func TestFingerprintDetectsChangedExpression(t *testing.T) {
	t.Parallel()

	a := fingerprintOf(t, "var x = 1\n")
	b := fingerprintOf(t, "var x = foo()\n")

	assert.False(t, a.Equal(b))
}

func TestFingerprintEqualHandlesNil(t *testing.T) {
	t.Parallel()

	fp := fingerprintOf(t, "var x = 1\n")

	var none *Fingerprint
	assert.True(t, none.Equal(nil))
	assert.False(t, fp.Equal(nil))
	assert.False(t, none.Equal(fp))
}

func TestFingerprintString(t *testing.T) {
	t.Parallel()

	fp := &Fingerprint{Kind: "source", Children: []*Fingerprint{
		{Kind: "variable_statement", Children: []*Fingerprint{
			{Kind: "var"},
			{Kind: "name"},
		}},
	}}

	assert.Equal(t, "(source (variable_statement var name))", fp.String())
}

func TestDropSemicolons(t *testing.T) {
	t.Parallel()

	fp := &Fingerprint{Kind: "source", GrammarID: 1, Children: []*Fingerprint{
		{Kind: "variable_statement", GrammarID: 2},
		{Kind: ";", GrammarID: 3},
		{Kind: "variable_statement", GrammarID: 2, Children: []*Fingerprint{
			{Kind: ";", GrammarID: 3},
		}},
	}}
	want := &Fingerprint{Kind: "source", GrammarID: 1, Children: []*Fingerprint{
		{Kind: "variable_statement", GrammarID: 2},
		{Kind: "variable_statement", GrammarID: 2},
	}}

	dropSemicolons(fp)
	assert.True(t, want.Equal(fp))
}

func TestAdoptAnnotationsMovesLeadingAnnotationIntoStatement(t *testing.T) {
	t.Parallel()

	annotation := &Fingerprint{Kind: "annotation", GrammarID: 9}
	statement := &Fingerprint{Kind: "variable_statement", GrammarID: 2, Children: []*Fingerprint{
		{Kind: "var", GrammarID: 4},
	}}
	fp := &Fingerprint{Kind: "source", GrammarID: 1, Children: []*Fingerprint{
		annotation,
		statement,
	}}

	adoptAnnotations(fp)

	require.Len(t, fp.Children, 1)
	require.Len(t, fp.Children[0].Children, 2)
	assert.Equal(t, "annotation", fp.Children[0].Children[0].Kind)
	assert.Equal(t, "var", fp.Children[0].Children[1].Kind)
}

func TestAdoptAnnotationsLeavesOtherSiblingsAlone(t *testing.T) {
	t.Parallel()

	fp := &Fingerprint{Kind: "source", GrammarID: 1, Children: []*Fingerprint{
		{Kind: "annotation", GrammarID: 9},
		{Kind: "function_definition", GrammarID: 5},
	}}

	adoptAnnotations(fp)

	// Annotations only fold into variable statements; anything else keeps
	// the original sibling order.
	require.Len(t, fp.Children, 2)
	assert.Equal(t, "annotation", fp.Children[0].Kind)
	assert.Equal(t, "function_definition", fp.Children[1].Kind)
}

func TestNormalizeAppliesAllRules(t *testing.T) {
	t.Parallel()

	fp := &Fingerprint{Kind: "source", GrammarID: 1, Children: []*Fingerprint{
		{Kind: "annotation", GrammarID: 9},
		{Kind: "variable_statement", GrammarID: 2},
		{Kind: ";", GrammarID: 3},
	}}

	got := Normalize(fp)

	require.Len(t, got.Children, 1)
	assert.Equal(t, "variable_statement", got.Children[0].Kind)
	require.Len(t, got.Children[0].Children, 1)
	assert.Equal(t, "annotation", got.Children[0].Children[0].Kind)
}
