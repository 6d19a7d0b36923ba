package textedit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedIdenticalContent(t *testing.T) {
	t.Parallel()

	content := []byte("var x = 1\nvar y = 2\n")
	assert.Empty(t, Unified("a.gd", content, content))
}

func TestUnifiedSingleLineChange(t *testing.T) {
	t.Parallel()

	orig := []byte("var x = 1\nvar y = 2\nvar z = 3\n")
	mod := []byte("var x = 1\nvar y = 20\nvar z = 3\n")

	diff := Unified("a.gd", orig, mod)
	assert.True(t, strings.HasPrefix(diff, "--- a/a.gd\n+++ b/a.gd\n"))
	assert.Contains(t, diff, "-var y = 2\n")
	assert.Contains(t, diff, "+var y = 20\n")
	assert.Contains(t, diff, " var x = 1\n")
	assert.Contains(t, diff, " var z = 3\n")
}

func TestUnifiedInsertion(t *testing.T) {
	t.Parallel()

	orig := []byte("func a():\n\tpass\nfunc b():\n\tpass\n")
	mod := []byte("func a():\n\tpass\n\n\nfunc b():\n\tpass\n")

	diff := Unified("a.gd", orig, mod)
	assert.Contains(t, diff, "+\n")
	assert.NotContains(t, diff, "-func")
}

func TestUnifiedHunkHeaders(t *testing.T) {
	t.Parallel()

	orig := []byte("a\nb\nc\n")
	mod := []byte("a\nB\nc\n")

	diff := Unified("x.gd", orig, mod)
	require.Contains(t, diff, "@@ -1,3 +1,3 @@")
}

func TestUnifiedSeparateHunksForDistantChanges(t *testing.T) {
	t.Parallel()

	var origLines, modLines []string
	for i := 0; i < 30; i++ {
		origLines = append(origLines, "line")
		modLines = append(modLines, "line")
	}
	origLines[0], modLines[0] = "first-old", "first-new"
	origLines[29], modLines[29] = "last-old", "last-new"

	diff := Unified("x.gd",
		[]byte(strings.Join(origLines, "\n")+"\n"),
		[]byte(strings.Join(modLines, "\n")+"\n"))

	assert.Equal(t, 2, strings.Count(diff, "@@ -"))
	assert.Contains(t, diff, "-first-old\n")
	assert.Contains(t, diff, "+last-new\n")
}
