package reorder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ser140/GDScript-formatter/pkg/gdscript"
)

func reorderString(t *testing.T, source string) (string, error) {
	t.Helper()

	parser := gdscript.NewParser()
	defer parser.Close()

	tree, err := parser.Parse([]byte(source), nil)
	require.NoError(t, err)
	defer tree.Close()

	out, err := Source(tree, []byte(source))
	return string(out), err
}

// indexOf fails the test when needle is missing, so ordering assertions
// cannot silently pass on absent text.
func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	i := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, i, 0, "expected output to contain %q:\n%s", needle, haystack)
	return i
}

func TestSourceRejectsSyntaxErrors(t *testing.T) {
	t.Parallel()

	_, err := reorderString(t, "func broken(:\n\tpass\n")
	assert.ErrorIs(t, err, ErrSyntaxErrors)
}

func TestSourceOrdersDeclarationKinds(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"func helper():",
		"\tpass",
		"",
		"",
		"var speed = 10",
		"",
		"const MAX_SPEED = 200",
		"",
		"signal died",
		"",
		"enum State { IDLE, RUNNING }",
		"",
		"extends Node",
		"",
		"class_name Player",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)

	positions := []int{
		indexOf(t, got, "class_name Player"),
		indexOf(t, got, "extends Node"),
		indexOf(t, got, "signal died"),
		indexOf(t, got, "enum State"),
		indexOf(t, got, "const MAX_SPEED"),
		indexOf(t, got, "var speed"),
		indexOf(t, got, "func helper"),
	}
	assert.IsIncreasing(t, positions)
}

func TestSourceOrdersVariableFlavors(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"extends Node",
		"@onready var sprite = $Sprite",
		"var health = 100",
		"@export var title = \"\"",
		"static var instances = 0",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)

	positions := []int{
		indexOf(t, got, "static var instances"),
		indexOf(t, got, "@export var title"),
		indexOf(t, got, "var health"),
		indexOf(t, got, "@onready var sprite"),
	}
	assert.IsIncreasing(t, positions)
}

func TestSourceOrdersMethods(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"extends Node",
		"",
		"",
		"func walk():",
		"\tpass",
		"",
		"",
		"func _private_helper():",
		"\tpass",
		"",
		"",
		"func _process(delta):",
		"\tpass",
		"",
		"",
		"func _ready():",
		"\tpass",
		"",
		"",
		"static func make():",
		"\tpass",
		"",
		"",
		"func _init():",
		"\tpass",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)

	positions := []int{
		indexOf(t, got, "static func make"),
		indexOf(t, got, "func _init"),
		indexOf(t, got, "func _ready"),
		indexOf(t, got, "func _process"),
		indexOf(t, got, "func walk"),
		indexOf(t, got, "func _private_helper"),
	}
	assert.IsIncreasing(t, positions)
}

func TestSourceMovesClassAnnotationsToTop(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"extends Node",
		"@icon(\"res://icon.svg\")",
		"@tool",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)

	positions := []int{
		indexOf(t, got, "@tool"),
		indexOf(t, got, "@icon"),
		indexOf(t, got, "extends Node"),
	}
	assert.IsIncreasing(t, positions)
}

func TestSourceKeepsDocstringAfterExtends(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"## A player character.",
		"## Moves around.",
		"extends Node",
		"",
		"var health = 100",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)

	extendsAt := indexOf(t, got, "extends Node")
	docAt := indexOf(t, got, "## A player character.")
	varAt := indexOf(t, got, "var health")
	assert.Less(t, extendsAt, docAt)
	assert.Less(t, docAt, varAt)
	assert.Contains(t, got, "## A player character.\n## Moves around.")
}

func TestSourceKeepsBodyCommentMatchingDocstringText(t *testing.T) {
	t.Parallel()

	// The comment above the variable repeats a docstring line verbatim.
	// It must still travel with the variable instead of being swallowed
	// by the class docstring.
	source := strings.Join([]string{
		"## Moves around.",
		"extends Node",
		"",
		"func run():",
		"\tpass",
		"",
		"## Moves around.",
		"var speed = 10",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(got, "## Moves around."))
	assert.Contains(t, got, "## Moves around.\nvar speed = 10")
}

func TestSourceCommentsTravelWithDeclaration(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"extends Node",
		"",
		"",
		"func run():",
		"\tpass",
		"",
		"",
		"# Tunable in the editor.",
		"var speed = 10",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)

	assert.Contains(t, got, "# Tunable in the editor.\nvar speed = 10")
	assert.Less(t,
		indexOf(t, got, "var speed"),
		indexOf(t, got, "func run"))
}

func TestSourceAnnotationOnOwnLineTravels(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"extends Node",
		"",
		"var plain = 1",
		"@export",
		"var exported = 2",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)

	assert.Contains(t, got, "@export\nvar exported = 2")
	assert.Less(t,
		indexOf(t, got, "var exported"),
		indexOf(t, got, "var plain"))
}

func TestSourcePreservesUnknownSyntaxLast(t *testing.T) {
	t.Parallel()

	// A bare expression statement at top level is legal but matches none of
	// the ordered kinds. It must survive the rewrite.
	source := strings.Join([]string{
		"print(\"hello\")",
		"extends Node",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)
	assert.Contains(t, got, "print(\"hello\")")
	assert.Less(t,
		indexOf(t, got, "extends Node"),
		indexOf(t, got, "print"))
}

func TestSourceStableForAlreadyOrderedFile(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"class_name Player",
		"extends Node",
		"",
		"signal died",
		"",
		"const MAX = 10",
		"",
		"var health = 100",
		"",
		"",
		"func _ready():",
		"\tpass",
		"",
		"",
		"func attack():",
		"\tpass",
		"",
	}, "\n")

	got, err := reorderString(t, source)
	require.NoError(t, err)

	again, err := reorderString(t, got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestCompareSortsPublicBeforePrivate(t *testing.T) {
	t.Parallel()

	pub := token{kind: kindRegularVariable, name: "speed"}
	priv := token{kind: kindRegularVariable, name: "_speed", private: true}

	assert.Negative(t, compare(pub, priv))
	assert.Positive(t, compare(priv, pub))
}

func TestClassifyVariableFlavors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want kind
		name string
	}{
		{"var health = 100", kindRegularVariable, "health"},
		{"@export var title: String", kindExportVariable, "title"},
		{"@onready var sprite = $Sprite", kindOnReadyVariable, "sprite"},
		{"static var count := 0", kindStaticVariable, "count"},
	}

	for _, tc := range tests {
		tok := classifyVariable(tc.text)
		assert.Equal(t, tc.want, tok.kind, tc.text)
		assert.Equal(t, tc.name, tok.name, tc.text)
	}
}

func TestClassifyMethodSubgroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want methodType
	}{
		{"static func _static_init():\n\tpass", methodStaticInit},
		{"static func make():\n\tpass", methodStatic},
		{"func _ready():\n\tpass", methodBuiltinVirtual},
		{"func attack():\n\tpass", methodCustom},
	}

	for _, tc := range tests {
		tok := classifyMethod(tc.text)
		assert.Equal(t, tc.want, tok.method, tc.text)
	}
}

func TestBuiltinVirtualOrderFollowsEngineCallbacks(t *testing.T) {
	t.Parallel()

	ready := classifyMethod("func _ready():\n\tpass")
	process := classifyMethod("func _process(delta):\n\tpass")
	input := classifyMethod("func _input(event):\n\tpass")

	assert.Negative(t, compare(ready, process))
	assert.Negative(t, compare(process, input))
}

func TestNameExtraction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "died", signalName("signal died"))
	assert.Equal(t, "hit", signalName("signal hit(damage: int)"))
	assert.Equal(t, "State", enumName("enum State { IDLE }"))
	assert.Equal(t, "unnamed_enum", enumName("enum { A, B }"))
	assert.Equal(t, "MAX", constName("const MAX = 10"))
	assert.Equal(t, "MAX", constName("const MAX: int = 10"))
	assert.Equal(t, "Inner", innerClassName("class Inner:\n\tpass"))
}
