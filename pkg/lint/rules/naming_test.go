package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ser140/GDScript-formatter/pkg/lint"
)

func TestFunctionName(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewFunctionName() }

	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"snake case ok", "func move_left():\n\tpass\n", 0},
		{"private ok", "func _on_ready():\n\tpass\n", 0},
		{"pascal case flagged", "func MoveLeft():\n\tpass\n", 1},
		{"camel case flagged", "func moveLeft():\n\tpass\n", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := lintWith(t, "function-name", factory, tc.source)
			assert.Len(t, issues, tc.want)
		})
	}
}

func TestFunctionNameIssuePosition(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewFunctionName() }
	issues := lintWith(t, "function-name", factory, "extends Node\n\n\nfunc BadName():\n\tpass\n")

	require.Len(t, issues, 1)
	assert.Equal(t, 4, issues[0].Line)
	assert.Equal(t, 6, issues[0].Column)
	assert.Equal(t, lint.SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "BadName")
}

func TestClassName(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewClassName() }

	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"pascal ok", "class_name PlayerController\n", 0},
		{"snake flagged", "class_name player_controller\n", 1},
		{"inner class flagged", "class inner_state:\n\tvar x = 1\n", 1},
		{"inner class ok", "class InnerState:\n\tvar x = 1\n", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := lintWith(t, "class-name", factory, tc.source)
			assert.Len(t, issues, tc.want)
		})
	}
}

func TestSignalName(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewSignalName() }

	assert.Empty(t, lintWith(t, "signal-name", factory, "signal health_changed(amount)\n"))
	assert.Len(t, lintWith(t, "signal-name", factory, "signal HealthChanged\n"), 1)
}

func TestVariableName(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewVariableName() }

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"snake ok", "var move_speed = 10\n", nil},
		{"private ok", "var _cache = {}\n", nil},
		{"pascal flagged", "var MoveSpeed = 10\n", []string{"variable-name"}},
		{"preload pascal ok", "var PlayerScene = preload(\"res://player.tscn\")\n", nil},
		{"load pascal ok", "var Level = load(\"res://level.tscn\")\n", nil},
		{"load camel flagged", "var playerScene = preload(\"res://player.tscn\")\n", []string{"load-variable-name"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := lintWith(t, "variable-name", factory, tc.source)
			assert.Equal(t, tc.want, ruleNames(issues))
		})
	}
}

func TestConstantName(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewConstantName() }

	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"constant case ok", "const MAX_SPEED = 200\n", 0},
		{"private constant ok", "const _INTERNAL_LIMIT = 5\n", 0},
		{"lowercase flagged", "const max_speed = 200\n", 1},
		{"preload pascal ok", "const PlayerScene = preload(\"res://player.tscn\")\n", 0},
		{"preload lowercase flagged", "const player_scene = preload(\"res://player.tscn\")\n", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := lintWith(t, "constant-name", factory, tc.source)
			assert.Len(t, issues, tc.want)
		})
	}
}

func TestFunctionArgumentName(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewFunctionArgumentName() }

	assert.Empty(t, lintWith(t, "function-argument-name", factory,
		"func damage(amount, _source):\n\tpass\n"))

	issues := lintWith(t, "function-argument-name", factory,
		"func damage(Amount: int, source):\n\tpass\n")
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Amount")
}

func TestLoopVariableName(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewLoopVariableName() }

	assert.Empty(t, lintWith(t, "loop-variable-name", factory,
		"func run():\n\tfor item in items:\n\t\tpass\n"))
	assert.Len(t, lintWith(t, "loop-variable-name", factory,
		"func run():\n\tfor Item in items:\n\t\tpass\n"), 1)
}

func TestEnumName(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewEnumName() }

	assert.Empty(t, lintWith(t, "enum-name", factory, "enum Direction { UP, DOWN }\n"))
	assert.Len(t, lintWith(t, "enum-name", factory, "enum direction { UP, DOWN }\n"), 1)
}

func TestEnumMemberName(t *testing.T) {
	t.Parallel()

	factory := func(lint.Config) lint.Rule { return NewEnumMemberName() }

	assert.Empty(t, lintWith(t, "enum-member-name", factory,
		"enum State { IDLE, RUNNING = 2 }\n"))

	issues := lintWith(t, "enum-member-name", factory, "enum State { Idle, RUNNING }\n")
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Idle")
}
