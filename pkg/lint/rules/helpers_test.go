package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/l0ser140/GDScript-formatter/pkg/lint"
)

// lintWith runs a single rule over source via a private registry, so each
// rule's behavior is observed in isolation from the other built-ins.
func lintWith(t *testing.T, name string, factory lint.Factory, source string) []lint.Issue {
	t.Helper()

	reg := lint.NewRegistry()
	reg.Register(name, factory)

	linter, err := lint.NewWithRegistry(lint.DefaultConfig(), reg)
	require.NoError(t, err)

	issues, err := linter.Lint(context.Background(), []byte(source))
	require.NoError(t, err)
	return issues
}

func ruleNames(issues []lint.Issue) []string {
	names := make([]string, 0, len(issues))
	for _, issue := range issues {
		names = append(names, issue.Rule)
	}
	return names
}
