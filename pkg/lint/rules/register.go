package rules

import (
	"github.com/l0ser140/GDScript-formatter/pkg/lint"
)

func init() {
	register := func(name string, factory lint.Factory) {
		lint.DefaultRegistry.Register(name, factory)
	}

	register("class-name", func(lint.Config) lint.Rule { return NewClassName() })
	register("comparison-with-itself", func(lint.Config) lint.Rule { return NewComparisonWithItself() })
	register("constant-name", func(lint.Config) lint.Rule { return NewConstantName() })
	register("duplicated-load", func(lint.Config) lint.Rule { return NewDuplicatedLoad() })
	register("enum-member-name", func(lint.Config) lint.Rule { return NewEnumMemberName() })
	register("enum-name", func(lint.Config) lint.Rule { return NewEnumName() })
	register("function-argument-name", func(lint.Config) lint.Rule { return NewFunctionArgumentName() })
	register("function-name", func(lint.Config) lint.Rule { return NewFunctionName() })
	register("loop-variable-name", func(lint.Config) lint.Rule { return NewLoopVariableName() })
	register("max-line-length", func(cfg lint.Config) lint.Rule { return NewMaxLineLength(cfg.MaxLineLength) })
	register("no-else-return", func(lint.Config) lint.Rule { return NewNoElseReturn() })
	register("private-access", func(lint.Config) lint.Rule { return NewPrivateAccess() })
	register("signal-name", func(lint.Config) lint.Rule { return NewSignalName() })
	register("standalone-expression", func(lint.Config) lint.Rule { return NewStandaloneExpression() })
	register("unnecessary-pass", func(lint.Config) lint.Rule { return NewUnnecessaryPass() })
	register("unused-argument", func(lint.Config) lint.Rule { return NewUnusedArgument() })
	register("variable-name", func(lint.Config) lint.Rule { return NewVariableName() })
}
