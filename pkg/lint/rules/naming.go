package rules

import (
	"fmt"
	"regexp"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/lint"
)

// Name convention patterns from the GDScript style guide. Process-wide
// immutable constants, compiled once at init.
var (
	snakeCase           = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	privateSnakeCase    = regexp.MustCompile(`^_[a-z][a-z0-9_]*$`)
	pascalCase          = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	constantCase        = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	privateConstantCase = regexp.MustCompile(`^_[A-Z][A-Z0-9_]*$`)
)

// FunctionName checks that function names are snake_case or
// _private_snake_case.
type FunctionName struct {
	lint.BaseRule
}

// NewFunctionName creates the function-name rule.
func NewFunctionName() *FunctionName {
	return &FunctionName{BaseRule: lint.NewBaseRule("function-name")}
}

// NodeKinds implements lint.Rule.
func (r *FunctionName) NodeKinds() []string {
	return []string{"function_definition"}
}

// CheckNode implements lint.Rule.
func (r *FunctionName) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)
	if snakeCase.MatchString(name) || privateSnakeCase.MatchString(name) {
		return nil
	}
	return []lint.Issue{issueAt(nameNode, r.Name(), lint.SeverityError,
		fmt.Sprintf("Function name %q should be in snake_case or _private_snake_case format", name))}
}

// ClassName checks that class names are PascalCase. Covers both class_name
// statements and inner class definitions.
type ClassName struct {
	lint.BaseRule
}

// NewClassName creates the class-name rule.
func NewClassName() *ClassName {
	return &ClassName{BaseRule: lint.NewBaseRule("class-name")}
}

// NodeKinds implements lint.Rule.
func (r *ClassName) NodeKinds() []string {
	return []string{"class_name_statement", "class_definition"}
}

// CheckNode implements lint.Rule.
func (r *ClassName) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)
	if pascalCase.MatchString(name) {
		return nil
	}
	return []lint.Issue{issueAt(nameNode, r.Name(), lint.SeverityError,
		fmt.Sprintf("Class name %q should be in PascalCase format", name))}
}

// SignalName checks that signal names are snake_case.
type SignalName struct {
	lint.BaseRule
}

// NewSignalName creates the signal-name rule.
func NewSignalName() *SignalName {
	return &SignalName{BaseRule: lint.NewBaseRule("signal-name")}
}

// NodeKinds implements lint.Rule.
func (r *SignalName) NodeKinds() []string {
	return []string{"signal_statement"}
}

// CheckNode implements lint.Rule.
func (r *SignalName) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)
	if snakeCase.MatchString(name) {
		return nil
	}
	return []lint.Issue{issueAt(nameNode, r.Name(), lint.SeverityError,
		fmt.Sprintf("Signal name %q should be in snake_case format", name))}
}

// VariableName checks that variable names are snake_case or
// _private_snake_case. Variables holding a load() or preload() result may
// also use PascalCase, since they conventionally hold scripts and scenes.
type VariableName struct {
	lint.BaseRule
}

// NewVariableName creates the variable-name rule.
func NewVariableName() *VariableName {
	return &VariableName{BaseRule: lint.NewBaseRule("variable-name")}
}

// NodeKinds implements lint.Rule.
func (r *VariableName) NodeKinds() []string {
	return []string{"variable_statement", "export_variable_statement", "onready_variable_statement"}
}

// CheckNode implements lint.Rule.
func (r *VariableName) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)

	if value := node.ChildByFieldName("value"); value != nil && isLoadCall(value, source, false) {
		if pascalCase.MatchString(name) || snakeCase.MatchString(name) || privateSnakeCase.MatchString(name) {
			return nil
		}
		return []lint.Issue{issueAt(nameNode, "load-variable-name", lint.SeverityError,
			fmt.Sprintf("Variable name %q should be in PascalCase, snake_case or _private_snake_case format", name))}
	}

	if snakeCase.MatchString(name) || privateSnakeCase.MatchString(name) {
		return nil
	}
	return []lint.Issue{issueAt(nameNode, r.Name(), lint.SeverityError,
		fmt.Sprintf("Variable name %q should be in snake_case or _private_snake_case format", name))}
}

// ConstantName checks that constants are CONSTANT_CASE, allowing PascalCase
// for preloaded scripts and scenes.
type ConstantName struct {
	lint.BaseRule
}

// NewConstantName creates the constant-name rule.
func NewConstantName() *ConstantName {
	return &ConstantName{BaseRule: lint.NewBaseRule("constant-name")}
}

// NodeKinds implements lint.Rule.
func (r *ConstantName) NodeKinds() []string {
	return []string{"const_statement"}
}

// CheckNode implements lint.Rule.
func (r *ConstantName) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)

	if value := node.ChildByFieldName("value"); value != nil && isLoadCall(value, source, true) {
		if pascalCase.MatchString(name) || constantCase.MatchString(name) || privateConstantCase.MatchString(name) {
			return nil
		}
		return []lint.Issue{issueAt(nameNode, r.Name(), lint.SeverityError,
			fmt.Sprintf("Preload constant name %q should be in PascalCase or CONSTANT_CASE format", name))}
	}

	if constantCase.MatchString(name) || privateConstantCase.MatchString(name) {
		return nil
	}
	return []lint.Issue{issueAt(nameNode, r.Name(), lint.SeverityError,
		fmt.Sprintf("Constant name %q should be in CONSTANT_CASE format", name))}
}

// isLoadCall reports whether node is a call to load or preload.
// preloadOnly restricts the match to preload.
func isLoadCall(node *tree_sitter.Node, source []byte, preloadOnly bool) bool {
	if node.Kind() != "call" {
		return false
	}
	fn := node.Child(0)
	if fn == nil {
		return false
	}
	switch nodeText(fn, source) {
	case "preload":
		return true
	case "load":
		return !preloadOnly
	}
	return false
}

// FunctionArgumentName checks that function parameters are snake_case or
// _private_snake_case.
type FunctionArgumentName struct {
	lint.BaseRule
}

// NewFunctionArgumentName creates the function-argument-name rule.
func NewFunctionArgumentName() *FunctionArgumentName {
	return &FunctionArgumentName{BaseRule: lint.NewBaseRule("function-argument-name")}
}

// NodeKinds implements lint.Rule.
func (r *FunctionArgumentName) NodeKinds() []string {
	return []string{"function_definition"}
}

// CheckNode implements lint.Rule.
func (r *FunctionArgumentName) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	var issues []lint.Issue
	for _, param := range childNodes(params) {
		if !isParameterKind(param.Kind()) {
			continue
		}
		name := parameterName(&param, source)
		if name == "" || snakeCase.MatchString(name) || privateSnakeCase.MatchString(name) {
			continue
		}
		issues = append(issues, issueAt(&param, r.Name(), lint.SeverityError,
			fmt.Sprintf("Function argument %q should be in snake_case or _private_snake_case format", name)))
	}
	return issues
}

// LoopVariableName checks that for-loop variables are snake_case.
type LoopVariableName struct {
	lint.BaseRule
}

// NewLoopVariableName creates the loop-variable-name rule.
func NewLoopVariableName() *LoopVariableName {
	return &LoopVariableName{BaseRule: lint.NewBaseRule("loop-variable-name")}
}

// NodeKinds implements lint.Rule.
func (r *LoopVariableName) NodeKinds() []string {
	return []string{"for_statement"}
}

// CheckNode implements lint.Rule.
func (r *LoopVariableName) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	left := node.ChildByFieldName("left")
	if left == nil {
		return nil
	}

	var name string
	switch left.Kind() {
	case "identifier":
		name = nodeText(left, source)
	case "typed_parameter":
		if child := left.Child(0); child != nil {
			name = nodeText(child, source)
		}
	}
	if name == "" || snakeCase.MatchString(name) {
		return nil
	}
	return []lint.Issue{issueAt(left, r.Name(), lint.SeverityError,
		fmt.Sprintf("Loop variable %q should be in snake_case format", name))}
}

// EnumName checks that enum names are PascalCase.
type EnumName struct {
	lint.BaseRule
}

// NewEnumName creates the enum-name rule.
func NewEnumName() *EnumName {
	return &EnumName{BaseRule: lint.NewBaseRule("enum-name")}
}

// NodeKinds implements lint.Rule.
func (r *EnumName) NodeKinds() []string {
	return []string{"enum_definition"}
}

// CheckNode implements lint.Rule.
func (r *EnumName) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)
	if pascalCase.MatchString(name) {
		return nil
	}
	return []lint.Issue{issueAt(nameNode, r.Name(), lint.SeverityError,
		fmt.Sprintf("Enum name %q should be in PascalCase format", name))}
}

// EnumMemberName checks that enum members are CONSTANT_CASE.
type EnumMemberName struct {
	lint.BaseRule
}

// NewEnumMemberName creates the enum-member-name rule.
func NewEnumMemberName() *EnumMemberName {
	return &EnumMemberName{BaseRule: lint.NewBaseRule("enum-member-name")}
}

// NodeKinds implements lint.Rule.
func (r *EnumMemberName) NodeKinds() []string {
	return []string{"enum_definition"}
}

// CheckNode implements lint.Rule.
func (r *EnumMemberName) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var issues []lint.Issue
	for _, member := range childNodes(body) {
		if member.Kind() != "enumerator" {
			continue
		}
		nameNode := member.ChildByFieldName("left")
		if nameNode == nil {
			continue
		}
		name := nodeText(nameNode, source)
		if name == "" || constantCase.MatchString(name) {
			continue
		}
		issues = append(issues, issueAt(nameNode, r.Name(), lint.SeverityError,
			fmt.Sprintf("Enum element name %q should be in CONSTANT_CASE format", name)))
	}
	return issues
}
