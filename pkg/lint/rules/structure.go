package rules

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/l0ser140/GDScript-formatter/pkg/lint"
)

// UnnecessaryPass flags pass statements in bodies that contain other
// statements.
type UnnecessaryPass struct {
	lint.BaseRule
}

// NewUnnecessaryPass creates the unnecessary-pass rule.
func NewUnnecessaryPass() *UnnecessaryPass {
	return &UnnecessaryPass{BaseRule: lint.NewBaseRule("unnecessary-pass")}
}

// NodeKinds implements lint.Rule.
func (r *UnnecessaryPass) NodeKinds() []string {
	return []string{"body", "class_body"}
}

// CheckNode implements lint.Rule.
func (r *UnnecessaryPass) CheckNode(node *tree_sitter.Node, _ []byte) []lint.Issue {
	var passNodes []tree_sitter.Node
	hasOtherStatements := false

	for _, stmt := range childNodes(node) {
		switch stmt.Kind() {
		case "pass_statement":
			passNodes = append(passNodes, stmt)
		case "_newline", "_indent", "_dedent", "comment":
		default:
			hasOtherStatements = true
		}
	}
	if !hasOtherStatements {
		return nil
	}

	var issues []lint.Issue
	for _, pass := range passNodes {
		issues = append(issues, issueAt(&pass, r.Name(), lint.SeverityWarning,
			"Unnecessary 'pass' statement when other statements are present"))
	}
	return issues
}

// StandaloneExpression flags expression statements whose value is discarded,
// like a bare comparison or literal on its own line.
type StandaloneExpression struct {
	lint.BaseRule
}

// NewStandaloneExpression creates the standalone-expression rule.
func NewStandaloneExpression() *StandaloneExpression {
	return &StandaloneExpression{BaseRule: lint.NewBaseRule("standalone-expression")}
}

// NodeKinds implements lint.Rule.
func (r *StandaloneExpression) NodeKinds() []string {
	return []string{"expression_statement"}
}

// CheckNode implements lint.Rule.
func (r *StandaloneExpression) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	expr := node.Child(0)
	if expr == nil {
		return nil
	}

	switch expr.Kind() {
	case "binary_operator", "integer", "float", "string", "true", "false", "null":
		return []lint.Issue{issueAt(expr, r.Name(), lint.SeverityWarning,
			fmt.Sprintf("Standalone expression %q is not assigned or used, the line may have no effect",
				nodeText(expr, source)))}
	}
	return nil
}

// ComparisonWithItself flags comparisons whose two operands are textually
// identical.
type ComparisonWithItself struct {
	lint.BaseRule
}

// NewComparisonWithItself creates the comparison-with-itself rule.
func NewComparisonWithItself() *ComparisonWithItself {
	return &ComparisonWithItself{BaseRule: lint.NewBaseRule("comparison-with-itself")}
}

// NodeKinds implements lint.Rule.
func (r *ComparisonWithItself) NodeKinds() []string {
	return []string{"binary_operator"}
}

// CheckNode implements lint.Rule.
func (r *ComparisonWithItself) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	left := node.ChildByFieldName("left")
	op := node.ChildByFieldName("op")
	right := node.ChildByFieldName("right")
	if left == nil || op == nil || right == nil {
		return nil
	}

	switch nodeText(op, source) {
	case "==", "!=", "<", ">", "<=", ">=":
	default:
		return nil
	}
	if nodeText(left, source) != nodeText(right, source) {
		return nil
	}
	return []lint.Issue{issueAt(node, r.Name(), lint.SeverityWarning,
		fmt.Sprintf("Redundant comparison %q - comparing expression with itself",
			nodeText(node, source)))}
}

// NoElseReturn flags elif and else branches that are unreachable as
// branches because every preceding branch ends with a return.
type NoElseReturn struct {
	lint.BaseRule
}

// NewNoElseReturn creates the no-else-return rule.
func NewNoElseReturn() *NoElseReturn {
	return &NoElseReturn{BaseRule: lint.NewBaseRule("no-else-return")}
}

// NodeKinds implements lint.Rule.
func (r *NoElseReturn) NodeKinds() []string {
	return []string{"if_statement"}
}

// CheckNode implements lint.Rule.
func (r *NoElseReturn) CheckNode(node *tree_sitter.Node, _ []byte) []lint.Issue {
	ifReturns := false
	if body := node.ChildByFieldName("body"); body != nil {
		ifReturns = bodyEndsWithReturn(body)
	}
	allBranchesReturn := ifReturns

	var issues []lint.Issue
	for _, child := range childNodes(node) {
		switch child.Kind() {
		case "elif_clause":
			if ifReturns {
				issues = append(issues, issueAt(&child, r.Name(), lint.SeverityWarning,
					"Unnecessary 'elif' after 'if' block that ends with 'return'. Use 'if' instead"))
			}
			if body := child.ChildByFieldName("body"); body != nil && !bodyEndsWithReturn(body) {
				allBranchesReturn = false
			}
		case "else_clause":
			if allBranchesReturn {
				issues = append(issues, issueAt(&child, r.Name(), lint.SeverityWarning,
					"Unnecessary 'else' after 'if'/'elif' blocks that end with 'return'"))
			}
		}
	}
	return issues
}

func bodyEndsWithReturn(body *tree_sitter.Node) bool {
	var last *tree_sitter.Node
	children := childNodes(body)
	for i := range children {
		switch children[i].Kind() {
		case "_newline", "_indent", "_dedent", "comment":
		default:
			last = &children[i]
		}
	}
	return last != nil && last.Kind() == "return_statement"
}

// PrivateAccess flags access to underscore-prefixed members through
// anything other than self or super.
type PrivateAccess struct {
	lint.BaseRule
}

// NewPrivateAccess creates the private-access rule.
func NewPrivateAccess() *PrivateAccess {
	return &PrivateAccess{BaseRule: lint.NewBaseRule("private-access")}
}

// NodeKinds implements lint.Rule.
func (r *PrivateAccess) NodeKinds() []string {
	return []string{"attribute"}
}

// CheckNode implements lint.Rule.
func (r *PrivateAccess) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	// An attribute node is object, dot token, then the accessed member.
	children := childNodes(node)
	if len(children) < 3 {
		return nil
	}
	object := nodeText(&children[0], source)
	if object == "self" || object == "super" {
		return nil
	}

	member := &children[2]
	switch member.Kind() {
	case "attribute_call":
		nameNode := member.Child(0)
		if nameNode == nil {
			return nil
		}
		name := nodeText(nameNode, source)
		if !strings.HasPrefix(name, "_") {
			return nil
		}
		return []lint.Issue{issueAt(nameNode, r.Name(), lint.SeverityError,
			fmt.Sprintf("Private method %q should not be called from outside its class", name))}
	case "identifier":
		name := nodeText(member, source)
		if !strings.HasPrefix(name, "_") {
			return nil
		}
		return []lint.Issue{issueAt(member, r.Name(), lint.SeverityError,
			fmt.Sprintf("Private variable %q should not be accessed from outside its class", name))}
	}
	return nil
}

// UnusedArgument flags function arguments that never appear in the function
// body. Arguments already prefixed with an underscore are exempt.
type UnusedArgument struct {
	lint.BaseRule
}

// NewUnusedArgument creates the unused-argument rule.
func NewUnusedArgument() *UnusedArgument {
	return &UnusedArgument{BaseRule: lint.NewBaseRule("unused-argument")}
}

// NodeKinds implements lint.Rule.
func (r *UnusedArgument) NodeKinds() []string {
	return []string{"function_definition"}
}

// CheckNode implements lint.Rule.
func (r *UnusedArgument) CheckNode(node *tree_sitter.Node, source []byte) []lint.Issue {
	params := node.ChildByFieldName("parameters")
	body := node.ChildByFieldName("body")
	if params == nil || body == nil {
		return nil
	}

	var issues []lint.Issue
	for _, param := range childNodes(params) {
		if !isParameterKind(param.Kind()) {
			continue
		}
		name := parameterName(&param, source)
		if name == "" || strings.HasPrefix(name, "_") {
			continue
		}
		if identifierUsedIn(body, name, source) {
			continue
		}
		issues = append(issues, issueAt(&param, r.Name(), lint.SeverityWarning,
			fmt.Sprintf("Function argument %q is unused. Consider removing it or prefixing with '_'", name)))
	}
	return issues
}

func identifierUsedIn(node *tree_sitter.Node, identifier string, source []byte) bool {
	if node.Kind() == "identifier" && nodeText(node, source) == identifier {
		return true
	}
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		if child := node.Child(i); child != nil && identifierUsedIn(child, identifier, source) {
			return true
		}
	}
	return false
}
