package reorder

import (
	"cmp"
	"strings"
	"unicode"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// kind classifies a top-level declaration for ordering purposes.
type kind int

const (
	kindClassAnnotation kind = iota // @tool, @icon and friends at the top of the file
	kindClassName
	kindExtends
	kindDocstring
	kindSignal
	kindEnum
	kindConstant
	kindStaticVariable
	kindExportVariable
	kindRegularVariable
	kindOnReadyVariable
	kindMethod
	kindInnerClass
	// kindUnknown preserves syntax we do not recognize, for example new
	// Godot syntax this package has not learned yet. Unknown tokens sort
	// after everything else and are never dropped.
	kindUnknown
)

// methodType splits methods into the sub-groups the style guide orders:
// _static_init first, then static functions, then built-in virtual methods
// in engine callback order, then everything the user defined.
type methodType int

const (
	methodStaticInit methodType = iota
	methodStatic
	methodBuiltinVirtual
	methodCustom
)

// group buckets tokens for vertical spacing when the file is rebuilt.
type group int

const (
	groupHeader group = iota
	groupSignal
	groupEnum
	groupConstant
	groupStaticVariable
	groupExportVariable
	groupRegularVariable
	groupOnReadyVariable
	groupMethod
	groupInnerClass
)

// token is one top-level declaration together with the comments that travel
// with it: docstrings and annotations above it, and trailing region markers
// below it.
type token struct {
	kind    kind
	name    string
	private bool

	// method and builtin are meaningful only for kindMethod. builtin is
	// the position in builtinVirtualMethods.
	method  methodType
	builtin int

	text     string
	attached []string
	trailing []string
}

// builtinVirtualMethods lists Godot's virtual methods in the order they
// should appear in a script. Position in the list is the sort rank.
var builtinVirtualMethods = []string{
	"_init",
	"_enter_tree",
	"_ready",
	"_process",
	"_physics_process",
	"_exit_tree",
	"_input",
	"_unhandled_input",
	"_gui_input",
	"_draw",
	"_notification",
	"_get_configuration_warnings",
	"_validate_property",
	"_get_property_list",
	"_property_can_revert",
	"_property_get_revert",
	"_get",
	"_set",
	"_to_string",
}

func builtinVirtualIndex(name string) (int, bool) {
	for i, candidate := range builtinVirtualMethods {
		if candidate == name {
			return i, true
		}
	}
	return 0, false
}

// priority returns the style guide rank of the token. Lower sorts first.
func (t token) priority() int {
	switch t.kind {
	case kindClassAnnotation:
		return 1
	case kindClassName:
		return 2
	case kindExtends:
		return 3
	case kindDocstring:
		return 4
	case kindSignal:
		return 5
	case kindEnum:
		return 6
	case kindConstant:
		return 7
	case kindStaticVariable:
		return 8
	case kindExportVariable:
		return 9
	case kindRegularVariable:
		return 10
	case kindOnReadyVariable:
		return 11
	case kindMethod:
		switch t.method {
		case methodStaticInit:
			return 12
		case methodStatic:
			return 13
		case methodBuiltinVirtual:
			return 14
		default:
			return 15
		}
	case kindInnerClass:
		return 16
	default:
		return 255
	}
}

// group returns the spacing bucket for the token. Unknown syntax is spaced
// like a method so it stays visually separated.
func (t token) group() group {
	switch t.kind {
	case kindClassAnnotation, kindClassName, kindExtends, kindDocstring:
		return groupHeader
	case kindSignal:
		return groupSignal
	case kindEnum:
		return groupEnum
	case kindConstant:
		return groupConstant
	case kindStaticVariable:
		return groupStaticVariable
	case kindExportVariable:
		return groupExportVariable
	case kindRegularVariable:
		return groupRegularVariable
	case kindOnReadyVariable:
		return groupOnReadyVariable
	case kindInnerClass:
		return groupInnerClass
	default:
		return groupMethod
	}
}

// compare orders tokens by style guide priority, then by method sub-order,
// then public before pseudo-private, then alphabetically. Used with a
// stable sort so equal tokens keep their original relative order.
func compare(a, b token) int {
	if c := cmp.Compare(a.priority(), b.priority()); c != 0 {
		return c
	}
	if a.kind == kindMethod && b.kind == kindMethod &&
		a.method == methodBuiltinVirtual && b.method == methodBuiltinVirtual {
		if c := cmp.Compare(a.builtin, b.builtin); c != 0 {
			return c
		}
	}
	if a.private != b.private {
		if a.private {
			return 1
		}
		return -1
	}
	if a.kind == kindClassAnnotation && b.kind == kindClassAnnotation {
		return cmp.Compare(annotationRank(a.name), annotationRank(b.name))
	}
	return strings.Compare(a.name, b.name)
}

// annotationRank puts @tool at the very top of the script, @icon right
// after it, and any other class-level annotation below those.
func annotationRank(text string) int {
	switch {
	case strings.HasPrefix(text, "@tool"):
		return 0
	case strings.HasPrefix(text, "@icon"):
		return 1
	default:
		return 2
	}
}

// isClassAnnotation reports whether an annotation belongs at the top of the
// file rather than to the next declaration.
func isClassAnnotation(text string) bool {
	return strings.HasPrefix(text, "@tool") ||
		strings.HasPrefix(text, "@icon") ||
		strings.HasPrefix(text, "@static_unload")
}

// classify turns a top-level node into a token. Comments, region markers
// and annotations never reach this function; anything else unrecognized
// becomes kindUnknown so it is preserved verbatim.
func classify(node *tree_sitter.Node, text string) token {
	switch node.Kind() {
	case "class_name_statement":
		// A combined "class_name Foo extends Bar" sorts under its
		// class_name part.
		name := text
		if before, _, found := strings.Cut(text, "extends"); found {
			name = strings.TrimSpace(before)
		}
		return token{kind: kindClassName, name: name, text: text}

	case "extends_statement":
		return token{kind: kindExtends, name: text, text: text}

	case "signal_statement":
		name := signalName(text)
		return token{kind: kindSignal, name: name, private: isPrivate(name), text: text}

	case "enum_definition":
		name := enumName(text)
		return token{kind: kindEnum, name: name, private: isPrivate(name), text: text}

	case "const_statement":
		name := constName(text)
		return token{kind: kindConstant, name: name, private: isPrivate(name), text: text}

	case "variable_statement":
		return classifyVariable(text)

	case "function_definition", "constructor_definition":
		return classifyMethod(text)

	case "class_definition":
		name := innerClassName(text)
		return token{kind: kindInnerClass, name: name, private: isPrivate(name), text: text}

	default:
		return token{kind: kindUnknown, name: text, text: text}
	}
}

// classifyVariable splits variables into the export/onready/static/regular
// buckets based on the statement text, which includes annotations written
// on the same line as the var keyword.
func classifyVariable(text string) token {
	name := variableName(text)
	t := token{name: name, private: isPrivate(name), text: text}
	switch {
	case strings.Contains(text, "@export"):
		t.kind = kindExportVariable
	case strings.Contains(text, "@onready"):
		t.kind = kindOnReadyVariable
	case strings.Contains(text, "static var"):
		t.kind = kindStaticVariable
	default:
		t.kind = kindRegularVariable
	}
	return t
}

func classifyMethod(text string) token {
	name := functionName(text)
	t := token{
		kind:    kindMethod,
		name:    name,
		private: isPrivate(name),
		method:  methodCustom,
		text:    text,
	}
	switch {
	case name == "_static_init":
		t.method = methodStaticInit
	case strings.Contains(text, "static func"):
		t.method = methodStatic
	default:
		if i, ok := builtinVirtualIndex(name); ok {
			t.method = methodBuiltinVirtual
			t.builtin = i
		}
	}
	return t
}

func isPrivate(name string) bool {
	return strings.HasPrefix(name, "_")
}

func signalName(text string) string {
	name, found := strings.CutPrefix(text, "signal ")
	if !found {
		return "unknown_signal"
	}
	if i := strings.IndexFunc(name, func(r rune) bool {
		return r == '(' || r == ':' || unicode.IsSpace(r)
	}); i >= 0 {
		return name[:i]
	}
	return name
}

func enumName(text string) string {
	rest, found := strings.CutPrefix(text, "enum ")
	if !found {
		return "unknown_enum"
	}
	if i := strings.IndexFunc(rest, func(r rune) bool {
		return r == '{' || unicode.IsSpace(r)
	}); i >= 0 {
		rest = rest[:i]
	}
	if name := strings.TrimSpace(rest); name != "" {
		return name
	}
	return "unnamed_enum"
}

func constName(text string) string {
	name, found := strings.CutPrefix(text, "const ")
	if !found {
		return "unknown_const"
	}
	if i := strings.IndexFunc(name, func(r rune) bool {
		return r == '=' || r == ':' || unicode.IsSpace(r)
	}); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// variableName finds the identifier after the var keyword. The keyword is
// searched, not cut from the front, so "static var" and annotations on the
// same line do not hide the name.
func variableName(text string) string {
	i := strings.Index(text, "var ")
	if i < 0 {
		return "unknown_var"
	}
	name := text[i+len("var "):]
	if j := strings.IndexFunc(name, func(r rune) bool {
		return r == ':' || r == '=' || unicode.IsSpace(r)
	}); j >= 0 {
		name = name[:j]
	}
	return strings.TrimSpace(name)
}

func functionName(text string) string {
	i := strings.Index(text, "func ")
	if i < 0 {
		return "unknown_func"
	}
	rest := text[i+len("func "):]
	name, _, found := strings.Cut(rest, "(")
	if !found {
		return "unknown_func"
	}
	return strings.TrimSpace(name)
}

func innerClassName(text string) string {
	name, found := strings.CutPrefix(text, "class ")
	if !found {
		return "unknown_class"
	}
	if before, _, ok := strings.Cut(name, ":"); ok {
		name = before
	}
	return strings.TrimSpace(name)
}
