package lint

import (
	"strings"
)

// Inline directives let users silence rules per line:
//
//	some_code() # gdlint-ignore rule-a, rule-b
//	# gdlint-ignore-next-line rule-a
//	some_code()
//
// A directive with no rule names silences every rule on its target line.

// ignoreDirectives maps 1-based line numbers to the rule names silenced on
// that line. A nil entry value means all rules are silenced.
type ignoreDirectives map[int]map[string]struct{}

// allows reports whether the rule may fire on the given line.
func (d ignoreDirectives) allows(line int, rule string) bool {
	rules, ok := d[line]
	if !ok {
		return true
	}
	if len(rules) == 0 {
		return false
	}
	_, silenced := rules[rule]
	return !silenced
}

// Checked longest-first so "gdlint-ignore" does not shadow the others.
var ignoreMarkers = []struct {
	marker   string
	nextLine bool
}{
	{"gdlint-ignore-next-line", true},
	{"gdlint-ignore-line", false},
	{"gdlint-ignore", false},
}

func parseIgnoreDirectives(source []byte) ignoreDirectives {
	directives := make(ignoreDirectives)

	for i, line := range strings.Split(string(source), "\n") {
		hash := strings.IndexByte(line, '#')
		if hash < 0 {
			continue
		}
		comment := line[hash:]

		for _, m := range ignoreMarkers {
			idx := strings.Index(comment, m.marker)
			if idx < 0 {
				continue
			}

			target := i + 1
			if m.nextLine {
				target = i + 2
			}

			rules := directives[target]
			if rules == nil {
				rules = make(map[string]struct{})
				directives[target] = rules
			}
			// An optional "=" between the marker and the names is accepted:
			// both "# gdlint-ignore rule" and "# gdlint-ignore = rule" work.
			for _, name := range strings.FieldsFunc(comment[idx+len(m.marker):], func(r rune) bool {
				return r == ',' || r == '=' || r == ' ' || r == '\t'
			}) {
				rules[name] = struct{}{}
			}
			break
		}
	}

	return directives
}
