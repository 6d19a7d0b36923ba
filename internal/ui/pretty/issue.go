package pretty

import (
	"fmt"
	"strings"

	"github.com/l0ser140/GDScript-formatter/pkg/lint"
)

// FormatIssue formats a single lint issue for terminal output.
// When sourceLine is non-empty, the offending line is echoed below the
// issue with a caret under the reported column.
func (s *Styles) FormatIssue(path string, issue lint.Issue, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		issue.Line,
		issue.Column,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(issue.Severity),
		s.Message.Render(issue.Message),
		s.RuleID.Render("("+issue.Rule+")"),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, issue.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return s.Error.Render("error")
	case lint.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return sev.String()
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with issue output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
