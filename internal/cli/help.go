package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/l0ser140/GDScript-formatter/internal/ui/pretty"
)

// helpFormatter renders styled help and usage text for gdformat commands.
// With color disabled every style is a plain passthrough, so the same
// templates serve both modes.
type helpFormatter struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	dim        lipgloss.Style
}

// newHelpFormatter builds the styles; colorMode follows the --color flag.
func newHelpFormatter(colorMode string, w io.Writer) *helpFormatter {
	plain := lipgloss.NewStyle()
	h := &helpFormatter{
		command:    plain,
		heading:    plain,
		subcommand: plain,
		flag:       plain,
		dim:        plain,
	}
	if !pretty.IsColorEnabled(colorMode, w) {
		return h
	}

	h.command = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	h.heading = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	h.subcommand = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	h.flag = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	h.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return h
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trim }}

{{end}}` + usageTemplate

func (h *helpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":    h.command.Render,
		"heading":    h.heading.Render,
		"subcommand": h.subcommand.Render,
		"dim":        h.dim.Render,
		"flags":      h.flagUsages,
		"rpad":       rpad,
		"trim":       trimTrailingSpace,
	}
}

// install replaces cmd's help and usage rendering with the styled templates.
// Cobra propagates both functions to subcommands.
func (h *helpFormatter) install(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(h.funcs()).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(c.OutOrStdout(), c)
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(h.funcs()).Parse(helpTemplate)
		if err != nil {
			c.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// flagUsages restyles pflag's two-column flag listing: flag names in the
// flag color, value type hints dimmed, descriptions untouched.
func (h *helpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	lines := strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *helpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	names, desc, ok := splitFlagColumns(trimmed)
	if !ok {
		return line
	}

	var b strings.Builder
	b.WriteString(indent)
	for i, token := range strings.Fields(names) {
		if i > 0 {
			b.WriteString(" ")
		}
		if strings.HasPrefix(token, "-") {
			clean := strings.TrimSuffix(token, ",")
			b.WriteString(h.flag.Render(clean))
			if clean != token {
				b.WriteString(",")
			}
		} else {
			// Value type hint such as "string" or "int".
			b.WriteString(h.dim.Render(token))
		}
	}
	b.WriteString("   ")
	b.WriteString(desc)
	return b.String()
}

// splitFlagColumns splits a pflag usage line at the first gap of two or more
// spaces separating the flag names from the description.
func splitFlagColumns(line string) (names, desc string, ok bool) {
	for i := 0; i+1 < len(line); i++ {
		if line[i] != ' ' || line[i+1] != ' ' {
			continue
		}
		rest := strings.TrimLeft(line[i:], " ")
		if rest == "" {
			break
		}
		return strings.TrimRight(line[:i], " "), rest, true
	}
	return "", "", false
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
