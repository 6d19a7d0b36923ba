// Package config defines core configuration types for gdformat.
// These types are pure data structures with no dependency on any
// particular config loader.
package config

// IndentStyle specifies the indentation unit for formatted output.
type IndentStyle string

const (
	IndentTabs   IndentStyle = "tabs"
	IndentSpaces IndentStyle = "spaces"
)

// IsValid returns true if the indent style is valid.
func (s IndentStyle) IsValid() bool {
	switch s {
	case IndentTabs, IndentSpaces:
		return true
	default:
		return false
	}
}

// EngineConfig describes the external pretty-printing command.
type EngineConfig struct {
	// Path is the executable to run. Empty means the built-in default.
	Path string `yaml:"path"`

	// Args are passed to the executable. The placeholders {ruleset},
	// {indent-size} and {indent-unit} are substituted before execution.
	Args []string `yaml:"args"`
}

// FormatConfig controls the formatting pipeline.
type FormatConfig struct {
	// IndentStyle selects tabs or spaces ("tabs" or "spaces").
	IndentStyle IndentStyle `yaml:"indent_style"`

	// IndentSize is the number of columns per indentation level.
	// Only meaningful when IndentStyle is "spaces".
	IndentSize int `yaml:"indent_size"`

	// Ruleset names the engine ruleset used for pretty-printing.
	Ruleset string `yaml:"ruleset"`

	// Reorder rearranges top-level declarations into style-guide order.
	Reorder bool `yaml:"reorder"`

	// SafeMode verifies structural equivalence between input and output
	// and rejects the result on any mismatch.
	SafeMode bool `yaml:"safe_mode"`

	// Engine configures the external pretty-printing command.
	Engine EngineConfig `yaml:"engine"`
}

// LintConfig controls the lint engine.
type LintConfig struct {
	// MaxLineLength is the limit enforced by the max-line-length rule.
	MaxLineLength int `yaml:"max_line_length"`

	// Disabled lists rule names to skip.
	Disabled []string `yaml:"disable"`
}

// Config is the root configuration structure for gdformat.
type Config struct {
	// Format configures the formatting pipeline.
	Format FormatConfig `yaml:"format"`

	// Lint configures the lint engine.
	Lint LintConfig `yaml:"lint"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults: tab indentation,
// safe mode on, reordering off, 100-column lint limit.
func NewConfig() *Config {
	return &Config{
		Format: FormatConfig{
			IndentStyle: IndentTabs,
			IndentSize:  4,
			Ruleset:     "gdscript",
			Reorder:     false,
			SafeMode:    true,
		},
		Lint: LintConfig{
			MaxLineLength: 100,
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}
