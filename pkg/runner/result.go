package runner

import "github.com/l0ser140/GDScript-formatter/pkg/lint"

// FileOutcome is the result of processing a single file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Output is the processed content, when the run produces content
	// (formatting). Nil for lint-only runs.
	Output []byte

	// Changed reports whether Output differs from the file on disk.
	Changed bool

	// Written reports whether the file was rewritten on disk.
	Written bool

	// Issues contains lint findings for this file, when the run lints.
	Issues []lint.Issue

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesChanged is the number of files whose formatted output differs
	// from the input.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// IssuesTotal is the total number of lint issues across all files.
	IssuesTotal int

	// IssuesBySeverity maps severity names to counts.
	IssuesBySeverity map[string]int

	// FilesWithIssues is the number of files with at least one issue.
	FilesWithIssues int
}

// Result is the overall runner result. Files appear in discovery order
// regardless of worker completion order.
type Result struct {
	// Files contains the outcome for each processed file.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed to process or produced an
// error-severity lint issue.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.IssuesBySeverity[lint.SeverityError.String()] > 0
}

// HasIssues reports whether any lint issues were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > 0
}

// HasChanges reports whether any file's output differs from its input.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		IssuesBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}

	if len(outcome.Issues) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.IssuesTotal += len(outcome.Issues)
	for _, issue := range outcome.Issues {
		r.Stats.IssuesBySeverity[issue.Severity.String()]++
	}
}
