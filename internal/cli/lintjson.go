package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/l0ser140/GDScript-formatter/pkg/lint"
	"github.com/l0ser140/GDScript-formatter/pkg/runner"
)

// lintReportVersion is the current JSON report format version.
const lintReportVersion = "1.0.0"

type lintJSONReport struct {
	Version string          `json:"version"`
	Files   []lintJSONFile  `json:"files"`
	Summary lintJSONSummary `json:"summary"`
}

type lintJSONFile struct {
	Path   string          `json:"path"`
	Error  string          `json:"error,omitempty"`
	Issues []lintJSONIssue `json:"issues"`
}

type lintJSONIssue struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
}

type lintJSONSummary struct {
	FilesProcessed  int            `json:"files_processed"`
	FilesWithIssues int            `json:"files_with_issues"`
	FilesErrored    int            `json:"files_errored"`
	IssuesTotal     int            `json:"issues_total"`
	BySeverity      map[string]int `json:"by_severity"`
}

func writeLintJSON(w io.Writer, workDir string, result *runner.Result) error {
	report := lintJSONReport{
		Version: lintReportVersion,
		Files:   make([]lintJSONFile, 0, len(result.Files)),
		Summary: lintJSONSummary{
			FilesProcessed:  result.Stats.FilesProcessed,
			FilesWithIssues: result.Stats.FilesWithIssues,
			FilesErrored:    result.Stats.FilesErrored,
			IssuesTotal:     result.Stats.IssuesTotal,
			BySeverity:      result.Stats.IssuesBySeverity,
		},
	}

	for _, outcome := range result.Files {
		file := lintJSONFile{
			Path:   relativeTo(workDir, outcome.Path),
			Issues: make([]lintJSONIssue, 0, len(outcome.Issues)),
		}
		if outcome.Error != nil {
			file.Error = outcome.Error.Error()
		}
		for _, issue := range outcome.Issues {
			file.Issues = append(file.Issues, issueToJSON(issue))
		}
		report.Files = append(report.Files, file)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func issueToJSON(issue lint.Issue) lintJSONIssue {
	return lintJSONIssue{
		Rule:     issue.Rule,
		Severity: issue.Severity.String(),
		Line:     issue.Line,
		Column:   issue.Column,
		Message:  issue.Message,
	}
}
