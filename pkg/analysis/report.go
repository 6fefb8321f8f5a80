// Package analysis aggregates run results into per-sniff and per-file views.
package analysis

// Report contains pre-computed views of a run result.
// Computed once by Analyze and shared by renderers.
type Report struct {
	// BySniff groups violations by sniff code.
	BySniff []SniffAnalysis `json:"bySniff,omitempty"`

	// ByFile groups violations by file path. Files without violations are left out.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"totals"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"filesWithIssues"`
	Violations      int `json:"violations"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Fixable         int `json:"fixable"`
}

// HasIssues returns true if there are any violations.
func (t Totals) HasIssues() bool {
	return t.Violations > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path       string   `json:"path"`
	Violations int      `json:"violations"`
	Errors     int      `json:"errors"`
	Warnings   int      `json:"warnings"`
	Fixable    int      `json:"fixable"`
	Sniffs     []string `json:"sniffs,omitempty"`
}

// SniffAnalysis contains aggregated data for a single sniff.
type SniffAnalysis struct {
	Code       string   `json:"code"`
	Violations int      `json:"violations"`
	Errors     int      `json:"errors"`
	Warnings   int      `json:"warnings"`
	Fixable    int      `json:"fixable"`
	Files      []string `json:"files,omitempty"`
}
