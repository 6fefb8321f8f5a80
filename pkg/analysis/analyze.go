package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/runner"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

// relativePath converts an absolute path to one relative to workDir when it
// lies beneath it.
func relativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	rel, err := filepath.Rel(workDir, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return absPath
	}
	return rel
}

// tally is the count block shared by the file and sniff views.
type tally struct {
	violations, errors, warnings, fixable int
}

func (t *tally) add(v *sniff.Violation) {
	t.violations++
	switch v.Severity {
	case config.SeverityError:
		t.errors++
	case config.SeverityWarning:
		t.warnings++
	}
	if v.Fixable {
		t.fixable++
	}
}

type group struct {
	tally
	members map[string]struct{}
}

func addTo(groups map[string]*group, key, member string, v *sniff.Violation) {
	g, ok := groups[key]
	if !ok {
		g = &group{members: make(map[string]struct{})}
		groups[key] = g
	}
	g.add(v)
	g.members[member] = struct{}{}
}

// Analyze transforms a runner.Result into a Report in a single pass over
// the violations.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{}
	if result == nil {
		return report
	}

	var totals tally
	byFile := make(map[string]*group)
	bySniff := make(map[string]*group)

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Violations) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		path := relativePath(file.Path, opts.WorkingDir)
		for i := range file.Result.Violations {
			v := &file.Result.Violations[i]
			totals.add(v)
			addTo(byFile, path, v.Sniff, v)
			addTo(bySniff, v.Sniff, path, v)
		}
	}

	report.Totals.Violations = totals.violations
	report.Totals.Errors = totals.errors
	report.Totals.Warnings = totals.warnings
	report.Totals.Fixable = totals.fixable

	for _, code := range sortedKeys(bySniff, opts) {
		g := bySniff[code]
		report.BySniff = append(report.BySniff, SniffAnalysis{
			Code:       code,
			Violations: g.violations,
			Errors:     g.errors,
			Warnings:   g.warnings,
			Fixable:    g.fixable,
			Files:      slices.Sorted(maps.Keys(g.members)),
		})
	}
	for _, path := range sortedKeys(byFile, opts) {
		g := byFile[path]
		report.ByFile = append(report.ByFile, FileAnalysis{
			Path:       path,
			Violations: g.violations,
			Errors:     g.errors,
			Warnings:   g.warnings,
			Fixable:    g.fixable,
			Sniffs:     slices.Sorted(maps.Keys(g.members)),
		})
	}

	return report
}

// sortedKeys orders group keys by opts.SortBy, falling back to the key so
// output is deterministic.
func sortedKeys(groups map[string]*group, opts Options) []string {
	keys := slices.Collect(maps.Keys(groups))
	slices.SortFunc(keys, func(ka, kb string) int {
		a, b := groups[ka].tally, groups[kb].tally

		var result int
		switch opts.SortBy {
		case SortByAlpha:
			return cmp.Compare(ka, kb)
		case SortBySeverity:
			// Errors first, then warnings, then total; always highest first.
			result = cmp.Or(
				cmp.Compare(b.errors, a.errors),
				cmp.Compare(b.warnings, a.warnings),
				cmp.Compare(b.violations, a.violations),
			)
		default:
			result = cmp.Compare(a.violations, b.violations)
			if opts.SortDesc {
				result = -result
			}
		}
		return cmp.Or(result, cmp.Compare(ka, kb))
	})
	return keys
}
