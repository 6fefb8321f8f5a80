package sniff

import (
	"cmp"
	"slices"

	"github.com/yaklabco/gosniff/pkg/config"
)

// Violation is one reported problem.
type Violation struct {
	// Line and Column are 1-based.
	Line   int
	Column int

	// Sniff is the reporting sniff's code.
	Sniff string

	// Code is the local violation code, e.g. "MultipleClasses".
	Code string

	Message  string
	Severity config.Severity

	// Fixable is true when the sniff reported the violation as fixable.
	Fixable bool
}

// FullCode joins the sniff code and the local code.
func (v Violation) FullCode() string {
	if v.Code == "" {
		return v.Sniff
	}
	return v.Sniff + "." + v.Code
}

type violationKey struct {
	line    int
	code    string
	message string
}

// ViolationLog is an append-only record of violations for one pass.
type ViolationLog struct {
	entries []Violation
}

// NewViolationLog creates an empty log.
func NewViolationLog() *ViolationLog {
	return &ViolationLog{}
}

// Add records v. A later entry with the same line, full code and message as
// an earlier one is kept for Len but hidden from Entries.
func (l *ViolationLog) Add(v Violation) {
	l.entries = append(l.entries, v)
}

// Len returns the number of recorded entries, duplicates included.
func (l *ViolationLog) Len() int {
	return len(l.entries)
}

// Entries returns one violation per distinct (line, code, message), keeping
// the first recorded, sorted by line, column and code.
func (l *ViolationLog) Entries() []Violation {
	seen := make(map[violationKey]struct{}, len(l.entries))
	out := make([]Violation, 0, len(l.entries))
	for _, v := range l.entries {
		key := violationKey{line: v.Line, code: v.FullCode(), message: v.Message}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}

	slices.SortStableFunc(out, func(a, b Violation) int {
		return cmp.Or(
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.FullCode(), b.FullCode()),
		)
	})
	return out
}

// Counts tallies violations by severity and fixability.
type Counts struct {
	Errors   int
	Warnings int
	Fixable  int
}

// Total returns errors plus warnings.
func (c Counts) Total() int {
	return c.Errors + c.Warnings
}

// Count tallies vs.
func Count(vs []Violation) Counts {
	var c Counts
	for _, v := range vs {
		switch v.Severity {
		case config.SeverityError:
			c.Errors++
		case config.SeverityWarning:
			c.Warnings++
		}
		if v.Fixable {
			c.Fixable++
		}
	}
	return c
}
