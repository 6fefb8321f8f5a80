package sniff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

func TestViolation_FullCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A.B.C.Found", sniff.Violation{Sniff: "A.B.C", Code: "Found"}.FullCode())
	assert.Equal(t, "A.B.C", sniff.Violation{Sniff: "A.B.C"}.FullCode())
}

func TestViolationLog_Entries(t *testing.T) {
	t.Parallel()

	log := sniff.NewViolationLog()
	log.Add(sniff.Violation{Line: 3, Column: 1, Sniff: "A.B.C", Code: "X", Message: "m", Severity: config.SeverityError})
	log.Add(sniff.Violation{Line: 1, Column: 5, Sniff: "A.B.C", Code: "X", Message: "m", Severity: config.SeverityError})
	log.Add(sniff.Violation{Line: 1, Column: 2, Sniff: "A.B.D", Code: "Y", Message: "n", Severity: config.SeverityWarning})
	// Same line, code and message as the second entry: a duplicate.
	log.Add(sniff.Violation{Line: 1, Column: 9, Sniff: "A.B.C", Code: "X", Message: "m", Severity: config.SeverityWarning})
	// Same line and code with another message is kept.
	log.Add(sniff.Violation{Line: 1, Column: 5, Sniff: "A.B.C", Code: "X", Message: "other", Severity: config.SeverityError})

	assert.Equal(t, 5, log.Len())

	entries := log.Entries()
	assert.Equal(t, []sniff.Violation{
		{Line: 1, Column: 2, Sniff: "A.B.D", Code: "Y", Message: "n", Severity: config.SeverityWarning},
		{Line: 1, Column: 5, Sniff: "A.B.C", Code: "X", Message: "m", Severity: config.SeverityError},
		{Line: 1, Column: 5, Sniff: "A.B.C", Code: "X", Message: "other", Severity: config.SeverityError},
		{Line: 3, Column: 1, Sniff: "A.B.C", Code: "X", Message: "m", Severity: config.SeverityError},
	}, entries)
}

func TestCount(t *testing.T) {
	t.Parallel()

	counts := sniff.Count([]sniff.Violation{
		{Severity: config.SeverityError, Fixable: true},
		{Severity: config.SeverityError},
		{Severity: config.SeverityWarning, Fixable: true},
	})
	assert.Equal(t, sniff.Counts{Errors: 2, Warnings: 1, Fixable: 2}, counts)
	assert.Equal(t, 3, counts.Total())
}
