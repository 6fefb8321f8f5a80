package sniffs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/sniff/sniffs"
)

func endNewline() sniff.Sniff { return sniffs.NewEndFileNewlineSniff() }

func TestEndFileNewline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		input    string
		wantCode string
		wantFix  string
	}{
		{
			name:    "php single newline",
			path:    "a.php",
			input:   "<?php\n$a = 1;\n",
			wantFix: "<?php\n$a = 1;\n",
		},
		{
			name:     "php missing newline",
			path:     "a.php",
			input:    "<?php\n$a = 1;",
			wantCode: "NotFound",
			wantFix:  "<?php\n$a = 1;\n",
		},
		{
			name:     "php extra newlines",
			path:     "a.php",
			input:    "<?php\nclass A {\n}\n\n\n",
			wantCode: "TooMany",
			wantFix:  "<?php\nclass A {\n}\n",
		},
		{
			name:    "php close tag",
			path:    "a.php",
			input:   "<?php\necho 1;\n?>\n",
			wantFix: "<?php\necho 1;\n?>\n",
		},
		{
			name:     "php inline html with extra newlines",
			path:     "a.php",
			input:    "<?php echo 1; ?>\nhello\n\n\n",
			wantCode: "TooMany",
			wantFix:  "<?php echo 1; ?>\nhello\n",
		},
		{
			name:     "markdown missing newline",
			path:     "a.md",
			input:    "# Title",
			wantCode: "NotFound",
			wantFix:  "# Title\n",
		},
		{
			name:     "markdown blank lines",
			path:     "a.md",
			input:    "# Title\n\nText\n\n\n",
			wantCode: "TooMany",
			wantFix:  "# Title\n\nText\n",
		},
		{
			name:    "markdown code block",
			path:    "a.md",
			input:   "```php\necho 1;\n```\n",
			wantFix: "```php\necho 1;\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			check := runSniffs(t, tt.path, tt.input, false, nil, endNewline)
			if tt.wantCode == "" {
				assert.Empty(t, check.Violations)
			} else {
				require.Len(t, check.Violations, 1)
				assert.Equal(t, tt.wantCode, check.Violations[0].Code)
			}

			fix := runSniffs(t, tt.path, tt.input, true, nil, endNewline)
			assert.Equal(t, tt.wantFix, fixed(fix, tt.input))
			assert.Empty(t, fix.Violations)
		})
	}
}

func TestEndFileNewline_ReportsOnLastLine(t *testing.T) {
	t.Parallel()

	result := runSniffs(t, "a.php", "<?php\n$a = 1;\n\n\n", false, nil, endNewline)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "Expected 1 newline at end of file; 3 found", result.Violations[0].Message)
	assert.Equal(t, 4, result.Violations[0].Line)
}

func TestEndFileNewline_SeesEarlierEdits(t *testing.T) {
	t.Parallel()

	input := "<?php\n$a = 1;\n \n"
	result := runSniffs(t, "a.php", input, true, nil, rewriteWhitespace(" \n", ""), endNewline)

	assert.Equal(t, "<?php\n$a = 1;\n", fixed(result, input))
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 1, result.TotalEdits)
	assert.Equal(t, sniff.StatusConverged, result.Status)
}
