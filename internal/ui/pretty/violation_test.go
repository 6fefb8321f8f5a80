package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gosniff/internal/ui/pretty"
	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

func TestFormatViolation(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	v := &sniff.Violation{
		Line:     3,
		Column:   6,
		Sniff:    "Generic.Arrays.DisallowLongArraySyntax",
		Code:     "Found",
		Message:  "Short array syntax must be used to define arrays",
		Severity: config.SeverityError,
		Fixable:  true,
	}

	tests := []struct {
		name string
		opts pretty.ViolationFormat
		want string
	}{
		{
			name: "full code",
			opts: pretty.ViolationFormat{CodeFormat: config.CodeFormatFull},
			want: "  a.php:3:6  error  Short array syntax must be used to define arrays  " +
				"(Generic.Arrays.DisallowLongArraySyntax.Found) [fixable]\n",
		},
		{
			name: "local code",
			opts: pretty.ViolationFormat{CodeFormat: config.CodeFormatLocal},
			want: "  a.php:3:6  error  Short array syntax must be used to define arrays  (Found) [fixable]\n",
		},
		{
			name: "source context",
			opts: pretty.ViolationFormat{CodeFormat: config.CodeFormatSniff, SourceLine: "$a = array(1);\n"},
			want: "  a.php:3:6  error  Short array syntax must be used to define arrays  " +
				"(Generic.Arrays.DisallowLongArraySyntax) [fixable]\n" +
				"        $a = array(1);\n" +
				"             ^\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatViolation("a.php", v, tt.opts))
		})
	}
}

func TestFormatSourceContext_Truncates(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatSourceContext("abcdefghijklmnopqrstuvwxyz", 30, 18)
	assert.Equal(t, "        abcdefghi…\n", got)
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.php (1 issue)", styles.FormatFileHeader("a.php", 1, ""))
	assert.Equal(t, "a.php (2 issues) not fully fixed", styles.FormatFileHeader("a.php", 2, "not fully fixed"))
	assert.Equal(t, "a.php", styles.FormatFileHeader("a.php", 0, ""))
}
