package fixer

import (
	"fmt"
	"strings"
)

// OpKind identifies a diff line.
type OpKind int

const (
	// OpEqual is a line present in both versions.
	OpEqual OpKind = iota

	// OpInsert is a line only in the fixed version.
	OpInsert

	// OpDelete is a line only in the original version.
	OpDelete
)

// Line is one line of a hunk, without its prefix or newline.
type Line struct {
	Op   OpKind
	Text string
}

// Hunk is a contiguous region of change with surrounding context.
// Start fields are 1-based.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// Diff is a line diff between a file and its fixed content.
type Diff struct {
	Path       string
	Hunks      []Hunk
	Insertions int
	Deletions  int
}

const diffContext = 3

// Compare builds the line diff between original and fixed.
// Returns nil when the two are identical.
func Compare(path, original, fixed string) *Diff {
	if original == fixed {
		return nil
	}

	a := lines(original)
	b := lines(fixed)
	script := editScript(a, b)

	d := &Diff{Path: path}
	for _, l := range script {
		switch l.Op {
		case OpInsert:
			d.Insertions++
		case OpDelete:
			d.Deletions++
		}
	}
	d.Hunks = hunks(script)
	return d
}

// lines splits text keeping a trailing newline marker on the last line, so
// that a change of final newline is visible as a changed line.
func lines(text string) []string {
	if text == "" {
		return nil
	}
	out := strings.SplitAfter(text, "\n")
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	for i, l := range out {
		out[i] = strings.TrimSuffix(l, "\n")
	}
	if !strings.HasSuffix(text, "\n") {
		out[len(out)-1] += noNewlineMarker
	}
	return out
}

const noNewlineMarker = "\n\\ No newline at end of file"

// editScript returns the shortest line script turning a into b. Common
// prefix and suffix are matched first; the middle uses a suffix LCS table.
func editScript(a, b []string) []Line {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	midA := a[prefix : len(a)-suffix]
	midB := b[prefix : len(b)-suffix]

	script := make([]Line, 0, len(a)+len(b))
	for _, l := range a[:prefix] {
		script = append(script, Line{Op: OpEqual, Text: l})
	}

	// table[i][j] is the LCS length of midA[i:] and midB[j:].
	table := make([][]int, len(midA)+1)
	for i := range table {
		table[i] = make([]int, len(midB)+1)
	}
	for i := len(midA) - 1; i >= 0; i-- {
		for j := len(midB) - 1; j >= 0; j-- {
			if midA[i] == midB[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(midA) || j < len(midB) {
		switch {
		case i < len(midA) && j < len(midB) && midA[i] == midB[j]:
			script = append(script, Line{Op: OpEqual, Text: midA[i]})
			i++
			j++
		case j < len(midB) && (i == len(midA) || table[i][j+1] > table[i+1][j]):
			script = append(script, Line{Op: OpInsert, Text: midB[j]})
			j++
		default:
			script = append(script, Line{Op: OpDelete, Text: midA[i]})
			i++
		}
	}

	for _, l := range a[len(a)-suffix:] {
		script = append(script, Line{Op: OpEqual, Text: l})
	}
	return script
}

// hunks groups the script into hunks, merging changes separated by at most
// twice the context size.
func hunks(script []Line) []Hunk {
	var out []Hunk

	oldLine, newLine := 1, 1
	for pos := 0; pos < len(script); {
		if script[pos].Op == OpEqual {
			oldLine++
			newLine++
			pos++
			continue
		}

		// Back up over leading context.
		lead := 0
		for lead < diffContext && pos-lead-1 >= 0 && script[pos-lead-1].Op == OpEqual {
			lead++
		}
		h := Hunk{
			OldStart: oldLine - lead,
			OldLines: lead,
			NewStart: newLine - lead,
			NewLines: lead,
			Lines:    append([]Line(nil), script[pos-lead:pos]...),
		}

		// Extend while the next change is near enough.
		end := pos
		for end < len(script) {
			if script[end].Op != OpEqual {
				end++
				continue
			}
			run := end
			for run < len(script) && script[run].Op == OpEqual {
				run++
			}
			if run == len(script) || run-end > 2*diffContext {
				break
			}
			end = run
		}

		tail := min(end+diffContext, len(script))
		for end < tail && script[end].Op == OpEqual {
			end++
		}

		for _, l := range script[pos:end] {
			h.Lines = append(h.Lines, l)
			switch l.Op {
			case OpEqual:
				h.OldLines++
				h.NewLines++
				oldLine++
				newLine++
			case OpDelete:
				h.OldLines++
				oldLine++
			case OpInsert:
				h.NewLines++
				newLine++
			}
		}
		// An empty side starts at the line before, as diff(1) prints it.
		if h.OldLines == 0 {
			h.OldStart--
		}
		if h.NewLines == 0 {
			h.NewStart--
		}
		out = append(out, h)
		pos = end
	}

	return out
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// Unified renders the diff in unified format with file headers.
func (d *Diff) Unified() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		for _, l := range h.Lines {
			b.WriteByte(prefixes[l.Op])
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

//nolint:gochecknoglobals // Read-only lookup table.
var prefixes = [...]byte{OpEqual: ' ', OpInsert: '+', OpDelete: '-'}
