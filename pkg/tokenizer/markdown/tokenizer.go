// Package markdown tokenizes Markdown documents line by line into the gosniff
// token model. goldmark decides which lines are headings and which are code;
// fenced code blocks become scopes owned by their opening fence.
package markdown

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gosniff/pkg/token"
)

// lineClass is what goldmark determined a source line to be.
type lineClass uint8

const (
	lineText lineClass = iota
	lineHeading
	lineCode
)

// Tokenizer converts Markdown source to tokens.
type Tokenizer struct {
	tabWidth int
	md       goldmark.Markdown
}

// New creates a Markdown tokenizer with GFM parsing.
func New(tabWidth int) *Tokenizer {
	if tabWidth < 1 {
		tabWidth = 4
	}
	return &Tokenizer{
		tabWidth: tabWidth,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Tokenize splits content into per-line tokens. Each line yields optional
// leading whitespace, a body token classified by goldmark, and a whitespace
// token holding trailing blanks plus the line ending.
func (t *Tokenizer) Tokenize(ctx context.Context, content []byte) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tokenize cancelled: %w", err)
	}

	starts := lineStarts(content)
	classes := t.classify(content, starts)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tokenize cancelled: %w", err)
	}

	var toks []token.Token
	src := string(content)
	for line, start := range starts {
		end := len(src)
		if line+1 < len(starts) {
			end = starts[line+1]
		}
		toks = appendLine(toks, src[start:end], classes[line])
	}

	pairFences(toks)
	token.AssignPositions(toks, t.tabWidth)
	return toks, nil
}

// classify walks the goldmark AST and labels heading and code lines.
func (t *Tokenizer) classify(content []byte, starts []int) []lineClass {
	classes := make([]lineClass, len(starts))
	doc := t.md.Parser().Parse(text.NewReader(content))

	mark := func(lines *text.Segments, class lineClass) {
		for i := range lines.Len() {
			seg := lines.At(i)
			if line := lineOf(starts, seg.Start); line >= 0 {
				classes[line] = class
			}
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			mark(node.Lines(), lineHeading)
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			mark(node.Lines(), lineCode)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return classes
}

// appendLine tokenizes one source line (newline included).
func appendLine(toks []token.Token, line string, class lineClass) []token.Token {
	body := strings.TrimRight(line, "\r\n")
	ending := line[len(body):]

	trimmed := strings.TrimRight(body, " \t")
	trailing := body[len(trimmed):] + ending

	core := strings.TrimLeft(trimmed, " \t")
	leading := trimmed[:len(trimmed)-len(core)]

	if core == "" {
		// Blank line: a single whitespace token.
		if line != "" {
			toks = append(toks, token.New(token.TokWhitespace, line))
		}
		return toks
	}

	if leading != "" {
		toks = append(toks, token.New(token.TokWhitespace, leading))
	}

	kind := token.TokMDText
	switch {
	case class == lineCode:
		kind = token.TokMDCode
	case isFence(core, leading):
		kind = token.TokMDCodeFence
	case class == lineHeading:
		kind = token.TokMDHeading
	}
	toks = append(toks, token.New(kind, core))

	if trailing != "" {
		toks = append(toks, token.New(token.TokWhitespace, trailing))
	}
	return toks
}

// isFence reports whether a non-code line opens or closes a fenced block.
func isFence(core, leading string) bool {
	if len(leading) > 3 || strings.Contains(leading, "\t") {
		return false
	}
	return strings.HasPrefix(core, "```") || strings.HasPrefix(core, "~~~")
}

// pairFences links fences in order as opener/closer scopes and marks every
// token between them with the opener's condition. A trailing unclosed fence
// stays unlinked.
func pairFences(toks []token.Token) {
	opener := token.None
	for i := range toks {
		if toks[i].Kind != token.TokMDCodeFence {
			continue
		}
		if opener == token.None || !closes(toks[opener].Content, toks[i].Content) {
			if opener == token.None {
				opener = i
			}
			continue
		}

		for _, idx := range []int{opener, i} {
			toks[idx].ScopeCondition = opener
			toks[idx].ScopeOpener = opener
			toks[idx].ScopeCloser = i
		}
		cond := []token.Condition{{Index: opener, Kind: token.TokMDCodeFence}}
		for inner := opener + 1; inner < i; inner++ {
			toks[inner].Conditions = cond
		}
		opener = token.None
	}
}

// closes reports whether fence closes a block opened by open: same character,
// at least as long, and no info string.
func closes(open, fence string) bool {
	char := open[0]
	run := len(open) - len(strings.TrimLeft(open, string(char)))
	closeRun := len(fence) - len(strings.TrimLeft(fence, string(char)))
	return fence[0] == char && closeRun >= run && strings.TrimSpace(fence[closeRun:]) == ""
}

// lineStarts returns the byte offset of each line start. An empty document has no lines.
func lineStarts(content []byte) []int {
	if len(content) == 0 {
		return nil
	}
	starts := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf returns the 0-based line containing offset.
func lineOf(starts []int, offset int) int {
	return sort.SearchInts(starts, offset+1) - 1
}
