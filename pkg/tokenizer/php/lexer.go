package php

import (
	"strings"

	"github.com/yaklabco/gosniff/pkg/token"
)

// keywords maps lower-cased reserved words to their kinds.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keywords = map[string]token.Kind{
	"abstract":   token.TokAbstract,
	"array":      token.TokArray,
	"as":         token.TokAs,
	"break":      token.TokBreak,
	"case":       token.TokCase,
	"catch":      token.TokCatch,
	"class":      token.TokClass,
	"const":      token.TokConst,
	"continue":   token.TokContinue,
	"default":    token.TokDefault,
	"do":         token.TokDo,
	"echo":       token.TokEcho,
	"else":       token.TokElse,
	"elseif":     token.TokElseIf,
	"extends":    token.TokExtends,
	"final":      token.TokFinal,
	"finally":    token.TokFinally,
	"fn":         token.TokFn,
	"for":        token.TokFor,
	"foreach":    token.TokForeach,
	"function":   token.TokFunction,
	"if":         token.TokIf,
	"implements": token.TokImplements,
	"instanceof": token.TokInstanceof,
	"interface":  token.TokInterface,
	"namespace":  token.TokNamespace,
	"new":        token.TokNew,
	"private":    token.TokPrivate,
	"protected":  token.TokProtected,
	"public":     token.TokPublic,
	"return":     token.TokReturn,
	"static":     token.TokStatic,
	"switch":     token.TokSwitch,
	"throw":      token.TokThrow,
	"trait":      token.TokTrait,
	"try":        token.TokTry,
	"use":        token.TokUse,
	"while":      token.TokWhile,
	"true":       token.TokTrue,
	"false":      token.TokFalse,
	"null":       token.TokNull,
}

// operators lists multi-byte operators, longest first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var operators = []string{
	"<=>", "===", "!==", "**=", "...", "??=", "<<=", ">>=", "?->",
	"==", "!=", "<>", "<=", ">=", "&&", "||", "++", "--", "+=", "-=", "*=", "/=",
	".=", "%=", "&=", "|=", "^=", "<<", ">>", "??", "**", "->", "=>", "::",
}

// punctuation maps single bytes with a dedicated kind.
//
//nolint:gochecknoglobals // Read-only lookup table.
var punctuation = map[byte]token.Kind{
	'(':  token.TokOpenParenthesis,
	')':  token.TokCloseParenthesis,
	'{':  token.TokOpenCurlyBracket,
	'}':  token.TokCloseCurlyBracket,
	'[':  token.TokOpenSquareBracket,
	']':  token.TokCloseSquareBracket,
	';':  token.TokSemicolon,
	',':  token.TokComma,
	':':  token.TokColon,
	'=':  token.TokEqual,
	'.':  token.TokStringConcat,
	'?':  token.TokInlineThen,
	'\\': token.TokNSSeparator,
}

// lexer splits PHP source into classified spans. It never drops or rewrites
// input bytes: concatenating the emitted contents yields the source.
type lexer struct {
	src    string
	pos    int
	inPHP  bool
	tokens []token.Token
}

func (l *lexer) emit(kind token.Kind, end int) {
	l.tokens = append(l.tokens, token.New(kind, l.src[l.pos:end]))
	l.pos = end
}

func (l *lexer) run() []token.Token {
	for l.pos < len(l.src) {
		if l.inPHP {
			l.lexCode()
		} else {
			l.lexInlineHTML()
		}
	}
	return l.tokens
}

// lexInlineHTML emits text up to the next open tag, then the open tag itself.
func (l *lexer) lexInlineHTML() {
	rest := l.src[l.pos:]
	idx := strings.Index(rest, "<?")
	if idx < 0 {
		l.emit(token.TokInlineHTML, len(l.src))
		return
	}
	if idx > 0 {
		l.emit(token.TokInlineHTML, l.pos+idx)
		rest = l.src[l.pos:]
	}

	l.inPHP = true
	switch {
	case len(rest) >= 5 && strings.EqualFold(rest[:5], "<?php"):
		end := l.pos + 5
		// The open tag owns exactly one following whitespace character (or CRLF).
		switch {
		case strings.HasPrefix(l.src[end:], "\r\n"):
			end += 2
		case end < len(l.src) && (l.src[end] == ' ' || l.src[end] == '\t' || l.src[end] == '\n'):
			end++
		}
		l.emit(token.TokOpenTag, end)
	case strings.HasPrefix(rest, "<?="):
		l.emit(token.TokOpenTagWithEcho, l.pos+3)
	default:
		l.emit(token.TokOpenTag, l.pos+2)
	}
}

func (l *lexer) lexCode() {
	c := l.src[l.pos]
	rest := l.src[l.pos:]

	switch {
	case strings.HasPrefix(rest, "?>"):
		end := l.pos + 2
		if strings.HasPrefix(l.src[end:], "\r\n") {
			end += 2
		} else if end < len(l.src) && l.src[end] == '\n' {
			end++
		}
		l.emit(token.TokCloseTag, end)
		l.inPHP = false
	case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v':
		l.lexWhitespace()
	case c == '#' || strings.HasPrefix(rest, "//"):
		l.lexLineComment()
	case strings.HasPrefix(rest, "/*"):
		l.lexBlockComment()
	case c == '$' && l.pos+1 < len(l.src) && isIdentStart(l.src[l.pos+1]):
		l.emit(token.TokVariable, l.scanIdent(l.pos+1))
	case c == '\'' || c == '"' || c == '`':
		l.emit(token.TokConstantEncapsedString, l.scanQuoted(c))
	case strings.HasPrefix(rest, "<<<"):
		l.emit(token.TokConstantEncapsedString, l.scanHeredoc())
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		l.lexNumber()
	case isIdentStart(c):
		end := l.scanIdent(l.pos)
		kind := token.TokString
		if kw, ok := keywords[strings.ToLower(l.src[l.pos:end])]; ok {
			kind = kw
		}
		l.emit(kind, end)
	default:
		l.lexOperator()
	}
}

// lexWhitespace emits a whitespace run ending at (and including) the first newline.
func (l *lexer) lexWhitespace() {
	end := l.pos
	for end < len(l.src) {
		c := l.src[end]
		if c == '\n' {
			end++
			break
		}
		if c != ' ' && c != '\t' && c != '\r' && c != '\f' && c != '\v' {
			break
		}
		end++
	}
	l.emit(token.TokWhitespace, end)
}

// lexLineComment emits a // or # comment. The newline is left for the
// following whitespace token; a close tag also ends the comment.
func (l *lexer) lexLineComment() {
	end := l.pos
	for end < len(l.src) {
		if l.src[end] == '\n' || (l.src[end] == '\r' && strings.HasPrefix(l.src[end:], "\r\n")) {
			break
		}
		if strings.HasPrefix(l.src[end:], "?>") {
			break
		}
		end++
	}
	l.emit(token.TokComment, end)
}

func (l *lexer) lexBlockComment() {
	kind := token.TokComment
	rest := l.src[l.pos:]
	if strings.HasPrefix(rest, "/**") && !strings.HasPrefix(rest, "/**/") {
		kind = token.TokDocComment
	}

	idx := strings.Index(rest[2:], "*/")
	if idx < 0 {
		l.emit(kind, len(l.src))
		return
	}
	l.emit(kind, l.pos+2+idx+2)
}

func (l *lexer) scanIdent(start int) int {
	end := start
	for end < len(l.src) && isIdentPart(l.src[end]) {
		end++
	}
	return end
}

// scanQuoted returns the end of a quoted string, honouring backslash escapes.
// Unterminated strings run to the end of input.
func (l *lexer) scanQuoted(quote byte) int {
	end := l.pos + 1
	for end < len(l.src) {
		switch l.src[end] {
		case '\\':
			end += 2
			continue
		case quote:
			return end + 1
		}
		end++
	}
	return len(l.src)
}

// scanHeredoc returns the end of a heredoc or nowdoc, closing identifier included.
func (l *lexer) scanHeredoc() int {
	p := l.pos + 3
	for p < len(l.src) && (l.src[p] == ' ' || l.src[p] == '\t') {
		p++
	}
	if p < len(l.src) && (l.src[p] == '\'' || l.src[p] == '"') {
		p++
	}
	nameStart := p
	p = l.scanIdent(p)
	name := l.src[nameStart:p]
	if name == "" {
		// Not a heredoc after all; treat "<<<" as an operator.
		return l.pos + 3
	}

	nl := strings.IndexByte(l.src[p:], '\n')
	if nl < 0 {
		return len(l.src)
	}
	p += nl + 1

	for p < len(l.src) {
		lineEnd := strings.IndexByte(l.src[p:], '\n')
		line := l.src[p:]
		if lineEnd >= 0 {
			line = l.src[p : p+lineEnd]
		}
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, name) &&
			(len(trimmed) == len(name) || !isIdentPart(trimmed[len(name)])) {
			return p + (len(line) - len(trimmed)) + len(name)
		}
		if lineEnd < 0 {
			break
		}
		p += lineEnd + 1
	}
	return len(l.src)
}

func (l *lexer) lexNumber() {
	end := l.pos
	src := l.src
	kind := token.TokLNumber

	if strings.HasPrefix(src[end:], "0x") || strings.HasPrefix(src[end:], "0X") ||
		strings.HasPrefix(src[end:], "0b") || strings.HasPrefix(src[end:], "0B") {
		end += 2
		for end < len(src) && (isHexDigit(src[end]) || src[end] == '_') {
			end++
		}
		l.emit(kind, end)
		return
	}

	for end < len(src) && (isDigit(src[end]) || src[end] == '_') {
		end++
	}
	if end < len(src) && src[end] == '.' && (end+1 >= len(src) || src[end+1] != '.') {
		kind = token.TokDNumber
		end++
		for end < len(src) && (isDigit(src[end]) || src[end] == '_') {
			end++
		}
	}
	if end < len(src) && (src[end] == 'e' || src[end] == 'E') {
		exp := end + 1
		if exp < len(src) && (src[exp] == '+' || src[exp] == '-') {
			exp++
		}
		if exp < len(src) && isDigit(src[exp]) {
			kind = token.TokDNumber
			end = exp
			for end < len(src) && isDigit(src[end]) {
				end++
			}
		}
	}
	l.emit(kind, end)
}

func (l *lexer) lexOperator() {
	rest := l.src[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			kind := token.TokOperator
			switch op {
			case "::":
				kind = token.TokDoubleColon
			case "=>":
				kind = token.TokDoubleArrow
			case "->", "?->":
				kind = token.TokObjectOperator
			}
			l.emit(kind, l.pos+len(op))
			return
		}
	}

	if kind, ok := punctuation[rest[0]]; ok {
		l.emit(kind, l.pos+1)
		return
	}

	// Anything else is a single-rune operator; keep multi-byte runes whole.
	end := l.pos + 1
	for end < len(l.src) && !utf8Start(l.src[end]) {
		end++
	}
	l.emit(token.TokOperator, end)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func utf8Start(c byte) bool { return c&0xC0 != 0x80 }

