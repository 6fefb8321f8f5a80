package filekind

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// SnippetText is returned when a snippet's language cannot be determined.
const SnippetText = "text"

// snippetCandidates bounds the enry classifier to languages seen in docs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var snippetCandidates = []string{
	"PHP", "Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// snippetRule matches a highly indicative pattern before the classifier runs.
type snippetRule struct {
	lang  string
	match func(raw, trimmed []byte, text string) bool
}

// snippetRules are checked in order of specificity.
//
//nolint:gochecknoglobals // Read-only lookup table.
var snippetRules = []snippetRule{
	{"php", func(_, trimmed []byte, text string) bool {
		return bytes.HasPrefix(trimmed, []byte("<?php")) ||
			(strings.Contains(text, "$this->") && strings.Contains(text, ";"))
	}},
	{"go", func(_, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(_, _ []byte, text string) bool {
		if strings.Contains(text, "def ") && strings.Contains(text, "):") {
			return true
		}
		return strings.Contains(text, "__name__") ||
			(strings.HasPrefix(strings.TrimSpace(text), "import ") && !strings.Contains(text, "import ("))
	}},
	{"html", func(_, trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(marker)) {
				return true
			}
		}
		return false
	}},
	{"json", func(_, trimmed []byte, _ string) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(raw, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(bytes.Contains(raw, []byte("\nFROM ")) && bytes.Contains(raw, []byte("\nRUN ")))
	}},
	{"sql", func(_, _ []byte, text string) bool {
		upper := strings.ToUpper(strings.TrimSpace(text))
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{"javascript", func(_, _ []byte, text string) bool {
		return strings.Contains(text, "=>") || strings.Contains(text, "console.log") ||
			strings.Contains(text, "const ")
	}},
	{"yaml", func(raw, _ []byte, _ string) bool {
		return yamlPairs(raw) >= 2
	}},
}

// DetectSnippet guesses the fence tag for a code snippet, e.g. "php" or "bash".
// SnippetText is returned when detection is not confident.
func DetectSnippet(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return SnippetText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	trimmed := bytes.TrimSpace(content)
	text := string(content)
	for _, rule := range snippetRules {
		if rule.match(content, trimmed, text) {
			return rule.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, snippetCandidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return SnippetText
}

// yamlPairs counts lines that look like `key: value` or `- item`.
func yamlPairs(content []byte) int {
	count := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({\"$;") {
			count++
		}
	}
	return count
}

// fenceTag converts an enry language name to a fence info string.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
