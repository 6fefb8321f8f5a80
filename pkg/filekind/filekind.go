// Package filekind classifies files into the tokenizer variants gosniff supports,
// and guesses the language of embedded code snippets. Both use go-enry.
package filekind

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Kind names a tokenizer variant.
type Kind string

// Supported file kinds.
const (
	Unknown  Kind = ""
	PHP      Kind = "php"
	Markdown Kind = "markdown"
)

// All lists the supported kinds in a stable order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var All = []Kind{PHP, Markdown}

// enryNames maps go-enry language names to kinds.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryNames = map[string]Kind{
	"PHP":      PHP,
	"Hack":     PHP,
	"Markdown": Markdown,
}

// extensions maps file extensions enry does not resolve unambiguously.
//
//nolint:gochecknoglobals // Read-only lookup table.
var extensions = map[string]Kind{
	".php":      PHP,
	".phtml":    PHP,
	".inc":      PHP,
	".md":       Markdown,
	".markdown": Markdown,
	".mdown":    Markdown,
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Unknown {
		return "unknown"
	}
	return string(k)
}

// Parse maps a name such as "php" or "Markdown" to a Kind.
func Parse(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "php":
		return PHP, true
	case "markdown", "md":
		return Markdown, true
	default:
		return Unknown, false
	}
}

// Detect returns the file kind for path, consulting content when the
// extension is ambiguous. Unknown is returned for unsupported files.
func Detect(path string, content []byte) Kind {
	if kind, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return kind
	}

	if lang, safe := enry.GetLanguageByExtension(path); safe {
		if kind, ok := enryNames[lang]; ok {
			return kind
		}
	}

	// Extensionless scripts: `#!/usr/bin/env php`.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		if kind, ok := enryNames[lang]; ok {
			return kind
		}
	}

	if len(content) > 0 {
		if kind, ok := enryNames[enry.GetLanguage(filepath.Base(path), content)]; ok {
			return kind
		}
	}

	return Unknown
}
