package sniff

import (
	"context"
	"fmt"

	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/fixer"
	"github.com/yaklabco/gosniff/pkg/token"
	"github.com/yaklabco/gosniff/pkg/tokenizer"
)

// Tokenizer turns file content into tokens with resolved structural links.
// The same content and kind must always produce the same tokens.
type Tokenizer interface {
	Tokenize(ctx context.Context, content []byte, kind filekind.Kind) ([]token.Token, error)
}

// FileResult contains the results of one pass over a file.
type FileResult struct {
	// Path is the file path.
	Path string

	// Kind is the detected file kind.
	Kind filekind.Kind

	// Violations is the deduplicated, sorted violation list.
	Violations []Violation

	// Counts tallies Violations.
	Counts

	// FixCount is the number of token edits committed in this pass.
	FixCount int

	// Conflicts lists edits that replaced another sniff's edit.
	Conflicts []fixer.Conflict

	// Rendered is the content with this pass's edits applied, nil when the
	// pass committed no edit.
	Rendered []byte
}

// HasIssues returns true if any violations were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Violations) > 0
}

// Engine tokenizes content and dispatches sniffs over it.
type Engine struct {
	// Registry holds all available sniffs.
	Registry *Registry

	// Tokenizer tokenizes content. When nil, the bundled tokenizers are
	// used with the configured tab width.
	Tokenizer Tokenizer
}

// NewEngine creates a new Engine with the given registry and tokenizer.
func NewEngine(registry *Registry, tz Tokenizer) *Engine {
	return &Engine{
		Registry:  registry,
		Tokenizer: tz,
	}
}

// CheckContent runs a single pass over content. With fix set, sniffs may
// propose fixes and FileResult.Rendered carries the result.
func (e *Engine) CheckContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	fix bool,
) (*FileResult, error) {
	kind, err := DetectKind(path, content)
	if err != nil {
		return nil, err
	}

	sniffs, err := ResolveSniffs(e.Registry, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve sniffs: %w", err)
	}

	return e.runPass(ctx, passInput{
		path:       path,
		kind:       kind,
		content:    content,
		dispatcher: NewDispatcher(sniffs, kind),
		fixMode:    fix,
		tabWidth:   cfg.EffectiveTabWidth(),
	})
}

// DetectKind returns the file kind of path, or ErrFileKindUnsupported.
func DetectKind(path string, content []byte) (filekind.Kind, error) {
	kind := filekind.Detect(path, content)
	if kind == filekind.Unknown {
		return kind, fmt.Errorf("%w: %s", ErrFileKindUnsupported, path)
	}
	return kind, nil
}

type passInput struct {
	path       string
	kind       filekind.Kind
	content    []byte
	dispatcher *Dispatcher
	fixMode    bool
	tabWidth   int
}

func (e *Engine) tokenizer(tabWidth int) Tokenizer {
	if e.Tokenizer != nil {
		return e.Tokenizer
	}
	return tokenizer.New(tabWidth)
}

// runPass tokenizes once and dispatches every sniff over the tokens.
func (e *Engine) runPass(ctx context.Context, in passInput) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check cancelled: %w", err)
	}

	toks, err := e.tokenizer(in.tabWidth).Tokenize(ctx, in.content, in.kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	store, err := token.NewStore(toks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	f := NewFile(ctx, in.path, in.kind, store, in.fixMode, in.tabWidth)
	if err := in.dispatcher.Run(f); err != nil {
		return nil, err
	}

	violations := f.Violations().Entries()
	result := &FileResult{
		Path:       in.path,
		Kind:       in.kind,
		Violations: violations,
		Counts:     Count(violations),
		FixCount:   f.Fixer.FixCount(),
		Conflicts:  f.Fixer.Conflicts(),
	}
	if result.FixCount > 0 {
		result.Rendered = []byte(f.Fixer.Render())
	}

	return result, nil
}
