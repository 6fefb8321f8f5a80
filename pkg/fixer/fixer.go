// Package fixer implements the changeset engine sniffs use to propose edits.
//
// A Fixer is created for one Token Store and one fix pass. It never mutates
// the store: edits accumulate in a pending table keyed by token index, reads
// go through that table, and Render produces the text for the next pass.
package fixer

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gosniff/internal/logging"
	"github.com/yaklabco/gosniff/pkg/token"
)

// Sentinel errors for changeset state violations.
var (
	ErrChangesetOpen = errors.New("changeset already open")
	ErrNoChangeset   = errors.New("no changeset open")
)

// Conflict records a committed edit that replaced another sniff's pending edit
// for the same token within one pass. The later commit always wins.
type Conflict struct {
	Index          int
	Previous       string
	Replacement    string
	PreviousSource string
	Source         string
}

// Fixer is a write buffer and read-through cache over one Token Store.
// It is not safe for concurrent use; the dispatcher drives it from one goroutine.
type Fixer struct {
	store  *token.Store
	logger *log.Logger

	pending map[int]string
	sources map[int]string

	// changeset is the open edit buffer, nil when idle.
	changeset map[int]string

	source    string
	fixCount  int
	conflicts []Conflict
}

// New creates a Fixer for store. Conflicts are logged at debug level to the
// logger carried by ctx.
func New(ctx context.Context, store *token.Store) *Fixer {
	return &Fixer{
		store:   store,
		logger:  logging.FromContext(ctx),
		pending: make(map[int]string),
		sources: make(map[int]string),
	}
}

// Store returns the Token Store the Fixer edits.
func (f *Fixer) Store() *token.Store {
	return f.store
}

// SetSource names the sniff whose edits follow. Used for conflict reports.
func (f *Fixer) SetSource(code string) {
	f.source = code
}

// InChangeset reports whether a changeset is open.
func (f *Fixer) InChangeset() bool {
	return f.changeset != nil
}

// BeginChangeset opens a new, empty changeset.
// Changesets do not nest.
func (f *Fixer) BeginChangeset() error {
	if f.changeset != nil {
		return fmt.Errorf("begin changeset: %w", ErrChangesetOpen)
	}
	f.changeset = make(map[int]string)
	return nil
}

// EndChangeset commits the open changeset into the pending table.
func (f *Fixer) EndChangeset() error {
	if f.changeset == nil {
		return fmt.Errorf("end changeset: %w", ErrNoChangeset)
	}

	buffered := f.changeset
	f.changeset = nil

	for _, idx := range slices.Sorted(maps.Keys(buffered)) {
		f.commit(idx, buffered[idx])
	}
	return nil
}

// Rollback discards the open changeset. It is a no-op when idle.
func (f *Fixer) Rollback() {
	f.changeset = nil
}

// ReplaceToken sets the content of the token at idx. Inside a changeset the
// edit is buffered; otherwise it commits immediately.
func (f *Fixer) ReplaceToken(idx int, content string) error {
	if !f.store.Valid(idx) {
		return fmt.Errorf("replace token %d of %d: %w", idx, f.store.Len(), token.ErrIndexOutOfRange)
	}

	if f.changeset != nil {
		f.changeset[idx] = content
		return nil
	}

	f.commit(idx, content)
	return nil
}

// AddContent appends text to the current content of the token at idx.
func (f *Fixer) AddContent(idx int, text string) error {
	current, err := f.TokenContent(idx)
	if err != nil {
		return err
	}
	return f.ReplaceToken(idx, current+text)
}

// AddContentBefore prepends text to the current content of the token at idx.
func (f *Fixer) AddContentBefore(idx int, text string) error {
	current, err := f.TokenContent(idx)
	if err != nil {
		return err
	}
	return f.ReplaceToken(idx, text+current)
}

// AddNewline appends a newline to the token at idx.
func (f *Fixer) AddNewline(idx int) error {
	return f.AddContent(idx, "\n")
}

// AddNewlineBefore prepends a newline to the token at idx.
func (f *Fixer) AddNewlineBefore(idx int) error {
	return f.AddContentBefore(idx, "\n")
}

// TokenContent returns the in-progress content of the token at idx: the open
// changeset's value, else the pending value, else the original content.
func (f *Fixer) TokenContent(idx int) (string, error) {
	if !f.store.Valid(idx) {
		return "", fmt.Errorf("token content %d of %d: %w", idx, f.store.Len(), token.ErrIndexOutOfRange)
	}
	if content, ok := f.changeset[idx]; ok {
		return content, nil
	}
	return f.committedContent(idx), nil
}

func (f *Fixer) committedContent(idx int) string {
	if content, ok := f.pending[idx]; ok {
		return content
	}
	return f.store.Content(idx)
}

func (f *Fixer) commit(idx int, content string) {
	current := f.committedContent(idx)
	if content == current {
		return
	}

	if prevSource, ok := f.sources[idx]; ok && prevSource != f.source {
		conflict := Conflict{
			Index:          idx,
			Previous:       current,
			Replacement:    content,
			PreviousSource: prevSource,
			Source:         f.source,
		}
		f.conflicts = append(f.conflicts, conflict)
		f.logger.Debug("fix conflict, later edit wins",
			logging.FieldIndex, idx,
			logging.FieldLine, f.store.Line(idx),
			logging.FieldSniff, f.source,
			logging.FieldPrevious, prevSource,
		)
	}

	f.pending[idx] = content
	f.sources[idx] = f.source
	f.fixCount++
}

// FixCount returns the number of committed token edits in this pass.
func (f *Fixer) FixCount() int {
	return f.fixCount
}

// Conflicts returns the conflicts recorded in this pass, in commit order.
func (f *Fixer) Conflicts() []Conflict {
	return slices.Clone(f.conflicts)
}

// Pending returns a copy of the pending table.
func (f *Fixer) Pending() map[int]string {
	return maps.Clone(f.pending)
}

// Render returns the file text with every pending edit applied.
// The open changeset, if any, is not included.
func (f *Fixer) Render() string {
	var b strings.Builder
	for idx, tok := range f.store.All() {
		if content, ok := f.pending[idx]; ok {
			b.WriteString(content)
			continue
		}
		b.WriteString(tok.Content)
	}
	return b.String()
}
