package sniff

import (
	"fmt"

	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/token"
)

// Dispatcher invokes sniffs for each token of a file in index order.
type Dispatcher struct {
	listeners map[token.Kind][]*ResolvedSniff
}

// NewDispatcher maps token kinds to the sniffs that registered them, keeping
// the order of sniffs. Sniffs that do not support kind are left out.
func NewDispatcher(sniffs []*ResolvedSniff, kind filekind.Kind) *Dispatcher {
	d := &Dispatcher{listeners: make(map[token.Kind][]*ResolvedSniff)}
	for _, rs := range sniffs {
		if !Supports(rs.Sniff, kind) {
			continue
		}
		for _, k := range uniqueKinds(rs.Sniff.Register()) {
			d.listeners[k] = append(d.listeners[k], rs)
		}
	}
	return d
}

func uniqueKinds(kinds []token.Kind) []token.Kind {
	seen := make(map[token.Kind]struct{}, len(kinds))
	out := make([]token.Kind, 0, len(kinds))
	for _, k := range kinds {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Listeners returns the sniffs registered for kind, in dispatch order.
func (d *Dispatcher) Listeners(kind token.Kind) []*ResolvedSniff {
	return d.listeners[kind]
}

// Run dispatches every token of f. The first sniff failure stops the run and
// is returned as a *SniffError.
func (d *Dispatcher) Run(f *File) error {
	n := f.Tokens.Len()
	for idx := 0; idx < n; idx++ {
		listeners := d.listeners[f.Tokens.Kind(idx)]
		if len(listeners) == 0 {
			continue
		}

		resume := idx + 1
		for _, rs := range listeners {
			skip, err := d.invoke(rs, f, idx)
			if err != nil {
				return &SniffError{
					Sniff: rs.Sniff.Code(),
					Path:  f.Path,
					Index: idx,
					Line:  f.Tokens.Line(idx),
					Err:   err,
				}
			}
			resume = max(resume, skip)
		}
		idx = resume - 1
	}
	return nil
}

func (d *Dispatcher) invoke(rs *ResolvedSniff, f *File, idx int) (skip int, err error) {
	f.current = rs
	f.Fixer.SetSource(rs.Sniff.Code())
	defer func() {
		f.current = nil
		if r := recover(); r != nil {
			f.Fixer.Rollback()
			err = fmt.Errorf("%w: %v", ErrSniffPanic, r)
		}
	}()

	skip, err = rs.Sniff.Process(f, idx)
	if err == nil {
		err = f.takeErr()
	}
	if f.Fixer.InChangeset() {
		f.Fixer.Rollback()
		if err == nil {
			err = ErrUnclosedChangeset
		}
	}
	return skip, err
}
