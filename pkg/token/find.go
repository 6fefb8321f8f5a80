package token

// Matcher selects tokens during a search.
type Matcher interface {
	Match(tok Token) bool
}

// MatchFunc adapts a function to the Matcher interface.
type MatchFunc func(tok Token) bool

// Match implements Matcher.
func (f MatchFunc) Match(tok Token) bool {
	return f(tok)
}

// Kinds returns a matcher for the given kinds.
func Kinds(kinds ...Kind) Matcher {
	return NewKindSet(kinds...)
}

// findOptions holds the resolved search options.
type findOptions struct {
	end       int
	hasEnd    bool
	exclude   bool
	content   string
	checkText bool
	local     bool
}

// FindOption configures FindNext and FindPrevious.
type FindOption func(*findOptions)

// Until bounds the search. The bound is exclusive: FindNext stops before end,
// FindPrevious stops after end.
func Until(end int) FindOption {
	return func(o *findOptions) {
		o.end = end
		o.hasEnd = true
	}
}

// Excluding inverts the matcher: the first token that does NOT match is returned.
// This is the usual way to skip whitespace and comments with EmptyKinds.
func Excluding() FindOption {
	return func(o *findOptions) {
		o.exclude = true
	}
}

// WithContent additionally requires the token content to equal value.
func WithContent(value string) FindOption {
	return func(o *findOptions) {
		o.content = value
		o.checkText = true
	}
}

// Local stops the search at the end of the current statement.
func Local() FindOption {
	return func(o *findOptions) {
		o.local = true
	}
}

func resolveFindOptions(opts []FindOption) findOptions {
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o findOptions) accepts(m Matcher, tok Token) bool {
	if m.Match(tok) == o.exclude {
		return false
	}
	if o.checkText && tok.Content != o.content {
		return false
	}
	return true
}

// FindNext scans forward from start (inclusive) and returns the index of the
// first token accepted by m. Nothing is skipped implicitly.
func (s *Store) FindNext(m Matcher, start int, opts ...FindOption) (int, bool) {
	o := resolveFindOptions(opts)

	end := len(s.tokens)
	if o.hasEnd && o.end < end {
		end = o.end
	}
	if start < 0 {
		start = 0
	}

	for idx := start; idx < end; idx++ {
		tok := s.tokens[idx]
		if o.accepts(m, tok) {
			return idx, true
		}
		if o.local && StatementEnds.Has(tok.Kind) {
			break
		}
	}
	return None, false
}

// FindPrevious scans backward from start (inclusive) and returns the index of
// the first token accepted by m.
func (s *Store) FindPrevious(m Matcher, start int, opts ...FindOption) (int, bool) {
	o := resolveFindOptions(opts)

	end := -1
	if o.hasEnd && o.end > end {
		end = o.end
	}
	if start >= len(s.tokens) {
		start = len(s.tokens) - 1
	}

	for idx := start; idx > end; idx-- {
		tok := s.tokens[idx]
		if o.local && idx != start && StatementEnds.Has(tok.Kind) {
			break
		}
		if o.accepts(m, tok) {
			return idx, true
		}
	}
	return None, false
}

// FindNextNonEmpty returns the first token at or after start that is not
// whitespace or a comment.
func (s *Store) FindNextNonEmpty(start int, opts ...FindOption) (int, bool) {
	return s.FindNext(EmptyKinds, start, append(opts, Excluding())...)
}

// FindPreviousNonEmpty returns the first token at or before start that is not
// whitespace or a comment.
func (s *Store) FindPreviousNonEmpty(start int, opts ...FindOption) (int, bool) {
	return s.FindPrevious(EmptyKinds, start, append(opts, Excluding())...)
}

// FindEndOfStatement returns the index of the token ending the statement that
// contains start. Parenthesised, bracketed and scoped regions are jumped over.
// When no terminator is found the last token is returned.
func (s *Store) FindEndOfStatement(start int) int {
	if len(s.tokens) == 0 {
		return None
	}
	if start < 0 {
		start = 0
	}

	for idx := start; idx < len(s.tokens); idx++ {
		tok := s.tokens[idx]
		switch {
		case tok.Kind == TokSemicolon || tok.Kind == TokCloseTag:
			return idx
		case tok.Kind == TokComma && idx != start:
			return idx - 1
		case tok.Kind == TokCloseCurlyBracket || tok.Kind == TokCloseParenthesis ||
			tok.Kind == TokCloseSquareBracket || tok.Kind == TokCloseShortArray:
			// Closer of an enclosing region: the statement ended just before it.
			if idx != start {
				return idx - 1
			}
			return idx
		case idx != start && tok.ScopeOpener != None && tok.ScopeCloser > idx &&
			ScopeOwners.Has(tok.Kind) && tok.Kind != TokClosure:
			return tok.ScopeCloser
		case tok.Kind == TokOpenParenthesis && tok.ParenthesisCloser > idx:
			idx = tok.ParenthesisCloser
		case (tok.Kind == TokOpenSquareBracket || tok.Kind == TokOpenShortArray ||
			tok.Kind == TokOpenCurlyBracket) && tok.BracketCloser > idx:
			idx = tok.BracketCloser
		case tok.Kind == TokClosure && tok.ScopeCloser > idx:
			idx = tok.ScopeCloser
		}
	}
	return len(s.tokens) - 1
}

// HasCondition reports whether the token at i is enclosed by a scope owned by
// a token of the given kind. Out-of-range indices report false.
func (s *Store) HasCondition(i int, kind Kind) bool {
	_, ok := s.Condition(i, kind)
	return ok
}

// HasAnyCondition reports whether the token at i is enclosed by a scope owned
// by any kind in the set.
func (s *Store) HasAnyCondition(i int, kinds KindSet) bool {
	if !s.Valid(i) {
		return false
	}
	for _, c := range s.tokens[i].Conditions {
		if kinds.Has(c.Kind) {
			return true
		}
	}
	return false
}

// Condition returns the index of the innermost scope owner of the given kind
// enclosing the token at i.
func (s *Store) Condition(i int, kind Kind) (int, bool) {
	if !s.Valid(i) {
		return None, false
	}
	conds := s.tokens[i].Conditions
	for c := len(conds) - 1; c >= 0; c-- {
		if conds[c].Kind == kind {
			return conds[c].Index, true
		}
	}
	return None, false
}

// Conditions returns a copy of the enclosing-scope stack of the token at i,
// outermost first.
func (s *Store) Conditions(i int) []Condition {
	if !s.Valid(i) {
		return nil
	}
	out := make([]Condition, len(s.tokens[i].Conditions))
	copy(out, s.tokens[i].Conditions)
	return out
}

func (s *Store) link(i int, get func(Token) int) int {
	if !s.Valid(i) {
		return None
	}
	return get(s.tokens[i])
}

// ScopeOpener returns the scope opener linked from token i, or None.
func (s *Store) ScopeOpener(i int) int {
	return s.link(i, func(t Token) int { return t.ScopeOpener })
}

// ScopeCloser returns the scope closer linked from token i, or None.
func (s *Store) ScopeCloser(i int) int {
	return s.link(i, func(t Token) int { return t.ScopeCloser })
}

// BracketOpener returns the bracket opener linked from token i, or None.
func (s *Store) BracketOpener(i int) int {
	return s.link(i, func(t Token) int { return t.BracketOpener })
}

// BracketCloser returns the bracket closer linked from token i, or None.
func (s *Store) BracketCloser(i int) int {
	return s.link(i, func(t Token) int { return t.BracketCloser })
}

// ParenthesisOpener returns the parenthesis opener linked from token i, or None.
func (s *Store) ParenthesisOpener(i int) int {
	return s.link(i, func(t Token) int { return t.ParenthesisOpener })
}

// ParenthesisCloser returns the parenthesis closer linked from token i, or None.
func (s *Store) ParenthesisCloser(i int) int {
	return s.link(i, func(t Token) int { return t.ParenthesisCloser })
}

// ParenthesisOwner returns the owner of the parentheses at token i, or None.
func (s *Store) ParenthesisOwner(i int) int {
	return s.link(i, func(t Token) int { return t.ParenthesisOwner })
}
