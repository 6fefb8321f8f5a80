package token

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrIndexOutOfRange indicates a token index outside the store.
	ErrIndexOutOfRange = errors.New("token index out of range")

	// ErrMalformed indicates tokenizer output with broken structural links.
	ErrMalformed = errors.New("malformed token stream")
)

// Store owns the ordered tokens of exactly one file version.
// Indices are contiguous and stable for the lifetime of the store; it is never
// mutated after construction. A fix pass produces new text and a new Store.
type Store struct {
	tokens []Token
}

// NewStore builds a store from tokenizer output.
//
// Token indices are (re)assigned to match slice positions. Every structural link
// must point inside the store and pairs must be symmetric; otherwise an error
// wrapping ErrMalformed is returned.
func NewStore(tokens []Token) (*Store, error) {
	owned := make([]Token, len(tokens))
	copy(owned, tokens)

	for idx := range owned {
		owned[idx].Index = idx
	}

	for idx, tok := range owned {
		for _, link := range tok.links() {
			if link != None && (link < 0 || link >= len(owned)) {
				return nil, fmt.Errorf("%w: token %d (%s) links to %d", ErrMalformed, idx, tok.Kind, link)
			}
		}
		if err := checkPair(owned, idx, tok.BracketOpener, tok.BracketCloser, "bracket"); err != nil {
			return nil, err
		}
		if err := checkPair(owned, idx, tok.ParenthesisOpener, tok.ParenthesisCloser, "parenthesis"); err != nil {
			return nil, err
		}
		if err := checkPair(owned, idx, tok.ScopeOpener, tok.ScopeCloser, "scope"); err != nil {
			return nil, err
		}
	}

	return &Store{tokens: owned}, nil
}

// checkPair verifies an opener/closer link pair is ordered and half-set links are absent.
func checkPair(tokens []Token, idx, opener, closer int, what string) error {
	if opener == None && closer == None {
		return nil
	}
	if opener == None || closer == None {
		return fmt.Errorf("%w: token %d (%s) has a half-resolved %s pair",
			ErrMalformed, idx, tokens[idx].Kind, what)
	}
	if opener > closer {
		return fmt.Errorf("%w: token %d (%s) %s opener %d after closer %d",
			ErrMalformed, idx, tokens[idx].Kind, what, opener, closer)
	}
	return nil
}

// Len returns the number of tokens.
func (s *Store) Len() int {
	return len(s.tokens)
}

// At returns a copy of the token at index i.
func (s *Store) At(i int) (Token, error) {
	if i < 0 || i >= len(s.tokens) {
		return Token{}, fmt.Errorf("%w: %d (store has %d tokens)", ErrIndexOutOfRange, i, len(s.tokens))
	}
	return s.tokens[i].clone(), nil
}

// Valid reports whether i is a valid index.
func (s *Store) Valid(i int) bool {
	return i >= 0 && i < len(s.tokens)
}

// Kind returns the kind at i, or TokUnknown when out of range.
func (s *Store) Kind(i int) Kind {
	if !s.Valid(i) {
		return TokUnknown
	}
	return s.tokens[i].Kind
}

// Content returns the original content at i, or "" when out of range.
func (s *Store) Content(i int) string {
	if !s.Valid(i) {
		return ""
	}
	return s.tokens[i].Content
}

// Line returns the line of the token at i, or 0 when out of range.
func (s *Store) Line(i int) int {
	if !s.Valid(i) {
		return 0
	}
	return s.tokens[i].Line
}

// All iterates over the tokens in index order.
func (s *Store) All() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for idx, tok := range s.tokens {
			if !yield(idx, tok.clone()) {
				return
			}
		}
	}
}

// Text concatenates the original content of every token.
func (s *Store) Text() string {
	var b strings.Builder
	for _, tok := range s.tokens {
		b.WriteString(tok.Content)
	}
	return b.String()
}

// LineCount returns the number of the last line touched by any token.
func (s *Store) LineCount() int {
	if len(s.tokens) == 0 {
		return 0
	}
	last := s.tokens[len(s.tokens)-1]
	return last.Line + strings.Count(last.Content, "\n")
}

// LineContent returns the text of the 1-based line (without its newline).
func (s *Store) LineContent(line int) string {
	var b strings.Builder
	current := 1
	for _, tok := range s.tokens {
		if current > line {
			break
		}
		for _, r := range tok.Content {
			if r == '\n' {
				current++
				if current > line {
					break
				}
				continue
			}
			if current == line {
				b.WriteRune(r)
			}
		}
	}
	return strings.TrimSuffix(b.String(), "\r")
}
