package token

import (
	"slices"
	"strings"
)

// Kind classifies a token. Names follow the PHP tokenizer convention (T_*).
type Kind uint16

// Token kinds produced by the bundled tokenizers.
const (
	TokUnknown Kind = iota

	TokInlineHTML
	TokOpenTag
	TokOpenTagWithEcho
	TokCloseTag
	TokWhitespace
	TokComment
	TokDocComment

	TokVariable
	TokString // identifiers and bare words
	TokConstantEncapsedString
	TokLNumber
	TokDNumber
	TokTrue
	TokFalse
	TokNull

	TokAbstract
	TokArray
	TokAs
	TokBreak
	TokCase
	TokCatch
	TokClass
	TokAnonClass
	TokClosure
	TokConst
	TokContinue
	TokDefault
	TokDo
	TokEcho
	TokElse
	TokElseIf
	TokExtends
	TokFinal
	TokFinally
	TokFn
	TokFor
	TokForeach
	TokFunction
	TokIf
	TokImplements
	TokInstanceof
	TokInterface
	TokNamespace
	TokNew
	TokPrivate
	TokProtected
	TokPublic
	TokReturn
	TokStatic
	TokSwitch
	TokThrow
	TokTrait
	TokTry
	TokUse
	TokWhile

	TokOpenParenthesis
	TokCloseParenthesis
	TokOpenCurlyBracket
	TokCloseCurlyBracket
	TokOpenSquareBracket
	TokCloseSquareBracket
	TokOpenShortArray
	TokCloseShortArray
	TokSemicolon
	TokComma
	TokColon
	TokDoubleColon
	TokEqual
	TokDoubleArrow
	TokObjectOperator
	TokStringConcat
	TokInlineThen
	TokNSSeparator
	TokOperator

	TokMDHeading
	TokMDText
	TokMDCodeFence
	TokMDCode

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	TokUnknown:                "T_UNKNOWN",
	TokInlineHTML:             "T_INLINE_HTML",
	TokOpenTag:                "T_OPEN_TAG",
	TokOpenTagWithEcho:        "T_OPEN_TAG_WITH_ECHO",
	TokCloseTag:               "T_CLOSE_TAG",
	TokWhitespace:             "T_WHITESPACE",
	TokComment:                "T_COMMENT",
	TokDocComment:             "T_DOC_COMMENT",
	TokVariable:               "T_VARIABLE",
	TokString:                 "T_STRING",
	TokConstantEncapsedString: "T_CONSTANT_ENCAPSED_STRING",
	TokLNumber:                "T_LNUMBER",
	TokDNumber:                "T_DNUMBER",
	TokTrue:                   "T_TRUE",
	TokFalse:                  "T_FALSE",
	TokNull:                   "T_NULL",
	TokAbstract:               "T_ABSTRACT",
	TokArray:                  "T_ARRAY",
	TokAs:                     "T_AS",
	TokBreak:                  "T_BREAK",
	TokCase:                   "T_CASE",
	TokCatch:                  "T_CATCH",
	TokClass:                  "T_CLASS",
	TokAnonClass:              "T_ANON_CLASS",
	TokClosure:                "T_CLOSURE",
	TokConst:                  "T_CONST",
	TokContinue:               "T_CONTINUE",
	TokDefault:                "T_DEFAULT",
	TokDo:                     "T_DO",
	TokEcho:                   "T_ECHO",
	TokElse:                   "T_ELSE",
	TokElseIf:                 "T_ELSEIF",
	TokExtends:                "T_EXTENDS",
	TokFinal:                  "T_FINAL",
	TokFinally:                "T_FINALLY",
	TokFn:                     "T_FN",
	TokFor:                    "T_FOR",
	TokForeach:                "T_FOREACH",
	TokFunction:               "T_FUNCTION",
	TokIf:                     "T_IF",
	TokImplements:             "T_IMPLEMENTS",
	TokInstanceof:             "T_INSTANCEOF",
	TokInterface:              "T_INTERFACE",
	TokNamespace:              "T_NAMESPACE",
	TokNew:                    "T_NEW",
	TokPrivate:                "T_PRIVATE",
	TokProtected:              "T_PROTECTED",
	TokPublic:                 "T_PUBLIC",
	TokReturn:                 "T_RETURN",
	TokStatic:                 "T_STATIC",
	TokSwitch:                 "T_SWITCH",
	TokThrow:                  "T_THROW",
	TokTrait:                  "T_TRAIT",
	TokTry:                    "T_TRY",
	TokUse:                    "T_USE",
	TokWhile:                  "T_WHILE",
	TokOpenParenthesis:        "T_OPEN_PARENTHESIS",
	TokCloseParenthesis:       "T_CLOSE_PARENTHESIS",
	TokOpenCurlyBracket:       "T_OPEN_CURLY_BRACKET",
	TokCloseCurlyBracket:      "T_CLOSE_CURLY_BRACKET",
	TokOpenSquareBracket:      "T_OPEN_SQUARE_BRACKET",
	TokCloseSquareBracket:     "T_CLOSE_SQUARE_BRACKET",
	TokOpenShortArray:         "T_OPEN_SHORT_ARRAY",
	TokCloseShortArray:        "T_CLOSE_SHORT_ARRAY",
	TokSemicolon:              "T_SEMICOLON",
	TokComma:                  "T_COMMA",
	TokColon:                  "T_COLON",
	TokDoubleColon:            "T_DOUBLE_COLON",
	TokEqual:                  "T_EQUAL",
	TokDoubleArrow:            "T_DOUBLE_ARROW",
	TokObjectOperator:         "T_OBJECT_OPERATOR",
	TokStringConcat:           "T_STRING_CONCAT",
	TokInlineThen:             "T_INLINE_THEN",
	TokNSSeparator:            "T_NS_SEPARATOR",
	TokOperator:               "T_OPERATOR",
	TokMDHeading:              "T_MD_HEADING",
	TokMDText:                 "T_MD_TEXT",
	TokMDCodeFence:            "T_MD_CODE_FENCE",
	TokMDCode:                 "T_MD_CODE",
}

// String returns the T_* name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return "T_UNKNOWN"
	}
	return kindNames[k]
}

// ParseKind maps a T_* name (case-insensitive) back to its Kind.
func ParseKind(name string) (Kind, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == upper {
			return Kind(k), true
		}
	}
	return TokUnknown, false
}

// KindSet is an unordered set of token kinds.
type KindSet map[Kind]struct{}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	set := make(KindSet, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}

// Match implements Matcher.
func (s KindSet) Match(tok Token) bool {
	return s.Has(tok.Kind)
}

// Union returns a new set containing the kinds of s and other.
func (s KindSet) Union(other KindSet) KindSet {
	out := make(KindSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Kinds returns the members of the set in ascending order.
func (s KindSet) Kinds() []Kind {
	out := make([]Kind, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Commonly used kind groups.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// EmptyKinds are tokens that carry no code: whitespace and comments.
	EmptyKinds = NewKindSet(TokWhitespace, TokComment, TokDocComment)

	// CommentKinds are comment tokens.
	CommentKinds = NewKindSet(TokComment, TokDocComment)

	// ScopeOwners are kinds that may own a curly-bracket scope.
	ScopeOwners = NewKindSet(
		TokClass, TokAnonClass, TokInterface, TokTrait, TokFunction, TokClosure,
		TokIf, TokElse, TokElseIf, TokFor, TokForeach, TokWhile, TokDo, TokSwitch,
		TokTry, TokCatch, TokFinally, TokNamespace, TokMDCodeFence,
	)

	// ParenthesisOwners are kinds whose parentheses belong to them.
	ParenthesisOwners = NewKindSet(
		TokArray, TokFunction, TokClosure, TokFn, TokIf, TokElseIf, TokFor,
		TokForeach, TokWhile, TokSwitch, TokCatch, TokUse,
	)

	// OOScopes are class-like declarations.
	OOScopes = NewKindSet(TokClass, TokAnonClass, TokInterface, TokTrait)

	// Keywords are reserved words of the PHP tokenizer.
	Keywords = NewKindSet(
		TokAbstract, TokAnonClass, TokArray, TokAs, TokBreak, TokCase, TokCatch, TokClass, TokClosure,
		TokConst, TokContinue, TokDefault, TokDo, TokEcho, TokElse, TokElseIf,
		TokExtends, TokFinal, TokFinally, TokFn, TokFor, TokForeach, TokFunction, TokIf,
		TokImplements, TokInstanceof, TokInterface, TokNamespace, TokNew, TokPrivate,
		TokProtected, TokPublic, TokReturn, TokStatic, TokSwitch, TokThrow, TokTrait,
		TokTry, TokUse, TokWhile,
	)

	// StatementEnds terminate a statement for Local searches.
	StatementEnds = NewKindSet(TokSemicolon, TokCloseTag, TokOpenCurlyBracket, TokCloseCurlyBracket)
)
