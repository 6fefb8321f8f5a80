package sniffs

import "github.com/yaklabco/gosniff/pkg/sniff"

// RegisterAll registers all built-in sniffs with the given registry.
// Registration order is dispatch order: when two sniffs fix the same token,
// the later one wins.
func RegisterAll(registry *sniff.Registry) {
	registry.Register(func() sniff.Sniff { return NewLowerCaseKeywordSniff() })
	registry.Register(func() sniff.Sniff { return NewDisallowLongArraySyntaxSniff() })
	registry.Register(func() sniff.Sniff { return NewOneClassPerFileSniff() })
	registry.Register(func() sniff.Sniff { return NewMethodScopeSniff() })

	registry.Register(func() sniff.Sniff { return NewTrailingWhitespaceSniff() })
	registry.Register(func() sniff.Sniff { return NewEndFileNewlineSniff() })

	registry.Register(func() sniff.Sniff { return NewFenceLanguageSniff() })
}

func init() {
	RegisterAll(sniff.DefaultRegistry)
}
