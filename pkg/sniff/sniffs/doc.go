// Package sniffs provides the built-in gosniff sniffs.
//
// # Sniff Codes
//
// Codes follow the Standard.Category.Name convention. Violation codes are
// local to a sniff and combine into Standard.Category.Name.Code.
//
//   - PHP:
//
//   - Generic.Arrays.DisallowLongArraySyntax: array() must be written as []
//
//   - Generic.Files.OneClassPerFile: one class, interface or trait per file
//
//   - Generic.PHP.LowerCaseKeyword: keywords must be lowercase
//
//   - Squiz.Scope.MethodScope: methods must declare their visibility
//
//   - PHP and Markdown:
//
//   - Generic.WhiteSpace.TrailingWhitespace: lines must not end in blanks
//
//   - Generic.Files.EndFileNewline: files end with exactly one newline
//
//   - Markdown:
//
//   - Markdown.CodeBlocks.FenceLanguage: fenced code blocks name a language
//
// # Registration
//
// Sniffs are registered with sniff.DefaultRegistry via RegisterAll, in the
// order they are dispatched.
package sniffs
