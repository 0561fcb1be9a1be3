// Package token defines lexical token kinds for the Slang toolchain.
// Invariants:
//   - Token.Text is the raw lexeme (for StringLit: the decoded literal text).
//   - Token.Span covers exactly the lexeme in the source file.
//   - Built-in type names (Int, String, Set, ...) are identifiers.
//     They are recognized by the semantic layer, not the lexer.
//   - Newline tokens appear only where a statement may end.
package token
