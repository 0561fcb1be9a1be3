package lexer

import (
	"slang/internal/diag"
)

// Error is returned by Tokenize on the first lexical problem.
type Error struct {
	Diag diag.Diagnostic
}

func (e *Error) Error() string {
	return "lexer: " + e.Diag.Message
}

// Diagnostics returns the single diagnostic carried by the error.
func (e *Error) Diagnostics() []diag.Diagnostic {
	return []diag.Diagnostic{e.Diag}
}
