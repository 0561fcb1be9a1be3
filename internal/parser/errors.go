package parser

import (
	"fmt"

	"slang/internal/diag"
)

// Error bundles all syntax diagnostics of one file.
type Error struct {
	Bag *diag.Bag
}

func (e *Error) Error() string {
	items := e.Bag.Items()
	if len(items) == 1 {
		return "parser: " + items[0].Message
	}
	return fmt.Sprintf("parser: %d syntax errors, first: %s", len(items), items[0].Message)
}

func (e *Error) Diagnostics() []diag.Diagnostic {
	return e.Bag.Items()
}
