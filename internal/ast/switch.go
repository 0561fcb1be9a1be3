package ast

import (
	"slang/internal/source"
)

type PatternKind uint8

const (
	PatExpr    PatternKind = iota // C.r, V.Int, 42, "s"
	PatSome                       // some
	PatNone                       // none
	PatDefault                    // default
)

type Pattern struct {
	Kind PatternKind
	Span source.Span
	Expr ExprID // PatExpr only
}

// SwitchCase is `Pattern -> body`; Body is a single statement or a block.
type SwitchCase struct {
	Span    source.Span
	Pattern Pattern
	Body    StmtID
}

// SwitchData is shared by switch statements and switch-expressions.
type SwitchData struct {
	Subject ExprID
	Cases   []SwitchCase
}
