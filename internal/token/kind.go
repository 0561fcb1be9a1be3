package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline is a statement-terminating line break.
	Newline

	// Ident represents an identifier token.
	Ident
	// IntLit is an integer literal.
	IntLit
	// FloatLit is a floating point literal.
	FloatLit
	// StringLit is a segment of literal string text.
	StringLit
	// InterpStart opens an embedded expression inside a string: `\(`.
	InterpStart
	// InterpEnd closes an embedded expression: the matching `)`.
	InterpEnd

	KwFunc    // func
	KwStruct  // struct
	KwEnum    // enum
	KwUnion   // union
	KwCase    // case
	KwVar     // var
	KwIf      // if
	KwElse    // else
	KwFor     // for
	KwIn      // in
	KwSwitch  // switch
	KwReturn  // return
	KwDefault // default
	KwTrue    // true
	KwFalse   // false
	KwNil     // nil
	KwSome    // some
	KwNone    // none

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	EqEq          // ==
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	AndAnd        // &&
	OrOr          // ||
	Bang          // !
	Arrow         // ->
	Dot           // .
	Comma         // ,
	Colon         // :
	Semicolon     // ;
	Question      // ?
	Pipe          // |
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Newline:       "Newline",
	Ident:         "Ident",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	InterpStart:   "InterpStart",
	InterpEnd:     "InterpEnd",
	KwFunc:        "func",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwUnion:       "union",
	KwCase:        "case",
	KwVar:         "var",
	KwIf:          "if",
	KwElse:        "else",
	KwFor:         "for",
	KwIn:          "in",
	KwSwitch:      "switch",
	KwReturn:      "return",
	KwDefault:     "default",
	KwTrue:        "true",
	KwFalse:       "false",
	KwNil:         "nil",
	KwSome:        "some",
	KwNone:        "none",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	EqEq:          "==",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	Bang:          "!",
	Arrow:         "->",
	Dot:           ".",
	Comma:         ",",
	Colon:         ":",
	Semicolon:     ";",
	Question:      "?",
	Pipe:          "|",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
