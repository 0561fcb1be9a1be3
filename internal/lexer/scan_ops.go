package lexer

import (
	"fmt"

	"slang/internal/diag"
	"slang/internal/token"
)

// twoByteOps is tried before singleByteOps, so "->" wins over "-".
var twoByteOps = map[[2]byte]token.Kind{
	{'-', '>'}: token.Arrow,
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
	{'+', '='}: token.PlusAssign,
	{'-', '='}: token.MinusAssign,
	{'*', '='}: token.StarAssign,
	{'/', '='}: token.SlashAssign,
	{'%', '='}: token.PercentAssign,
}

var singleByteOps = [128]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Assign, '!': token.Bang, '<': token.Lt, '>': token.Gt,
	'|': token.Pipe, '?': token.Question, ':': token.Colon, ';': token.Semicolon,
	',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

// scanOperatorOrPunct reads the longest operator at the cursor. A lone '&'
// or any other unlisted byte is a lexical error.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.mark()
	if b0, b1, ok := lx.cursor.peek2(); ok {
		if kind, found := twoByteOps[[2]byte{b0, b1}]; found {
			lx.cursor.skip2(b0, b1)
			sp := lx.cursor.spanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
	}

	ch := lx.cursor.next()
	kind := token.Invalid
	if int(ch) < len(singleByteOps) {
		kind = singleByteOps[ch]
	}
	sp := lx.cursor.spanFrom(start)
	if kind == token.Invalid {
		lx.fail(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", ch))
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
