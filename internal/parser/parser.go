package parser

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	// noStructLit запрещает `Name {` как литерал структуры (заголовки if/for/switch).
	noStructLit bool
	// recovering гасит каскад ошибок верхнего уровня до следующего удачного item.
	recovering bool
}

// Parse builds a fresh AST from tokens. On syntax errors it returns *Error
// bundling every diagnostic collected across resynchronization points.
func Parse(tokens []token.Token) (*ast.Builder, ast.FileID, error) {
	builder := ast.NewBuilder(ast.Hints{Exprs: uint(len(tokens))}, nil)
	bag := diag.NewBag(diag.DefaultMax)
	res := ParseTokens(tokens, builder, Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		bag.Sort()
		return builder, res.File, &Error{Bag: bag}
	}
	return builder, res.File, nil
}

// ParseTokens — входная точка для разбора одного файла в существующий builder.
func ParseTokens(tokens []token.Token, arenas *ast.Builder, opts Options) Result {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		var sp source.Span
		if len(tokens) > 0 {
			sp = tokens[len(tokens)-1].Span.AtEnd()
		}
		tokens = append(tokens, token.Token{Kind: token.EOF, Span: sp})
	}
	p := Parser{
		toks:     tokens,
		arenas:   arenas,
		opts:     opts,
		lastSpan: tokens[0].Span.AtStart(),
	}
	p.file = arenas.NewFile(tokens[0].Span.Cover(tokens[len(tokens)-1].Span))
	p.parseItems()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

// parseItems — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseItems() {
	for {
		p.skipSeparators()
		if p.at(token.EOF) {
			return
		}
		start := p.pos
		itemID, ok := p.parseItem()
		if ok {
			p.arenas.PushItem(p.file, itemID)
			p.recovering = false
			continue
		}
		p.recovering = true
		p.resync()
		if p.pos == start {
			p.advance()
		}
	}
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.peek().Kind {
	case token.KwFunc:
		return p.parseFnItem()
	case token.KwStruct:
		return p.parseStructItem()
	case token.KwEnum:
		return p.parseEnumItem()
	case token.KwUnion:
		return p.parseUnionItem()
	default:
		if !p.recovering {
			p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.peek().Span,
				"expected 'func', 'struct', 'enum' or 'union' at top level, got "+describe(p.peek()))
		}
		return ast.NoItemID, false
	}
}

// resync — восстановление после ошибки: прокручиваем до перевода строки
// или до токена, с которого начинается объявление или инструкция.
// Newline съедается, стартовый токен остаётся.
func (p *Parser) resync() {
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if k == token.Newline || k == token.Semicolon {
			p.advance()
			return
		}
		if k.StartsDecl() || k == token.RBrace {
			return
		}
		p.advance()
	}
}
