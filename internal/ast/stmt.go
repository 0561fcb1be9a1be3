package ast

import (
	"slang/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtVar
	StmtExpr
	StmtReturn
	StmtIf
	StmtFor
	StmtSwitch
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtVar:
		return "Var"
	case StmtExpr:
		return "Expr"
	case StmtReturn:
		return "Return"
	case StmtIf:
		return "If"
	case StmtFor:
		return "For"
	case StmtSwitch:
		return "Switch"
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

// VarStmt is `var name[: Type] = value`. Type may be NoTypeID.
type VarStmt struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Value    ExprID
}

type ExprStmt struct {
	Expr ExprID
}

type ReturnStmt struct {
	Value ExprID // NoExprID for a bare return
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // block, nested if, or NoStmtID
}

type ForForm uint8

const (
	ForCond    ForForm = iota // for (cond) {}
	ForClassic                // for (init; cond; post) {}
	ForIn                     // for x in coll {}
)

type ForStmt struct {
	Form ForForm
	Init StmtID
	Cond ExprID
	Post ExprID
	// ForIn
	Var      source.StringID
	VarSpan  source.Span
	Iterable ExprID
	Body     StmtID
}

type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[BlockStmt]
	Vars     *Arena[VarStmt]
	Exprs    *Arena[ExprStmt]
	Returns  *Arena[ReturnStmt]
	Ifs      *Arena[IfStmt]
	Fors     *Arena[ForStmt]
	Switches *Arena[SwitchData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[BlockStmt](capHint),
		Vars:     NewArena[VarStmt](capHint),
		Exprs:    NewArena[ExprStmt](capHint),
		Returns:  NewArena[ReturnStmt](capHint),
		Ifs:      NewArena[IfStmt](capHint),
		Fors:     NewArena[ForStmt](capHint),
		Switches: NewArena[SwitchData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(BlockStmt{Stmts: append([]StmtID(nil), stmts...)}))
}

func (s *Stmts) NewVar(span source.Span, v VarStmt) StmtID {
	return s.new(StmtVar, span, s.Vars.Allocate(v))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnStmt{Value: value}))
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) NewFor(span source.Span, f ForStmt) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(f))
}

func (s *Stmts) NewSwitch(span source.Span, sw SwitchData) StmtID {
	return s.new(StmtSwitch, span, s.Switches.Allocate(sw))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(st.Payload)), true
}

func (s *Stmts) Var(id StmtID) (*VarStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtVar {
		return nil, false
	}
	return s.Vars.Get(uint32(st.Payload)), true
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(st.Payload)), true
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(st.Payload)), true
}

func (s *Stmts) For(id StmtID) (*ForStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(st.Payload)), true
}

func (s *Stmts) Switch(id StmtID) (*SwitchData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtSwitch {
		return nil, false
	}
	return s.Switches.Get(uint32(st.Payload)), true
}
