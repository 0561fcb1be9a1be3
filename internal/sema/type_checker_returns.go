package sema

import "slang/internal/ast"

// definitelyReturns reports whether every path through the statement ends in
// a return. Loops never count: their bodies may run zero times.
func (tc *typeChecker) definitelyReturns(id ast.StmtID) bool {
	stmt := tc.builder.Stmts.Get(id)
	if stmt == nil {
		return false
	}
	switch stmt.Kind {
	case ast.StmtReturn:
		return true
	case ast.StmtBlock:
		block, _ := tc.builder.Stmts.Block(id)
		for _, s := range block.Stmts {
			if tc.definitelyReturns(s) {
				return true
			}
		}
	case ast.StmtIf:
		ifs, _ := tc.builder.Stmts.If(id)
		return ifs.Else.IsValid() && tc.definitelyReturns(ifs.Then) && tc.definitelyReturns(ifs.Else)
	case ast.StmtSwitch:
		sw, _ := tc.builder.Stmts.Switch(id)
		if len(sw.Cases) == 0 {
			return false
		}
		// неполный switch уже отвергнут проверкой полноты
		for _, c := range sw.Cases {
			if !tc.definitelyReturns(c.Body) {
				return false
			}
		}
		return true
	}
	return false
}
