package sema

import (
	"fmt"
	"sort"
	"strings"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/types"
)

// coverage accumulates the patterns seen by one switch.
type coverage struct {
	names      map[source.StringID]source.Span // enum cases / union variants
	literals   map[string]source.Span
	some, none bool
	def        bool
	defSpan    source.Span
}

// checkSwitch validates a switch statement or switch-expression. For an
// expression every arm must return a value and the arms must agree; the
// agreed type is returned.
func (tc *typeChecker) checkSwitch(data *ast.SwitchData, span source.Span, asExpr bool, expected types.TypeID) types.TypeID {
	subj := tc.checkExpr(data.Subject, types.NoTypeID)

	// сужение работает только для идентификатора
	narrowName := source.NoStringID
	var narrowDecl source.Span
	if ident, ok := tc.builder.Exprs.Ident(data.Subject); ok {
		if b, found := tc.lookup(ident.Name); found && !b.fn {
			narrowName, narrowDecl = ident.Name, b.span
		}
	}

	var ctx *returnContext
	if asExpr {
		ctx = &returnContext{expected: expected, isSwitch: true}
	}
	cov := &coverage{
		names:    make(map[source.StringID]source.Span),
		literals: make(map[string]source.Span),
	}

	for _, arm := range data.Cases {
		tc.pushScope()
		narrowed := tc.checkPattern(arm.Pattern, subj, cov)
		if narrowed != types.NoTypeID && narrowName != source.NoStringID {
			tc.narrow(narrowName, narrowed, narrowDecl)
		}
		if asExpr {
			pop := tc.pushReturn(ctx)
			tc.walkStmt(arm.Body)
			pop()
			if !tc.definitelyReturns(arm.Body) {
				tc.report(diag.SemaSwitchExprNoReturn, arm.Span, "switch expression case must return a value")
			}
		} else {
			tc.walkStmt(arm.Body)
		}
		tc.popScope()
	}

	tc.checkExhaustive(subj, cov, span)

	if !asExpr {
		return types.NoTypeID
	}
	if ctx.expected == types.NoTypeID {
		return tc.errorType()
	}
	return ctx.expected
}

// checkPattern validates one arm's pattern against the subject type and
// returns the type the subject is narrowed to inside the arm, if any.
func (tc *typeChecker) checkPattern(pat ast.Pattern, subj types.TypeID, cov *coverage) types.TypeID {
	if pat.Kind == ast.PatDefault {
		if cov.def {
			tc.reportWithNote(diag.SemaDuplicateCase, pat.Span, cov.defSpan, "first default here", "duplicate case 'default'")
		}
		cov.def, cov.defSpan = true, pat.Span
		if tc.types.KindOf(subj) == types.KindOptional {
			tc.report(diag.SemaInvalidPattern, pat.Span, "switch over optional %s must use exactly 'some' and 'none'", tc.label(subj))
		}
		return types.NoTypeID
	}
	if tc.isError(subj) {
		if pat.Kind == ast.PatExpr {
			tc.checkPatternExprLoosely(pat.Expr)
		}
		return types.NoTypeID
	}

	st, _ := tc.types.Lookup(subj)
	switch st.Kind {
	case types.KindOptional:
		return tc.checkOptionalPattern(pat, subj, st.Elem, cov)
	case types.KindEnum:
		tc.checkEnumPattern(pat, subj, cov)
		return types.NoTypeID
	case types.KindUnion:
		return tc.checkUnionPattern(pat, subj, cov)
	}

	if pat.Kind != ast.PatExpr {
		tc.report(diag.SemaInvalidPattern, pat.Span, "'%s' pattern requires an optional subject, found %s", patternWord(pat.Kind), tc.label(subj))
		return types.NoTypeID
	}
	pt := tc.checkExpr(pat.Expr, subj)
	if tc.isError(pt) {
		return types.NoTypeID
	}
	if pt != subj {
		tc.report(diag.SemaTypeMismatch, pat.Span, "case pattern of type %s does not match subject type %s", tc.label(pt), tc.label(subj))
		return types.NoTypeID
	}
	if key, ok := tc.literalKey(pat.Expr); ok {
		if prev, dup := cov.literals[key]; dup {
			tc.reportWithNote(diag.SemaDuplicateCase, pat.Span, prev, "first occurrence here", "duplicate case %s", key)
		} else {
			cov.literals[key] = pat.Span
		}
	}
	return types.NoTypeID
}

func (tc *typeChecker) checkOptionalPattern(pat ast.Pattern, subj, elem types.TypeID, cov *coverage) types.TypeID {
	switch pat.Kind {
	case ast.PatSome:
		if cov.some {
			tc.report(diag.SemaDuplicateCase, pat.Span, "duplicate case 'some'")
		}
		cov.some = true
		return elem
	case ast.PatNone:
		if cov.none {
			tc.report(diag.SemaDuplicateCase, pat.Span, "duplicate case 'none'")
		}
		cov.none = true
		return types.NoTypeID
	}
	tc.checkPatternExprLoosely(pat.Expr)
	tc.report(diag.SemaInvalidPattern, pat.Span, "switch over optional %s must use exactly 'some' and 'none'", tc.label(subj))
	return types.NoTypeID
}

func (tc *typeChecker) checkEnumPattern(pat ast.Pattern, subj types.TypeID, cov *coverage) {
	name, nameSpan, ok := tc.staticPattern(pat, subj)
	if !ok {
		return
	}
	info, _ := tc.types.EnumInfo(subj)
	if !info.HasCase(name) {
		tc.report(diag.SemaNoMember, nameSpan, "enum %s has no case '%s'", tc.label(subj), tc.name(name))
		return
	}
	tc.addRef(nameSpan, tc.enumCaseSpan(subj, name))
	tc.recordType(pat.Expr, subj)
	if prev, dup := cov.names[name]; dup {
		tc.reportWithNote(diag.SemaDuplicateCase, pat.Span, prev, "first occurrence here",
			"duplicate case %s.%s", tc.label(subj), tc.name(name))
		return
	}
	cov.names[name] = pat.Span
}

func (tc *typeChecker) checkUnionPattern(pat ast.Pattern, subj types.TypeID, cov *coverage) types.TypeID {
	name, nameSpan, ok := tc.staticPattern(pat, subj)
	if !ok {
		return types.NoTypeID
	}
	info, _ := tc.types.UnionInfo(subj)
	variant, found := info.Variant(name)
	if !found {
		tc.report(diag.SemaNoMember, nameSpan, "union %s has no variant '%s'", tc.label(subj), tc.name(name))
		return types.NoTypeID
	}
	tc.addRef(nameSpan, tc.variantDeclSpan(variant.Type))
	tc.recordType(pat.Expr, subj)
	if prev, dup := cov.names[name]; dup {
		tc.reportWithNote(diag.SemaDuplicateCase, pat.Span, prev, "first occurrence here",
			"duplicate case %s.%s", tc.label(subj), tc.name(name))
		return types.NoTypeID
	}
	cov.names[name] = pat.Span
	return variant.Type
}

// staticPattern accepts Type.name patterns naming the subject's own type.
func (tc *typeChecker) staticPattern(pat ast.Pattern, subj types.TypeID) (source.StringID, source.Span, bool) {
	if pat.Kind != ast.PatExpr {
		tc.report(diag.SemaInvalidPattern, pat.Span, "'%s' pattern requires an optional subject, found %s", patternWord(pat.Kind), tc.label(subj))
		return source.NoStringID, source.Span{}, false
	}
	m, ok := tc.builder.Exprs.Member(pat.Expr)
	if ok {
		if owner, static := tc.staticTypeName(m.Target); static {
			if owner == subj {
				return m.Field, m.FieldSpan, true
			}
			tc.report(diag.SemaTypeMismatch, pat.Span, "case pattern of type %s does not match subject type %s", tc.label(owner), tc.label(subj))
			return source.NoStringID, source.Span{}, false
		}
	}
	tc.checkPatternExprLoosely(pat.Expr)
	tc.report(diag.SemaInvalidPattern, pat.Span, "case pattern must name a member of %s, like %s.name", tc.label(subj), tc.label(subj))
	return source.NoStringID, source.Span{}, false
}

// checkPatternExprLoosely types a rejected pattern for references only.
func (tc *typeChecker) checkPatternExprLoosely(id ast.ExprID) {
	if m, ok := tc.builder.Exprs.Member(id); ok {
		if _, static := tc.staticTypeName(m.Target); static {
			return
		}
	}
	tc.checkExpr(id, types.NoTypeID)
}

func (tc *typeChecker) checkExhaustive(subj types.TypeID, cov *coverage, span source.Span) {
	if tc.isError(subj) {
		return
	}
	st, _ := tc.types.Lookup(subj)
	switch st.Kind {
	case types.KindEnum:
		if cov.def {
			return
		}
		info, _ := tc.types.EnumInfo(subj)
		var missing []string
		for _, c := range info.Cases {
			if _, ok := cov.names[c]; !ok {
				missing = append(missing, tc.label(subj)+"."+tc.name(c))
			}
		}
		tc.reportMissing(span, subj, missing)
	case types.KindUnion:
		if cov.def {
			return
		}
		info, _ := tc.types.UnionInfo(subj)
		var missing []string
		for _, v := range info.Variants {
			if _, ok := cov.names[v.Name]; !ok {
				missing = append(missing, tc.label(subj)+"."+tc.name(v.Name))
			}
		}
		tc.reportMissing(span, subj, missing)
	case types.KindOptional:
		var missing []string
		if !cov.some {
			missing = append(missing, "some")
		}
		if !cov.none {
			missing = append(missing, "none")
		}
		tc.reportMissing(span, subj, missing)
	case types.KindBool:
		if cov.def {
			return
		}
		_, t := cov.literals["true"]
		_, f := cov.literals["false"]
		if t && f {
			return
		}
		tc.report(diag.SemaNonExhaustive, span, "switch over Bool must be exhaustive: cover true and false or add a 'default' case")
	default:
		if !cov.def {
			tc.report(diag.SemaNonExhaustive, span, "switch over %s must be exhaustive: add a 'default' case", tc.label(subj))
		}
	}
}

func (tc *typeChecker) reportMissing(span source.Span, subj types.TypeID, missing []string) {
	if len(missing) == 0 {
		return
	}
	sort.Strings(missing)
	tc.report(diag.SemaNonExhaustive, span, "switch over %s must be exhaustive: missing %s", tc.label(subj), strings.Join(missing, ", "))
}

// literalKey returns a canonical spelling of a literal pattern for duplicate
// detection; non-literal patterns are never considered duplicates.
func (tc *typeChecker) literalKey(id ast.ExprID) (string, bool) {
	expr := tc.builder.Exprs.Get(id)
	lit, ok := tc.builder.Exprs.Literal(id)
	if expr == nil || !ok {
		return "", false
	}
	switch expr.Kind {
	case ast.ExprStringLit:
		return fmt.Sprintf("%q", lit.Text), true
	case ast.ExprIntLit, ast.ExprFloatLit:
		return strings.ReplaceAll(lit.Text, "_", ""), true
	}
	return lit.Text, true
}

func patternWord(k ast.PatternKind) string {
	switch k {
	case ast.PatSome:
		return "some"
	case ast.PatNone:
		return "none"
	case ast.PatDefault:
		return "default"
	}
	return "case"
}
