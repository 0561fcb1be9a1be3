package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"slang/internal/ast"
	"slang/internal/source"
)

// ASTNodeOutput is the JSON shape of one tree node.
type ASTNodeOutput struct {
	Label    string          `json:"label"`
	Span     *source.Span    `json:"span,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type treeNode struct {
	label    string
	span     source.Span
	hasSpan  bool
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) *treeNode {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

func leaf(label string) *treeNode { return &treeNode{label: label} }

func spanned(label string, sp source.Span) *treeNode {
	return &treeNode{label: label, span: sp, hasSpan: true}
}

// FormatASTPretty prints the file as an indented tree.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := buildFileTree(builder, fileID, fs)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", nodeLine(root, fs))
	writeChildren(w, root, "", fs)
	return nil
}

// FormatASTJSON prints the same tree as JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := buildFileTree(builder, fileID, fs)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toJSON(root))
}

func toJSON(n *treeNode) ASTNodeOutput {
	out := ASTNodeOutput{Label: n.label}
	if n.hasSpan {
		sp := n.span
		out.Span = &sp
	}
	for _, c := range n.children {
		out.Children = append(out.Children, toJSON(c))
	}
	return out
}

func nodeLine(n *treeNode, fs *source.FileSet) string {
	if !n.hasSpan {
		return n.label
	}
	return fmt.Sprintf("%s (span: %s)", n.label, formatSpan(n.span, fs))
}

func writeChildren(w io.Writer, n *treeNode, prefix string, fs *source.FileSet) {
	for i, c := range n.children {
		branch, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLine(c, fs))
		writeChildren(w, c, prefix+next, fs)
	}
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

type treeBuilder struct {
	b *ast.Builder
}

func buildFileTree(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) (*treeNode, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return nil, fmt.Errorf("file not found")
	}
	header := "File"
	if fs != nil {
		if src := fs.Get(file.Span.File); src != nil {
			header = src.FormatPath("auto", fs.BaseDir())
		}
	}
	tb := treeBuilder{b: builder}
	root := spanned(header, file.Span)
	for i, itemID := range file.Items {
		root.add(tb.item(i, itemID))
	}
	return root, nil
}

func (tb treeBuilder) name(id source.StringID) string {
	if s := tb.b.Name(id); s != "" {
		return s
	}
	return "<invalid>"
}

func (tb treeBuilder) item(idx int, id ast.ItemID) *treeNode {
	item := tb.b.Items.Get(id)
	if item == nil {
		return leaf(fmt.Sprintf("Item[%d]: <nil>", idx))
	}
	switch item.Kind {
	case ast.ItemFn:
		fn, _ := tb.b.Items.Fn(id)
		node := spanned(fmt.Sprintf("Item[%d]: func %s", idx, tb.name(fn.Name)), item.Span)
		params := leaf("Params")
		for _, p := range fn.Params {
			params.add(spanned(fmt.Sprintf("%s: %s", tb.name(p.Name), tb.typeString(p.Type)), p.NameSpan))
		}
		node.add(params)
		if fn.Result.IsValid() {
			node.add(leaf("Result: " + tb.typeString(fn.Result)))
		}
		return node.add(tb.stmt("Body", fn.Body))
	case ast.ItemStruct:
		decl, _ := tb.b.Items.Struct(id)
		node := spanned(fmt.Sprintf("Item[%d]: struct %s", idx, tb.name(decl.Name)), item.Span)
		for _, f := range decl.Fields {
			node.add(spanned(fmt.Sprintf("Field %s: %s", tb.name(f.Name), tb.typeString(f.Type)), f.NameSpan))
		}
		return node
	case ast.ItemEnum:
		decl, _ := tb.b.Items.Enum(id)
		node := spanned(fmt.Sprintf("Item[%d]: enum %s", idx, tb.name(decl.Name)), item.Span)
		for _, c := range decl.Cases {
			node.add(spanned("Case "+tb.name(c.Name), c.NameSpan))
		}
		return node
	case ast.ItemUnion:
		decl, _ := tb.b.Items.Union(id)
		node := spanned(fmt.Sprintf("Item[%d]: union %s", idx, tb.name(decl.Name)), item.Span)
		for _, v := range decl.Variants {
			node.add(spanned("Variant "+tb.typeString(v.Type), v.Span))
		}
		return node
	}
	return spanned(fmt.Sprintf("Item[%d]: %s", idx, item.Kind), item.Span)
}

// typeString renders a syntactic type the way it is written.
func (tb treeBuilder) typeString(id ast.TypeID) string {
	t := tb.b.Types.Get(id)
	if t == nil {
		return "<none>"
	}
	switch t.Kind {
	case ast.TypeExprOptional:
		return tb.typeString(t.Elem) + "?"
	case ast.TypeExprArray:
		return "[" + tb.typeString(t.Elem) + "]"
	case ast.TypeExprDict:
		return "[" + tb.typeString(t.Key) + ": " + tb.typeString(t.Elem) + "]"
	case ast.TypeExprSet:
		return "Set<" + tb.typeString(t.Elem) + ">"
	}
	return tb.name(t.Name)
}

func (tb treeBuilder) stmt(label string, id ast.StmtID) *treeNode {
	st := tb.b.Stmts.Get(id)
	if st == nil {
		return nil
	}
	if label != "" {
		label += ": "
	}
	node := spanned(label+st.Kind.String(), st.Span)
	switch st.Kind {
	case ast.StmtBlock:
		block, _ := tb.b.Stmts.Block(id)
		for _, s := range block.Stmts {
			node.add(tb.stmt("", s))
		}
	case ast.StmtVar:
		v, _ := tb.b.Stmts.Var(id)
		node.label += " " + tb.name(v.Name)
		if v.Type.IsValid() {
			node.label += ": " + tb.typeString(v.Type)
		}
		node.add(tb.expr("Value", v.Value))
	case ast.StmtExpr:
		es, _ := tb.b.Stmts.Expr(id)
		node.add(tb.expr("", es.Expr))
	case ast.StmtReturn:
		ret, _ := tb.b.Stmts.Return(id)
		node.add(tb.expr("Value", ret.Value))
	case ast.StmtIf:
		ifs, _ := tb.b.Stmts.If(id)
		node.add(tb.expr("Cond", ifs.Cond), tb.stmt("Then", ifs.Then), tb.stmt("Else", ifs.Else))
	case ast.StmtFor:
		f, _ := tb.b.Stmts.For(id)
		switch f.Form {
		case ast.ForIn:
			node.label += " in"
			node.add(spanned("Var "+tb.name(f.Var), f.VarSpan), tb.expr("Iterable", f.Iterable))
		case ast.ForClassic:
			node.add(tb.stmt("Init", f.Init), tb.expr("Cond", f.Cond), tb.expr("Post", f.Post))
		default:
			node.add(tb.expr("Cond", f.Cond))
		}
		node.add(tb.stmt("Body", f.Body))
	case ast.StmtSwitch:
		sw, _ := tb.b.Stmts.Switch(id)
		tb.switchCases(node, sw)
	}
	return node
}

func (tb treeBuilder) switchCases(node *treeNode, sw *ast.SwitchData) {
	node.add(tb.expr("Subject", sw.Subject))
	for _, c := range sw.Cases {
		var arm *treeNode
		switch c.Pattern.Kind {
		case ast.PatSome:
			arm = spanned("Case some", c.Span)
		case ast.PatNone:
			arm = spanned("Case none", c.Span)
		case ast.PatDefault:
			arm = spanned("Case default", c.Span)
		default:
			arm = spanned("Case", c.Span).add(tb.expr("Pattern", c.Pattern.Expr))
		}
		node.add(arm.add(tb.stmt("Body", c.Body)))
	}
}

func (tb treeBuilder) expr(label string, id ast.ExprID) *treeNode {
	e := tb.b.Exprs.Get(id)
	if e == nil {
		return nil
	}
	if label != "" {
		label += ": "
	}
	node := spanned(label+e.Kind.String(), e.Span)
	switch e.Kind {
	case ast.ExprIntLit, ast.ExprFloatLit, ast.ExprBoolLit:
		lit, _ := tb.b.Exprs.Literal(id)
		node.label += " " + lit.Text
	case ast.ExprStringLit:
		lit, _ := tb.b.Exprs.Literal(id)
		node.label += fmt.Sprintf(" %q", lit.Text)
	case ast.ExprInterp:
		data, _ := tb.b.Exprs.Interp(id)
		for _, part := range data.Parts {
			if part.Expr.IsValid() {
				node.add(tb.expr("", part.Expr))
			} else {
				node.add(leaf(fmt.Sprintf("Text %q", part.Text)))
			}
		}
	case ast.ExprIdent:
		data, _ := tb.b.Exprs.Ident(id)
		node.label += " " + tb.name(data.Name)
	case ast.ExprBinary:
		data, _ := tb.b.Exprs.Binary(id)
		node.label += " " + data.Op.String()
		node.add(tb.expr("", data.Left), tb.expr("", data.Right))
	case ast.ExprUnary:
		data, _ := tb.b.Exprs.Unary(id)
		node.label += " " + data.Op.String()
		node.add(tb.expr("", data.Operand))
	case ast.ExprCall:
		data, _ := tb.b.Exprs.Call(id)
		node.add(tb.expr("Target", data.Target))
		for i, a := range data.Args {
			node.add(tb.expr(fmt.Sprintf("Arg[%d]", i), a))
		}
	case ast.ExprMember:
		data, _ := tb.b.Exprs.Member(id)
		node.label += " ." + tb.name(data.Field)
		node.add(tb.expr("", data.Target))
	case ast.ExprStructLit:
		data, _ := tb.b.Exprs.Struct(id)
		node.label += " " + tb.name(data.Type)
		for _, f := range data.Fields {
			node.add(tb.expr(tb.name(f.Name), f.Value))
		}
	case ast.ExprSwitch:
		data, _ := tb.b.Exprs.Switch(id)
		tb.switchCases(node, data)
	case ast.ExprArray:
		data, _ := tb.b.Exprs.Array(id)
		for _, el := range data.Elems {
			node.add(tb.expr("", el))
		}
	case ast.ExprDict:
		data, _ := tb.b.Exprs.Dict(id)
		for _, entry := range data.Entries {
			node.add(leaf("Entry").add(tb.expr("Key", entry.Key), tb.expr("Value", entry.Value)))
		}
	case ast.ExprIndex:
		data, _ := tb.b.Exprs.Index(id)
		node.add(tb.expr("Target", data.Target), tb.expr("Index", data.Index))
	case ast.ExprAssign:
		data, _ := tb.b.Exprs.Assign(id)
		node.label += " " + data.Op.String()
		node.add(tb.expr("Target", data.Target), tb.expr("Value", data.Value))
	}
	return node
}

// ASTString renders the pretty tree into a string; used by tests and the
// golden dumps.
func ASTString(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) string {
	var sb strings.Builder
	if err := FormatASTPretty(&sb, builder, fileID, fs); err != nil {
		return "<" + err.Error() + ">"
	}
	return sb.String()
}
