package pattern

import (
	"rill/internal/ast"
	"rill/internal/source"
)

// Node is a borrowed handle into the host tree: either an expression or
// a statement, or neither (an absent slot). It must not outlive the
// Builder it points into.
type Node struct {
	Expr ast.ExprID
	Stmt ast.StmtID
}

func ExprNode(id ast.ExprID) Node { return Node{Expr: id} }
func StmtNode(id ast.StmtID) Node { return Node{Stmt: id} }

func (n Node) absent() bool { return !n.Expr.IsValid() && !n.Stmt.IsValid() }

type capture struct {
	name string
	node Node
}

type matcher struct {
	b    *ast.Builder
	caps []capture
}

// throughMacros разворачивает цепочку макро-узлов до их тела.
// Спаны тела несут контекст расширения — это и ловит hygiene-проверка.
func (m *matcher) throughMacros(id ast.ExprID) ast.ExprID {
	for {
		data := m.b.Exprs.MacroData(id)
		if data == nil {
			return id
		}
		id = data.Body
	}
}

// Match tries p against the expression node. On structural mismatch it
// returns (nil, false) and no partial captures are retained.
func Match(b *ast.Builder, p Pattern, expr ast.ExprID) (*Result, bool) {
	m := &matcher{b: b}
	if !p.match(m, ExprNode(expr)) {
		return nil, false
	}
	return &Result{b: b, caps: m.caps}, true
}

// Result maps capture names to matched subtrees. It borrows the Builder
// passed to Match and is only valid for the duration of the analysis of
// the candidate node.
type Result struct {
	b    *ast.Builder
	caps []capture
}

func (r *Result) lookup(name string) (Node, bool) {
	for _, c := range r.caps {
		if c.name == name {
			return c.node, true
		}
	}
	return Node{}, false
}

// Has reports whether the named capture was bound. Alternation branches
// may bind different names; callers branch on Has before reading.
func (r *Result) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Expr returns the captured expression, or ast.NoExprID when the name
// is unbound or bound to a statement.
func (r *Result) Expr(name string) ast.ExprID {
	if n, ok := r.lookup(name); ok {
		return n.Expr
	}
	return ast.NoExprID
}

// Stmt returns the captured statement, or ast.NoStmtID.
func (r *Result) Stmt(name string) ast.StmtID {
	if n, ok := r.lookup(name); ok {
		return n.Stmt
	}
	return ast.NoStmtID
}

// Span resolves the source span of the named capture.
func (r *Result) Span(name string) (source.Span, bool) {
	n, ok := r.lookup(name)
	if !ok {
		return source.Span{}, false
	}
	if n.Expr.IsValid() {
		return r.b.Exprs.Get(n.Expr).Span, true
	}
	if n.Stmt.IsValid() {
		return r.b.Stmts.Get(n.Stmt).Span, true
	}
	return source.Span{}, false
}
