// Package pattern implements a small declarative shape-matcher over the
// rill AST: literal node kinds, wildcard, ordered alternation, optional
// sub-patterns and named captures. Patterns are built once and are
// read-only afterwards; matching never mutates the tree.
package pattern

// Pattern описывает форму поддерева. Значения иммутабельны после
// конструирования и безопасны для конкурентного использования.
type Pattern interface {
	match(m *matcher, n Node) bool
}

// Any matches any present node, expression or statement.
var Any Pattern = anyPat{}

// Absent matches only a missing node (an empty else slot).
var Absent Pattern = absentPat{}

// If matches an if expression; els receives the else slot, which is
// absent when the source had no else branch.
func If(cond, then, els Pattern) Pattern { return ifPat{cond, then, els} }

// IfLet matches an if-let expression.
func IfLet(pat, scrutinee, then, els Pattern) Pattern {
	return ifLetPat{pat, scrutinee, then, els}
}

// BlockOne matches a block containing exactly one statement.
func BlockOne(stmt Pattern) Pattern { return blockOnePat{stmt} }

// Stmt matches an expression statement, with or without a trailing
// semicolon, and applies inner to its expression. Macro calls are seen
// through: inner observes the expansion body, whose spans carry the
// expansion context.
func Stmt(inner Pattern) Pattern { return stmtPat{inner} }

// Alt tries alternatives left to right; the first structural match wins
// and later alternatives are never attempted. Captures made by a failed
// alternative are rolled back.
func Alt(alts ...Pattern) Pattern { return altPat{alts} }

// Opt matches an absent node or applies p to a present one.
func Opt(p Pattern) Pattern { return optPat{p} }

// Capture binds the node matched by p under name. A name binds at most
// one node per successful match; on mismatch no binding survives.
func Capture(name string, p Pattern) Pattern { return capturePat{name, p} }

type anyPat struct{}

func (anyPat) match(_ *matcher, n Node) bool { return !n.absent() }

type absentPat struct{}

func (absentPat) match(_ *matcher, n Node) bool { return n.absent() }

type ifPat struct{ cond, then, els Pattern }

func (p ifPat) match(m *matcher, n Node) bool {
	data := m.b.Exprs.IfData(n.Expr)
	if data == nil {
		return false
	}
	return p.cond.match(m, ExprNode(data.Cond)) &&
		p.then.match(m, ExprNode(data.Then)) &&
		p.els.match(m, ExprNode(data.Else))
}

type ifLetPat struct{ pat, scrutinee, then, els Pattern }

func (p ifLetPat) match(m *matcher, n Node) bool {
	data := m.b.Exprs.IfLetData(n.Expr)
	if data == nil {
		return false
	}
	return p.pat.match(m, ExprNode(data.Pat)) &&
		p.scrutinee.match(m, ExprNode(data.Scrutinee)) &&
		p.then.match(m, ExprNode(data.Then)) &&
		p.els.match(m, ExprNode(data.Else))
}

type blockOnePat struct{ stmt Pattern }

func (p blockOnePat) match(m *matcher, n Node) bool {
	data := m.b.Exprs.BlockData(n.Expr)
	if data == nil || len(data.Stmts) != 1 {
		return false
	}
	return p.stmt.match(m, StmtNode(data.Stmts[0]))
}

type stmtPat struct{ inner Pattern }

func (p stmtPat) match(m *matcher, n Node) bool {
	data := m.b.Stmts.ExprData(n.Stmt)
	if data == nil {
		return false
	}
	return p.inner.match(m, ExprNode(m.throughMacros(data.Expr)))
}

type altPat struct{ alts []Pattern }

func (p altPat) match(m *matcher, n Node) bool {
	for _, alt := range p.alts {
		mark := len(m.caps)
		if alt.match(m, n) {
			return true
		}
		m.caps = m.caps[:mark] // откат захватов неудачной ветки
	}
	return false
}

type optPat struct{ inner Pattern }

func (p optPat) match(m *matcher, n Node) bool {
	if n.absent() {
		return true
	}
	return p.inner.match(m, n)
}

type capturePat struct {
	name  string
	inner Pattern
}

func (p capturePat) match(m *matcher, n Node) bool {
	if !p.inner.match(m, n) {
		return false
	}
	m.caps = append(m.caps, capture{name: p.name, node: n})
	return true
}
