package lint

import (
	"rill/internal/ast"
	"rill/internal/diag"
)

// DoubleNeg flags `!!x`: double logical negation is a no-op on booleans
// and usually a leftover from editing.
type DoubleNeg struct{}

func init() { Register(DoubleNeg{}) }

func (DoubleNeg) Meta() Meta {
	return Meta{
		Name: "double-neg",
		Code: diag.LintDoubleNeg,
		Doc:  "`!!x`, a double negation that can be removed",
	}
}

func (DoubleNeg) Run(p *Pass) {
	p.EachExpr(func(id ast.ExprID, node *ast.Expr) {
		if node.Kind != ast.ExprUnary || node.Span.FromExpansion() {
			return
		}
		outer := p.Builder.Exprs.UnaryData(id)
		if outer == nil || outer.Op != ast.UnaryNot {
			return
		}
		inner := p.Builder.Exprs.UnaryData(outer.Operand)
		if inner == nil || inner.Op != ast.UnaryNot {
			return
		}

		appl := diag.FixAlwaysSafe
		operandSpan := p.Builder.Exprs.Get(inner.Operand).Span
		replacement := p.SnippetOr(operandSpan, "..", &appl)

		old, _ := p.Snippet(node.Span)
		p.Report(diag.LintDoubleNeg, node.Span, "this double negation can be removed").
			WithFix(diag.Fix{
				ID:            "remove-double-neg",
				Title:         "try",
				Applicability: appl,
				IsPreferred:   true,
				Edits: []diag.TextEdit{{
					Span:    node.Span,
					NewText: replacement,
					OldText: old,
				}},
			}).
			Emit()
	})
}
