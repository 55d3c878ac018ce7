package lint

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/pattern"
)

// CollapsibleIf finds nested if statements that can be collapsed by
// &&-combining their conditions, and else blocks holding a single
// if/if-let that can become an else-if chain.
type CollapsibleIf struct{}

func init() { Register(CollapsibleIf{}) }

func (CollapsibleIf) Meta() Meta {
	return Meta{
		Name: "collapsible-if",
		Code: diag.LintCollapsibleIf,
		Doc:  "ifs that can be collapsed (e.g. `if x { if y { .. } }` and `else { if .. }`)",
	}
}

// patIfWithoutElse: внешний if без else, в теле ровно один вложенный
// if без else.
var patIfWithoutElse = pattern.If(
	pattern.Capture("check", pattern.Any),
	pattern.Capture("then", pattern.BlockOne(
		pattern.Stmt(pattern.Capture("inner", pattern.If(
			pattern.Capture("check_inner", pattern.Any),
			pattern.Capture("content", pattern.Any),
			pattern.Absent,
		))),
	)),
	pattern.Absent,
)

// patIfElse: if или if-let, чья else-ветка — блок с единственным
// if/if-let (любой else у вложенного допустим).
var patIfElse = func() pattern.Pattern {
	nested := pattern.Alt(
		pattern.If(pattern.Any, pattern.Any, pattern.Opt(pattern.Any)),
		pattern.IfLet(pattern.Any, pattern.Any, pattern.Any, pattern.Opt(pattern.Any)),
	)
	elseBlock := pattern.Capture("block", pattern.BlockOne(
		pattern.Capture("block_inner", pattern.Stmt(pattern.Capture("else_", nested))),
	))
	return pattern.Alt(
		pattern.If(pattern.Any, pattern.Any, elseBlock),
		pattern.IfLet(pattern.Any, pattern.Any, pattern.Any, elseBlock),
	)
}()

func (c CollapsibleIf) Run(p *Pass) {
	p.EachExpr(func(id ast.ExprID, node *ast.Expr) {
		if node.Kind != ast.ExprIf && node.Kind != ast.ExprIfLet {
			return
		}
		// Кандидаты, порождённые расширением макроса, не рассматриваем.
		if node.Span.FromExpansion() {
			return
		}
		c.checkNestedIf(p, id, node)
		c.checkElseIf(p, id, node)
	})
}

// checkNestedIf collapses `if x { if y { .. } }` into `if x && y { .. }`.
func (c CollapsibleIf) checkNestedIf(p *Pass, id ast.ExprID, node *ast.Expr) {
	res, ok := pattern.Match(p.Builder, patIfWithoutElse, id)
	if !ok {
		return
	}

	// Условия из разных контекстов расширения склеивать нельзя: текстовая
	// склейка поменяла бы область видимости имён.
	innerSpan, _ := res.Span("inner")
	if !node.Span.SameCtx(innerSpan) {
		return
	}

	// Переписывание убирает скобки внешнего then-блока; ведущий
	// комментарий в любом из затронутых блоков потерялся бы молча.
	thenSpan, _ := res.Span("then")
	contentSpan, _ := res.Span("content")
	if p.StartsWithComment(thenSpan) || p.StartsWithComment(contentSpan) {
		return
	}

	appl := diag.FixAlwaysSafe
	lhs := c.condText(p, res.Expr("check"), &appl)
	rhs := c.condText(p, res.Expr("check_inner"), &appl)
	body := p.SnippetOr(contentSpan, "..", &appl)
	replacement := "if " + lhs + " && " + rhs + " " + body

	old, _ := p.Snippet(node.Span)
	p.Report(diag.LintCollapsibleIf, node.Span, "this if statement can be collapsed").
		WithFix(diag.Fix{
			ID:            "collapse-nested-if",
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
}

// checkElseIf collapses `else { if .. }` into `else if ..` by replacing
// the whole else block with the nested conditional's verbatim text.
func (c CollapsibleIf) checkElseIf(p *Pass, id ast.ExprID, _ *ast.Expr) {
	res, ok := pattern.Match(p.Builder, patIfElse, id)
	if !ok {
		return
	}

	// Вложенный if, пришедший из макроса, не переносим.
	elseSpan, _ := res.Span("else_")
	if elseSpan.FromExpansion() {
		return
	}

	blockSpan, _ := res.Span("block")
	if p.StartsWithComment(blockSpan) {
		return
	}

	appl := diag.FixAlwaysSafe
	replacement := p.SnippetOr(elseSpan, "..", &appl)

	old, _ := p.Snippet(blockSpan)
	p.Report(diag.LintCollapsibleIf, blockSpan, "this `else { if .. }` block can be collapsed").
		WithFix(diag.Fix{
			ID:            "collapse-else-if",
			Title:         "try",
			Applicability: appl,
			IsPreferred:   true,
			Edits: []diag.TextEdit{{
				Span:    blockSpan,
				NewText: replacement,
				OldText: old,
			}},
		}).
		Emit()
}

// condText returns the condition's source text, parenthesized only when
// its own precedence binds weaker than &&.
func (c CollapsibleIf) condText(p *Pass, cond ast.ExprID, appl *diag.FixApplicability) string {
	sp := p.Builder.Exprs.Get(cond).Span
	text := p.SnippetOr(sp, "..", appl)
	if bin := p.Builder.Exprs.BinaryData(cond); bin != nil {
		if bin.Op.Precedence() < ast.BinAndAnd.Precedence() {
			return "(" + text + ")"
		}
	}
	return text
}
