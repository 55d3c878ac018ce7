package lint

import (
	"strings"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/source"
)

// Pass is the per-file context handed to every check. All fields are
// read-only during the run.
type Pass struct {
	Builder  *ast.Builder
	FileSet  *source.FileSet
	File     ast.FileID
	Reporter diag.Reporter
}

// EachExpr visits every expression allocated for the file, in allocation
// order (children before their parents).
func (p *Pass) EachExpr(visit func(id ast.ExprID, node *ast.Expr)) {
	n := p.Builder.Exprs.Arena.Len()
	for i := uint32(1); i <= n; i++ {
		id := ast.ExprID(i)
		visit(id, p.Builder.Exprs.Get(id))
	}
}

// Snippet returns the verbatim source text of the span. The flag is
// false when exact text cannot be recovered.
func (p *Pass) Snippet(span source.Span) (string, bool) {
	return p.FileSet.Snippet(span)
}

// SnippetOr returns the span's text, degrading applicability to
// maybe-incorrect and substituting a placeholder when the text cannot
// be recovered exactly. Fixes built from a placeholder must not be
// auto-applied.
func (p *Pass) SnippetOr(span source.Span, placeholder string, appl *diag.FixApplicability) string {
	text, ok := p.Snippet(span)
	if !ok {
		if appl != nil && *appl == diag.FixAlwaysSafe {
			*appl = diag.FixMaybeIncorrect
		}
		return placeholder
	}
	return text
}

// StartsWithComment reports whether the region's leading content, after
// stripping whitespace and opening braces, is a line or block comment.
// A rewrite that would silently drop such a comment must be abandoned.
func (p *Pass) StartsWithComment(span source.Span) bool {
	text, ok := p.Snippet(span)
	if !ok {
		return false
	}
	trimmed := strings.TrimLeft(text, " \t\r\n{")
	return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*")
}

// Report starts a warning-level report for the check's code.
func (p *Pass) Report(code diag.Code, primary source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportWarning(p.Reporter, code, primary, msg)
}
