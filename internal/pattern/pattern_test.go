package pattern

import (
	"testing"

	"rill/internal/ast"
	"rill/internal/lexer"
	"rill/internal/parser"
	"rill/internal/source"
)

// firstStmtExpr parses src and returns the expression of the first
// statement of the first function.
func firstStmtExpr(t *testing.T, src string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	fset := source.NewFileSet()
	file := fset.Get(fset.AddVirtual("test.rl", []byte(src)))

	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(file, lexer.New(file, lexer.Options{}), b, parser.Options{})

	items := b.Files.Get(res.File).Items
	if len(items) == 0 {
		t.Fatalf("no items in %q", src)
	}
	block := b.Exprs.BlockData(b.Items.Get(items[0]).Body)
	if block == nil || len(block.Stmts) == 0 {
		t.Fatalf("empty body in %q", src)
	}
	data := b.Stmts.ExprData(block.Stmts[0])
	if data == nil {
		t.Fatalf("first statement is not an expression in %q", src)
	}
	return b, data.Expr
}

func nestedIfNoElse() Pattern {
	return If(
		Capture("check", Any),
		Capture("then", BlockOne(Stmt(Capture("inner", If(
			Capture("check_inner", Any),
			Capture("content", Any),
			Absent,
		))))),
		Absent,
	)
}

func TestMatch_NestedIfCaptures(t *testing.T) {
	b, expr := firstStmtExpr(t, `
fn f() {
    if a && b {
        if c {
            d();
        }
    }
}
`)
	res, ok := Match(b, nestedIfNoElse(), expr)
	if !ok {
		t.Fatal("pattern should match a nested else-less if")
	}
	for _, name := range []string{"check", "check_inner", "content", "then", "inner"} {
		if !res.Has(name) {
			t.Errorf("capture %q not bound", name)
		}
	}
	check := b.Exprs.BinaryData(res.Expr("check"))
	if check == nil || check.Op != ast.BinAndAnd {
		t.Error("check should bind the outer condition a && b")
	}
	if b.Exprs.IfData(res.Expr("inner")) == nil {
		t.Error("inner should bind the nested if expression")
	}
	if b.Exprs.BlockData(res.Expr("content")) == nil {
		t.Error("content should bind the nested body block")
	}
}

func TestMatch_MultiStatementBlockFails(t *testing.T) {
	b, expr := firstStmtExpr(t, `
fn f() {
    if a {
        prep();
        if c {
            d();
        }
    }
}
`)
	if res, ok := Match(b, nestedIfNoElse(), expr); ok || res != nil {
		t.Fatal("two-statement body must not match")
	}
}

func TestMatch_InnerElseFails(t *testing.T) {
	b, expr := firstStmtExpr(t, `
fn f() {
    if a {
        if c {
            d();
        } else {
            e();
        }
    }
}
`)
	if _, ok := Match(b, nestedIfNoElse(), expr); ok {
		t.Fatal("nested if with an else must not match the else-less pattern")
	}
}

func TestMatch_OptionalElse(t *testing.T) {
	p := If(Any, Any, Opt(Any))

	b, withElse := firstStmtExpr(t, `
fn f() {
    if a { x(); } else { y(); }
}
`)
	if _, ok := Match(b, p, withElse); !ok {
		t.Error("Opt should accept a present else")
	}

	b2, noElse := firstStmtExpr(t, `
fn f() {
    if a { x(); }
}
`)
	if _, ok := Match(b2, p, noElse); !ok {
		t.Error("Opt should accept an absent else")
	}
	if _, ok := Match(b2, If(Any, Any, Any), noElse); ok {
		t.Error("wildcard must not accept an absent slot")
	}
}

func TestMatch_AlternationOrder(t *testing.T) {
	// Обе ветки структурно подходят; выигрывает первая.
	p := Alt(
		If(Capture("first", Any), Any, Opt(Any)),
		If(Capture("second", Any), Any, Opt(Any)),
	)
	b, expr := firstStmtExpr(t, `
fn f() {
    if a { x(); }
}
`)
	res, ok := Match(b, p, expr)
	if !ok {
		t.Fatal("alternation should match")
	}
	if !res.Has("first") {
		t.Error("first alternative must win")
	}
	if res.Has("second") {
		t.Error("later alternatives must never run after a success")
	}
}

func TestMatch_AlternationRollsBackCaptures(t *testing.T) {
	// Первая ветка захватывает cond, но падает на требовании else.
	p := Alt(
		If(Capture("doomed", Any), Any, Any),
		If(Capture("kept", Any), Any, Absent),
	)
	b, expr := firstStmtExpr(t, `
fn f() {
    if a { x(); }
}
`)
	res, ok := Match(b, p, expr)
	if !ok {
		t.Fatal("second alternative should match")
	}
	if res.Has("doomed") {
		t.Error("captures of a failed alternative must be rolled back")
	}
	if !res.Has("kept") {
		t.Error("winning alternative's captures must survive")
	}
}

func TestMatch_SeesThroughMacro(t *testing.T) {
	b, expr := firstStmtExpr(t, `
fn f() {
    if a {
        m!(if c { d(); });
    }
}
`)
	res, ok := Match(b, nestedIfNoElse(), expr)
	if !ok {
		t.Fatal("macro-expanded inner if should still match structurally")
	}
	outer, _ := res.Span("check")
	inner, _ := res.Span("inner")
	if outer.Ctx == inner.Ctx {
		t.Error("expansion body must carry a different context than user code")
	}
	if inner.Ctx == source.NoExpansion {
		t.Error("captured inner if should come from the expansion")
	}
}

func TestMatch_IfLetAlternative(t *testing.T) {
	elseNested := func() Pattern {
		nested := Alt(
			If(Any, Any, Opt(Any)),
			IfLet(Any, Any, Any, Opt(Any)),
		)
		blk := Capture("block", BlockOne(Capture("block_inner", Stmt(Capture("else_", nested)))))
		return Alt(
			If(Any, Any, blk),
			IfLet(Any, Any, Any, blk),
		)
	}

	b, expr := firstStmtExpr(t, `
fn f() {
    if x { a(); } else { if let Some(y) = opt { b(y); } }
}
`)
	res, ok := Match(b, elseNested(), expr)
	if !ok {
		t.Fatal("else holding a single if-let should match")
	}
	if b.Exprs.IfLetData(res.Expr("else_")) == nil {
		t.Error("else_ should bind the nested if-let expression")
	}
	if !res.Stmt("block_inner").IsValid() {
		t.Error("block_inner should bind the statement inside the else block")
	}
	if b.Exprs.BlockData(res.Expr("block")) == nil {
		t.Error("block should bind the else block itself")
	}
}
