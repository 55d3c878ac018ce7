package parser

import (
	"testing"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/lexer"
	"rill/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("test.rl", []byte(src))
	file := fset.Get(id)

	bag := diag.NewBag(64)
	lx := lexer.New(file, lexer.Options{})
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(file, lx, b, Options{Reporter: diag.BagReporter{Bag: bag}})
	return b, res.File, bag
}

// bodyStmts returns the statement list of the first function in the file.
func bodyStmts(t *testing.T, b *ast.Builder, file ast.FileID) []ast.StmtID {
	t.Helper()
	items := b.Files.Get(file).Items
	if len(items) == 0 {
		t.Fatal("no items parsed")
	}
	body := b.Items.Get(items[0]).Body
	block := b.Exprs.BlockData(body)
	if block == nil {
		t.Fatal("function body is not a block")
	}
	return block.Stmts
}

func stmtExpr(t *testing.T, b *ast.Builder, st ast.StmtID) ast.ExprID {
	t.Helper()
	data := b.Stmts.ExprData(st)
	if data == nil {
		t.Fatalf("statement %v is not an expression statement", st)
	}
	return data.Expr
}

func TestParseFile_LetAndCall(t *testing.T) {
	b, file, bag := parseSrc(t, `
fn main() {
    let x = 1;
    foo(x, 2);
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	stmts := bodyStmts(t, b, file)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	let := b.Stmts.LetData(stmts[0])
	if let == nil || let.Name != "x" {
		t.Errorf("first statement is not 'let x'")
	}
	call := b.Exprs.CallData(stmtExpr(t, b, stmts[1]))
	if call == nil || len(call.Args) != 2 {
		t.Errorf("second statement is not a two-argument call")
	}
	if b.Stmts.Get(stmts[1]).Kind != ast.StmtSemi {
		t.Errorf("call statement should carry a semicolon")
	}
}

func TestParseFile_NestedIf(t *testing.T) {
	b, file, bag := parseSrc(t, `
fn f() {
    if a {
        if b {
            c();
        }
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	stmts := bodyStmts(t, b, file)
	outer := b.Exprs.IfData(stmtExpr(t, b, stmts[0]))
	if outer == nil {
		t.Fatal("expected outer if")
	}
	if outer.Else.IsValid() {
		t.Error("outer if must have no else")
	}
	thenBlock := b.Exprs.BlockData(outer.Then)
	if thenBlock == nil || len(thenBlock.Stmts) != 1 {
		t.Fatalf("outer then-block should hold exactly one statement")
	}
	inner := b.Exprs.IfData(stmtExpr(t, b, thenBlock.Stmts[0]))
	if inner == nil {
		t.Fatal("expected inner if inside outer then-block")
	}
	if b.Stmts.Get(thenBlock.Stmts[0]).Kind != ast.StmtExpr {
		t.Error("inner if in tail position should be a plain expression statement")
	}
}

func TestParseFile_ElseChain(t *testing.T) {
	b, file, bag := parseSrc(t, `
fn f() {
    if a {
        x();
    } else if b {
        y();
    } else {
        z();
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	stmts := bodyStmts(t, b, file)
	first := b.Exprs.IfData(stmtExpr(t, b, stmts[0]))
	if first == nil || !first.Else.IsValid() {
		t.Fatal("expected if with else")
	}
	second := b.Exprs.IfData(first.Else)
	if second == nil {
		t.Fatal("else branch should be the chained if")
	}
	if b.Exprs.BlockData(second.Else) == nil {
		t.Error("final else should be a block")
	}
}

func TestParseFile_IfLet(t *testing.T) {
	b, file, bag := parseSrc(t, `
fn f() {
    if let Some(y) = opt {
        use(y);
    } else {
        fallback();
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	stmts := bodyStmts(t, b, file)
	iflet := b.Exprs.IfLetData(stmtExpr(t, b, stmts[0]))
	if iflet == nil {
		t.Fatal("expected if-let")
	}
	pat := b.Exprs.CallData(iflet.Pat)
	if pat == nil || len(pat.Args) != 1 {
		t.Fatal("pattern should be a one-argument constructor")
	}
	if head := b.Exprs.IdentData(pat.Callee); head == nil || head.Name != "Some" {
		t.Error("pattern head should be Some")
	}
	if scr := b.Exprs.IdentData(iflet.Scrutinee); scr == nil || scr.Name != "opt" {
		t.Error("scrutinee should be opt")
	}
	if !iflet.Else.IsValid() {
		t.Error("if-let should carry its else block")
	}
}

func TestParseFile_MacroExpansionContext(t *testing.T) {
	b, file, bag := parseSrc(t, `
fn f() {
    if a {
        inner!(if b { c(); });
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	stmts := bodyStmts(t, b, file)
	outer := b.Exprs.IfData(stmtExpr(t, b, stmts[0]))
	if outer == nil {
		t.Fatal("expected outer if")
	}
	if outer.Then.IsValid() && b.Exprs.Get(outer.Then).Span.Ctx != source.NoExpansion {
		t.Error("user-written block must keep NoExpansion context")
	}
	thenBlock := b.Exprs.BlockData(outer.Then)
	macroExpr := stmtExpr(t, b, thenBlock.Stmts[0])
	macro := b.Exprs.MacroData(macroExpr)
	if macro == nil {
		t.Fatal("expected macro call")
	}
	if b.Exprs.Get(macroExpr).Span.Ctx != source.NoExpansion {
		t.Error("the macro call itself is user-written")
	}
	if macro.Ctx == source.NoExpansion {
		t.Fatal("macro body must get a fresh expansion context")
	}
	if got := b.Exprs.Get(macro.Body).Span.Ctx; got != macro.Ctx {
		t.Errorf("body span context = %d, want %d", got, macro.Ctx)
	}
	innerIf := b.Exprs.IfData(macro.Body)
	if innerIf == nil {
		t.Fatal("macro body should parse as an if expression")
	}
	if got := b.Exprs.Get(innerIf.Then).Span.Ctx; got != macro.Ctx {
		t.Errorf("nested spans inside macro body should inherit its context, got %d", got)
	}
}

func TestParseExpr_Precedence(t *testing.T) {
	b, file, bag := parseSrc(t, `
fn f() {
    let r = a || b && c == d + e * g;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	stmts := bodyStmts(t, b, file)
	root := b.Exprs.BinaryData(b.Stmts.LetData(stmts[0]).Init)
	if root == nil || root.Op != ast.BinOrOr {
		t.Fatal("|| must be the weakest binding operator")
	}
	and := b.Exprs.BinaryData(root.Right)
	if and == nil || and.Op != ast.BinAndAnd {
		t.Fatal("&& should sit under ||")
	}
	eq := b.Exprs.BinaryData(and.Right)
	if eq == nil || eq.Op != ast.BinEq {
		t.Fatal("== should sit under &&")
	}
	add := b.Exprs.BinaryData(eq.Right)
	if add == nil || add.Op != ast.BinAdd {
		t.Fatal("+ should sit under ==")
	}
	mul := b.Exprs.BinaryData(add.Right)
	if mul == nil || mul.Op != ast.BinMul {
		t.Fatal("* should bind tightest")
	}
}

func TestParseExpr_LeftAssociative(t *testing.T) {
	b, file, bag := parseSrc(t, `
fn f() {
    let r = a - b - c;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	stmts := bodyStmts(t, b, file)
	root := b.Exprs.BinaryData(b.Stmts.LetData(stmts[0]).Init)
	if root == nil || root.Op != ast.BinSub {
		t.Fatal("expected subtraction at root")
	}
	left := b.Exprs.BinaryData(root.Left)
	if left == nil {
		t.Fatal("a - b - c must associate to the left")
	}
	if right := b.Exprs.IdentData(root.Right); right == nil || right.Name != "c" {
		t.Error("rightmost operand should be c")
	}
}

func TestParseExpr_GroupAndUnary(t *testing.T) {
	b, file, bag := parseSrc(t, `
fn f() {
    let r = !(a || b);
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	stmts := bodyStmts(t, b, file)
	not := b.Exprs.UnaryData(b.Stmts.LetData(stmts[0]).Init)
	if not == nil || not.Op != ast.UnaryNot {
		t.Fatal("expected logical not")
	}
	group := b.Exprs.GroupData(not.Operand)
	if group == nil {
		t.Fatal("operand should be a parenthesized group")
	}
	if or := b.Exprs.BinaryData(group.Inner); or == nil || or.Op != ast.BinOrOr {
		t.Error("group should contain a || b")
	}
}

func TestParseFile_MissingSemicolon(t *testing.T) {
	_, _, bag := parseSrc(t, `
fn f() {
    foo()
    bar();
}
`)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Error("expected a missing-semicolon diagnostic")
	}
}

func TestParseFile_MaxErrors(t *testing.T) {
	_, _, bag := parseSrc2(t, "fn f() { @ @ @ @ @ }", 2)
	if got := bag.Len(); got > 3 {
		t.Errorf("parse should stop near the error cap, got %d diagnostics", got)
	}
}

func parseSrc2(t *testing.T, src string, maxErrors uint) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("test.rl", []byte(src))
	file := fset.Get(id)

	bag := diag.NewBag(64)
	lx := lexer.New(file, lexer.Options{})
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(file, lx, b, Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: maxErrors})
	return b, res.File, bag
}
