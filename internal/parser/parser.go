package parser

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/lexer"
	"rill/internal/source"
	"rill/internal/token"
)

// Parser превращает поток токенов в арены ast.Builder.
// Один Parser — один файл.
type Parser struct {
	lx      *lexer.Lexer
	builder *ast.Builder
	opts    Options

	fileID  source.FileID
	tok     token.Token
	prevEnd uint32
	errs    uint
	fatal   bool

	// ctx — контекст расширения для создаваемых спанов.
	// Внутри тела макроса получает свежее значение.
	ctx        source.ExpansionID
	expansions uint32
}

// ParseFile parses one file into builder and returns the allocated file node.
func ParseFile(file *source.File, lx *lexer.Lexer, builder *ast.Builder, opts Options) Result {
	p := &Parser{
		lx:      lx,
		builder: builder,
		opts:    opts,
		fileID:  file.ID,
	}
	p.tok = lx.Next()

	start := p.tok.Span.Start
	fileNode := builder.Files.New(source.Span{File: file.ID, Start: start, End: start})

	for p.tok.Kind != token.EOF && !p.fatal {
		if p.tok.Kind != token.KwFn {
			p.errorAt(diag.SynUnexpectedToken, p.tok.Span, "expected 'fn' at top level")
			p.next()
			continue
		}
		if item := p.parseFn(); item.IsValid() {
			p.builder.PushItem(fileNode, item)
		}
	}

	f := builder.Files.Get(fileNode)
	f.Span = f.Span.Cover(source.Span{File: file.ID, Start: start, End: p.prevEnd})
	return Result{File: fileNode}
}

func (p *Parser) next() {
	p.prevEnd = p.tok.Span.End
	p.tok = p.lx.Next()
}

func (p *Parser) at(kind token.Kind) bool {
	return p.tok.Kind == kind
}

func (p *Parser) eat(kind token.Kind) bool {
	if p.at(kind) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind, code diag.Code, msg string) bool {
	if p.eat(kind) {
		return true
	}
	p.errorAt(code, p.tok.Span, msg)
	return false
}

func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	p.errs++
	if p.opts.MaxErrors > 0 && p.errs >= p.opts.MaxErrors {
		p.fatal = true
	}
}

// span строит Span узла от start до конца последнего съеденного токена,
// в текущем контексте расширения.
func (p *Parser) span(start uint32) source.Span {
	return source.Span{
		File:  p.fileID,
		Start: start,
		End:   p.prevEnd,
		Ctx:   p.ctx,
	}
}

// parseFn := 'fn' Ident '(' ')' block
func (p *Parser) parseFn() ast.ItemID {
	start := p.tok.Span.Start
	p.next() // fn

	name := p.tok.Text
	if !p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name") {
		return ast.NoItemID
	}
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")

	if !p.at(token.LBrace) {
		p.errorAt(diag.SynExpectBlock, p.tok.Span, "expected function body")
		return ast.NoItemID
	}
	body := p.parseBlock()
	return p.builder.Items.NewFn(p.span(start), name, body)
}

// parseBlock := '{' stmt* '}'
// Вызывается только когда текущий токен — '{'.
func (p *Parser) parseBlock() ast.ExprID {
	start := p.tok.Span.Start
	p.next() // {

	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.fatal {
		if st := p.parseStmt(); st.IsValid() {
			stmts = append(stmts, st)
		}
	}
	if !p.eat(token.RBrace) {
		p.errorAt(diag.SynUnclosedBrace, p.tok.Span, "expected '}'")
	}
	return p.builder.Exprs.NewBlock(p.span(start), stmts)
}

// parseStmt := 'let' Ident '=' expr ';'
//            | expr ';'   (Semi)
//            | expr       (Expr, только перед '}')
func (p *Parser) parseStmt() ast.StmtID {
	start := p.tok.Span.Start

	if p.at(token.KwLet) {
		p.next()
		name := p.tok.Text
		if !p.expect(token.Ident, diag.SynExpectIdentifier, "expected binding name after 'let'") {
			p.recoverStmt()
			return ast.NoStmtID
		}
		p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in let binding")
		init := p.parseExpr()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let binding")
		return p.builder.Stmts.NewLet(p.span(start), name, init)
	}

	expr := p.parseExpr()
	if !expr.IsValid() {
		p.recoverStmt()
		return ast.NoStmtID
	}

	if p.eat(token.Semicolon) {
		return p.builder.Stmts.NewExpr(p.span(start), expr, true)
	}
	if !p.at(token.RBrace) && !blockLike(p.builder, expr) {
		p.errorAt(diag.SynExpectSemicolon, p.tok.Span, "expected ';' after expression")
	}
	return p.builder.Stmts.NewExpr(p.span(start), expr, false)
}

// blockLike: выражения с телом-блоком не требуют ';' в statement-позиции.
func blockLike(b *ast.Builder, id ast.ExprID) bool {
	switch b.Exprs.Get(id).Kind {
	case ast.ExprIf, ast.ExprIfLet, ast.ExprBlock:
		return true
	default:
		return false
	}
}

// recoverStmt пропускает токены до границы статмента.
func (p *Parser) recoverStmt() {
	for !p.at(token.EOF) && !p.at(token.RBrace) && !p.fatal {
		if p.eat(token.Semicolon) {
			return
		}
		p.next()
	}
}
