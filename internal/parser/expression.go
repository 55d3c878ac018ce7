package parser

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/source"
	"rill/internal/token"
)

func binOpFor(kind token.Kind) (ast.BinOp, bool) {
	switch kind {
	case token.OrOr:
		return ast.BinOrOr, true
	case token.AndAnd:
		return ast.BinAndAnd, true
	case token.EqEq:
		return ast.BinEq, true
	case token.BangEq:
		return ast.BinNe, true
	case token.Lt:
		return ast.BinLt, true
	case token.LtEq:
		return ast.BinLe, true
	case token.Gt:
		return ast.BinGt, true
	case token.GtEq:
		return ast.BinGe, true
	case token.Plus:
		return ast.BinAdd, true
	case token.Minus:
		return ast.BinSub, true
	case token.Star:
		return ast.BinMul, true
	case token.Slash:
		return ast.BinDiv, true
	case token.Percent:
		return ast.BinRem, true
	}
	return 0, false
}

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinaryExpr(1)
}

// parseBinaryExpr — precedence climbing поверх ast.BinOp.Precedence.
// Все бинарные операторы лево-ассоциативны.
func (p *Parser) parseBinaryExpr(minPrec int) ast.ExprID {
	start := p.tok.Span.Start
	left := p.parseUnaryExpr()
	if !left.IsValid() {
		return ast.NoExprID
	}
	for !p.fatal {
		op, ok := binOpFor(p.tok.Kind)
		if !ok || op.Precedence() < minPrec {
			return left
		}
		p.next()
		right := p.parseBinaryExpr(op.Precedence() + 1)
		if !right.IsValid() {
			return ast.NoExprID
		}
		left = p.builder.Exprs.NewBinary(p.span(start), op, left, right)
	}
	return left
}

func (p *Parser) parseUnaryExpr() ast.ExprID {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.Bang:
		p.next()
		operand := p.parseUnaryExpr()
		if !operand.IsValid() {
			return ast.NoExprID
		}
		return p.builder.Exprs.NewUnary(p.span(start), ast.UnaryNot, operand)
	case token.Minus:
		p.next()
		operand := p.parseUnaryExpr()
		if !operand.IsValid() {
			return ast.NoExprID
		}
		return p.builder.Exprs.NewUnary(p.span(start), ast.UnaryNeg, operand)
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() ast.ExprID {
	start := p.tok.Span.Start
	expr := p.parsePrimaryExpr()
	for expr.IsValid() && p.at(token.LParen) && !p.fatal {
		args := p.parseArgs()
		expr = p.builder.Exprs.NewCall(p.span(start), expr, args)
	}
	return expr
}

// parseArgs := '(' [expr {',' expr}] ')'
// Вызывается только когда текущий токен — '('.
func (p *Parser) parseArgs() []ast.ExprID {
	p.next() // (
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) && !p.fatal {
		arg := p.parseExpr()
		if !arg.IsValid() {
			break
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eat(token.RParen) {
		p.errorAt(diag.SynUnclosedParen, p.tok.Span, "expected ')' in argument list")
	}
	return args
}

func (p *Parser) parsePrimaryExpr() ast.ExprID {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.Ident:
		name := p.tok.Text
		p.next()
		if p.at(token.Bang) {
			return p.parseMacro(start, name)
		}
		return p.builder.Exprs.NewIdent(p.span(start), name)

	case token.IntLit, token.StringLit, token.KwTrue, token.KwFalse:
		text := p.tok.Text
		p.next()
		return p.builder.Exprs.NewLit(p.span(start), text)

	case token.LParen:
		p.next()
		inner := p.parseExpr()
		if !p.eat(token.RParen) {
			p.errorAt(diag.SynUnclosedParen, p.tok.Span, "expected ')'")
		}
		if !inner.IsValid() {
			return ast.NoExprID
		}
		return p.builder.Exprs.NewGroup(p.span(start), inner)

	case token.LBrace:
		return p.parseBlock()

	case token.KwIf:
		return p.parseIf()
	}

	p.errorAt(diag.SynExpectExpression, p.tok.Span, "expected expression, found '"+p.tok.Kind.String()+"'")
	return ast.NoExprID
}

// parseMacro := Ident '!' '(' expr ')'
// Спаны внутри тела получают свежий контекст расширения: код, который
// макрос подставил, не считается написанным пользователем.
func (p *Parser) parseMacro(start uint32, name string) ast.ExprID {
	p.next() // !
	if !p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after macro name") {
		return ast.NoExprID
	}

	p.expansions++
	inner := source.ExpansionID(p.expansions)

	saved := p.ctx
	p.ctx = inner
	body := p.parseExpr()
	p.ctx = saved

	if !p.eat(token.RParen) {
		p.errorAt(diag.SynUnclosedParen, p.tok.Span, "expected ')' to close macro call")
	}
	if !body.IsValid() {
		return ast.NoExprID
	}
	return p.builder.Exprs.NewMacro(p.span(start), name, body, inner)
}

// parseIf := 'if' cond block else?
//          | 'if' 'let' pattern '=' expr block else?
// else    := 'else' (block | parseIf)
func (p *Parser) parseIf() ast.ExprID {
	start := p.tok.Span.Start
	p.next() // if

	if p.eat(token.KwLet) {
		pat := p.parseBindingPattern()
		p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in if-let")
		scrutinee := p.parseExpr()
		then := p.expectBlock()
		els := p.parseElse()
		if !pat.IsValid() || !scrutinee.IsValid() || !then.IsValid() {
			return ast.NoExprID
		}
		return p.builder.Exprs.NewIfLet(p.span(start), pat, scrutinee, then, els)
	}

	cond := p.parseExpr()
	then := p.expectBlock()
	els := p.parseElse()
	if !cond.IsValid() || !then.IsValid() {
		return ast.NoExprID
	}
	return p.builder.Exprs.NewIf(p.span(start), cond, then, els)
}

func (p *Parser) expectBlock() ast.ExprID {
	if !p.at(token.LBrace) {
		p.errorAt(diag.SynExpectBlock, p.tok.Span, "expected block")
		return ast.NoExprID
	}
	return p.parseBlock()
}

func (p *Parser) parseElse() ast.ExprID {
	if !p.eat(token.KwElse) {
		return ast.NoExprID
	}
	if p.at(token.KwIf) {
		return p.parseIf()
	}
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	p.errorAt(diag.SynExpectBlock, p.tok.Span, "expected block or 'if' after 'else'")
	return ast.NoExprID
}

// parseBindingPattern := Ident ['(' Ident {',' Ident} ')']
// Паттерн хранится как обычное выражение: ident или ctor-образный вызов.
func (p *Parser) parseBindingPattern() ast.ExprID {
	start := p.tok.Span.Start
	name := p.tok.Text
	if !p.expect(token.Ident, diag.SynExpectIdentifier, "expected pattern") {
		return ast.NoExprID
	}
	head := p.builder.Exprs.NewIdent(p.span(start), name)
	if !p.at(token.LParen) {
		return head
	}
	args := p.parseArgs()
	return p.builder.Exprs.NewCall(p.span(start), head, args)
}
