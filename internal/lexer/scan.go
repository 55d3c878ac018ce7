package lexer

import (
	"unicode"
	"unicode/utf8"

	"rill/internal/token"
)

const utf8RuneSelf = utf8.RuneSelf

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b < utf8RuneSelf {
			break
		}
		r, size := utf8.DecodeRune(lx.cursor.File.Content[lx.cursor.Off:])
		if !isIdentContinueRune(r) {
			break
		}
		for range size {
			lx.cursor.Bump()
		}
	}

	// Ни одного байта не съели: стартовый rune (не-ASCII символ или битый
	// UTF-8) не годится для идентификатора. Потребляем его целиком, иначе
	// лексер перестаёт продвигаться и Next зацикливается.
	if lx.cursor.Mark() == mark {
		_, size := utf8.DecodeRune(lx.cursor.File.Content[lx.cursor.Off:])
		for range size {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(mark)
		lx.report(ErrUnknownChar, sp, "unknown character")
		return token.Token{
			Kind: token.Error,
			Span: sp,
			Text: lx.cursor.TextFrom(mark),
		}
	}

	text := lx.cursor.TextFrom(mark)
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.cursor.SpanFrom(mark),
		Text: text,
	}
}

func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
		lx.cursor.Bump()
	}
	return token.Token{
		Kind: token.IntLit,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}

func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if b == '"' {
			closed = true
			break
		}
		if b == '\n' {
			break
		}
	}
	sp := lx.cursor.SpanFrom(mark)
	if !closed {
		lx.report(ErrUnterminatedString, sp, "unterminated string literal")
	}
	return token.Token{
		Kind: token.StringLit,
		Span: sp,
		Text: lx.cursor.TextFrom(mark),
	}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	mark := lx.cursor.Mark()
	b := lx.cursor.Bump()

	two := func(next byte, twoKind, oneKind token.Kind) token.Kind {
		if !lx.cursor.EOF() && lx.cursor.Peek() == next {
			lx.cursor.Bump()
			return twoKind
		}
		return oneKind
	}

	var kind token.Kind
	switch b {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '=':
		kind = two('=', token.EqEq, token.Assign)
	case '!':
		kind = two('=', token.BangEq, token.Bang)
	case '<':
		kind = two('=', token.LtEq, token.Lt)
	case '>':
		kind = two('=', token.GtEq, token.Gt)
	case '&':
		kind = two('&', token.AndAnd, token.Amp)
	case '|':
		kind = two('|', token.OrOr, token.Pipe)
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	default:
		kind = token.Error
		lx.report(ErrUnknownChar, lx.cursor.SpanFrom(mark), "unknown character")
	}

	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}
