package lexer

import (
	"rill/internal/source"
)

// ErrKind classifies lexer failures without pulling diag into this package.
type ErrKind uint8

const (
	ErrUnknownChar ErrKind = iota
	ErrUnterminatedString
	ErrUnterminatedBlockComment
)

// Reporter — тонкий интерфейс, чтобы не тянуть diag сюда.
// Лексер только вызывает его; в diag-коды ошибки превращает внешний слой.
type Reporter interface {
	Report(kind ErrKind, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(kind ErrKind, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
