package driver

import (
	"rill/internal/diag"
	"rill/internal/lexer"
	"rill/internal/source"
)

// lexReporter адаптирует тонкий lexer.Reporter к diag-кодам.
type lexReporter struct {
	reporter diag.Reporter
}

func (r lexReporter) Report(kind lexer.ErrKind, span source.Span, msg string) {
	code := diag.LexInfo
	switch kind {
	case lexer.ErrUnknownChar:
		code = diag.LexUnknownChar
	case lexer.ErrUnterminatedString:
		code = diag.LexUnterminatedString
	case lexer.ErrUnterminatedBlockComment:
		code = diag.LexUnterminatedBlockComment
	}
	diag.ReportError(r.reporter, code, span, msg).Emit()
}
