package token

// Kind enumerates rill token kinds.
type Kind uint8

const (
	EOF Kind = iota
	Error

	Ident
	IntLit
	StringLit

	// keywords
	KwFn
	KwLet
	KwIf
	KwElse
	KwReturn
	KwTrue
	KwFalse

	// operators and punctuation
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	EqEq
	Bang
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Amp
	Pipe
	LParen
	RParen
	LBrace
	RBrace
	Semicolon
	Comma
	Dot
)

var kindNames = map[Kind]string{
	EOF:       "EOF",
	Error:     "Error",
	Ident:     "Ident",
	IntLit:    "IntLit",
	StringLit: "StringLit",
	KwFn:      "fn",
	KwLet:     "let",
	KwIf:      "if",
	KwElse:    "else",
	KwReturn:  "return",
	KwTrue:    "true",
	KwFalse:   "false",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Assign:    "=",
	EqEq:      "==",
	Bang:      "!",
	BangEq:    "!=",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	AndAnd:    "&&",
	OrOr:      "||",
	Amp:       "&",
	Pipe:      "|",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Semicolon: ";",
	Comma:     ",",
	Dot:       ".",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
