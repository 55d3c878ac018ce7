package token

import "rill/internal/source"

// TriviaKind classifies non-semantic text attached to tokens.
type TriviaKind uint8

const (
	TriviaLineComment TriviaKind = iota
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	}
	return "Unknown"
}

// Trivia is a comment collected ahead of a token. Whitespace is discarded
// during scanning; comments are preserved so later passes can tell whether a
// region carries commentary before rewriting it.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
