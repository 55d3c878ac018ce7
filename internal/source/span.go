package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside a file, together with
// the expansion context that produced the text. Spans are immutable values.
type Span struct {
	File  FileID
	Start uint32 // в байтах, включительно
	End   uint32 // в байтах, не включительно
	Ctx   ExpansionID
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// FromExpansion reports whether the span was produced by a macro expansion.
func (s Span) FromExpansion() bool {
	return s.Ctx != NoExpansion
}

// SameCtx reports whether both spans belong to the same expansion context.
// Splicing text across different contexts changes which scope identifiers
// resolve against, so callers must not combine spans when this is false.
func (s Span) SameCtx(other Span) bool {
	return s.Ctx == other.Ctx
}

// Cover extends the span to include other. Spans from another file are
// ignored; the receiver keeps its own context.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
