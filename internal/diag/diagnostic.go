package diag

import (
	"rill/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the text under Span with NewText. OldText, when set, is a
// guard: the fix engine refuses the edit if the file no longer contains it.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability signals whether a fix is safe to apply without review.
type FixApplicability uint8

const (
	// FixAlwaysSafe: the edit is mechanical and preserves behaviour.
	FixAlwaysSafe FixApplicability = iota
	// FixMaybeIncorrect: the edit was built from degraded information
	// (e.g. inexact snippets) and needs a human look.
	FixMaybeIncorrect
	// FixUnspecified: no confidence claim at all.
	FixUnspecified
)

func (a FixApplicability) String() string {
	switch a {
	case FixAlwaysSafe:
		return "always-safe"
	case FixMaybeIncorrect:
		return "maybe-incorrect"
	case FixUnspecified:
		return "unspecified"
	}
	return "unknown"
}

// Fix is a data-only description of an automated correction.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
