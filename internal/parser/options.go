package parser

import (
	"rill/internal/ast"
	"rill/internal/diag"
)

type Options struct {
	// Reporter receives syntax diagnostics; nil silences them.
	Reporter diag.Reporter
	// MaxErrors stops the parse after the given number of reported errors.
	// Zero means no limit.
	MaxErrors uint
}

// Result of parsing a single file.
type Result struct {
	File ast.FileID
}
