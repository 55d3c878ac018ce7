package driver

import (
	"rill/internal/diag"
	"rill/internal/lexer"
	"rill/internal/source"
	"rill/internal/token"
)

// TokenizeFile прогоняет лексер по файлу целиком, до EOF включительно.
func TokenizeFile(fileSet *source.FileSet, fileID source.FileID, maxDiagnostics uint) ([]token.Token, *diag.Bag) {
	bag := diag.NewBag(maxDiagnostics)
	file := fileSet.Get(fileID)

	lx := lexer.New(file, lexer.Options{
		Reporter: lexReporter{reporter: diag.BagReporter{Bag: bag}},
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, bag
}
