package driver

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/source"
)

// FileResult содержит итог проверки одного файла.
type FileResult struct {
	Path    string        // относительный путь к файлу
	FileID  source.FileID // ID файла в FileSet
	ASTFile ast.FileID    // корень дерева, NoFileID при ошибке загрузки
	Builder *ast.Builder  // арены файла; nil при попадании в кэш
	Bag     *diag.Bag     // диагностики файла
	Cached  bool          // диагностики восстановлены из кэша
}

// HasErrors reports whether the file produced error-level diagnostics.
func (r *FileResult) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// MergeBags собирает диагностики всех файлов в один отсортированный Bag.
func MergeBags(results []FileResult, capacity uint) *diag.Bag {
	merged := diag.NewBag(capacity)
	for i := range results {
		if results[i].Bag != nil {
			merged.Merge(results[i].Bag)
		}
	}
	merged.Sort()
	return merged
}
