package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"rill/internal/ast"
	"rill/internal/config"
	"rill/internal/diag"
	"rill/internal/lexer"
	"rill/internal/lint"
	"rill/internal/parser"
	"rill/internal/source"
)

// SourceExt is the file extension the directory walk picks up.
const SourceExt = ".rl"

// Options configures a lint run over a directory.
type Options struct {
	Config config.Config
	// Jobs ограничивает параллелизм; <=0 — GOMAXPROCS.
	Jobs int
	// Cache включает дисковый кэш диагностик; nil — без кэша.
	Cache *DiskCache
}

// listSourceFiles возвращает отсортированный список всех *.rl файлов.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// activeChecks resolves the configured check set against the registry.
func activeChecks(cfg config.Lint) []lint.Check {
	var out []lint.Check
	for _, c := range lint.All() {
		if cfg.Enabled(c.Meta().Name) {
			out = append(out, c)
		}
	}
	return out
}

// LintFile lexes, parses and checks one already-loaded file. With a
// warm cache the parse is skipped and diagnostics are replayed.
func LintFile(fileSet *source.FileSet, fileID source.FileID, cfg config.Config, cache *DiskCache) FileResult {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(cfg.Lint.MaxDiagnostics)
	checks := activeChecks(cfg.Lint)

	var key Digest
	if cache != nil {
		key = cacheKey(file, cfg.Lint, checks)
		if cached, hit, err := cache.Get(key); err == nil && hit {
			for _, d := range cached {
				bag.Add(remapFile(d, fileID))
			}
			return FileResult{
				Path:   file.Path,
				FileID: fileID,
				Bag:    bag,
				Cached: true,
			}
		}
	}

	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: lexReporter{reporter: reporter}})
	builder := ast.NewBuilder(ast.Hints{})
	parsed := parser.ParseFile(file, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: cfg.Lint.MaxDiagnostics,
	})

	pass := &lint.Pass{
		Builder:  builder,
		FileSet:  fileSet,
		File:     parsed.File,
		Reporter: diag.NewDedupReporter(reporter),
	}
	for _, c := range checks {
		c.Run(pass)
	}
	bag.Sort()

	if cache != nil {
		// Промах кэша не фатален, как и неудачная запись.
		_ = cache.Put(key, bag.Items())
	}

	return FileResult{
		Path:    file.Path,
		FileID:  fileID,
		ASTFile: parsed.File,
		Builder: builder,
		Bag:     bag,
	}
}

// LintPath loads and checks a single file from disk.
func LintPath(fileSet *source.FileSet, path string, cfg config.Config, cache *DiskCache) FileResult {
	fileID, err := fileSet.Load(path)
	if err != nil {
		bag := diag.NewBag(cfg.Lint.MaxDiagnostics)
		bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
		return FileResult{Path: path, Bag: bag}
	}
	return LintFile(fileSet, fileID, cfg, cache)
}

// LintDir checks every source file under dir in parallel. The returned
// slice is ordered by path regardless of completion order.
func LintDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Загружаем последовательно: FileSet.Add не потокобезопасен.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.Config.Lint.MaxDiagnostics)
				bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				return nil
			}

			results[i] = LintFile(fileSet, fileIDs[path], opts.Config, opts.Cache)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
