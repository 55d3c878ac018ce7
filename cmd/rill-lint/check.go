package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rill/internal/config"
	"rill/internal/diag"
	"rill/internal/diagfmt"
	"rill/internal/driver"
	"rill/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rl|directory>",
	Short: "Run lint checks on a source file or directory",
	Long:  "Check runs every enabled lint check and prints diagnostics with suggested fixes.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().String("paths", "auto", "path display mode (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("no-cache", false, "disable the on-disk diagnostics cache")
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = number of CPUs)")
}

func parsePathMode(s string) (diagfmt.PathMode, error) {
	switch s {
	case "auto":
		return diagfmt.PathModeAuto, nil
	case "absolute":
		return diagfmt.PathModeAbsolute, nil
	case "relative":
		return diagfmt.PathModeRelative, nil
	case "basename":
		return diagfmt.PathModeBasename, nil
	}
	return diagfmt.PathModeAuto, fmt.Errorf("unknown path mode: %s", s)
}

// loadConfig находит rill.toml от стартовой директории и применяет
// переопределения из флагов.
func loadConfig(cmd *cobra.Command, startDir string) (config.Config, error) {
	cfg, _, err := config.Discover(startDir)
	if err != nil {
		return config.Config{}, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetUint("max-diagnostics")
	if err != nil {
		return config.Config{}, err
	}
	if maxDiagnostics > 0 {
		cfg.Lint.MaxDiagnostics = maxDiagnostics
	}
	return cfg, nil
}

func openCache(cmd *cobra.Command) *driver.DiskCache {
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if noCache {
		return nil
	}
	// Отсутствие кэша не мешает проверке.
	cache, err := driver.OpenDiskCache("rill")
	if err != nil {
		return nil
	}
	return cache
}

// collectDiagnostics запускает проверки и возвращает объединённый bag.
func collectDiagnostics(cmd *cobra.Command, targetPath string) (*source.FileSet, *diag.Bag, config.Config, error) {
	info, err := os.Stat(targetPath)
	if err != nil {
		return nil, nil, config.Config{}, fmt.Errorf("check: %w", err)
	}

	startDir := targetPath
	if !info.IsDir() {
		startDir = filepath.Dir(targetPath)
	}
	cfg, err := loadConfig(cmd, startDir)
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	cache := openCache(cmd)

	if !info.IsDir() {
		fileSet := source.NewFileSet()
		res := driver.LintPath(fileSet, targetPath, cfg, cache)
		return fileSet, res.Bag, cfg, nil
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	fileSet, results, err := driver.LintDir(cmd.Context(), targetPath, driver.Options{
		Config: cfg,
		Jobs:   jobs,
		Cache:  cache,
	})
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	return fileSet, driver.MergeBags(results, cfg.Lint.MaxDiagnostics), cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	pathsFlag, err := cmd.Flags().GetString("paths")
	if err != nil {
		return err
	}
	pathMode, err := parsePathMode(pathsFlag)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	fileSet, bag, cfg, err := collectDiagnostics(cmd, args[0])
	if err != nil {
		return err
	}
	bag.Sort()

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			PathMode:  pathMode,
			ShowNotes: !quiet,
			ShowFixes: !quiet,
		})
	case "short":
		// по строке на диагностику, удобно для grep и редакторов
		for _, d := range bag.Items() {
			start, _ := fileSet.Resolve(d.Primary)
			file := fileSet.Get(d.Primary.File)
			fmt.Fprintf(os.Stdout, "%s:%d:%d: %s %s\n",
				file.FormatPath("relative", fileSet.BaseDir()),
				start.Line, start.Col, d.Code.ID(), d.Message)
		}
	case "json":
		if err := diagfmt.JSON(os.Stdout, bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     !quiet,
			IncludeFixes:     !quiet,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if bag.HasErrors() {
		return fmt.Errorf("check failed: %d diagnostic(s)", bag.Len())
	}
	if cfg.Lint.WarningsAsErrors && bag.HasWarnings() {
		return fmt.Errorf("check failed: %d warning(s) treated as errors", bag.Len())
	}
	return nil
}
