package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"rill/internal/diag"
	"rill/internal/fix"
	"rill/internal/source"
	"rill/internal/ui"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.rl|directory>",
	Short: "Apply suggested fixes to a source file or directory",
	Long:  "Run checks, surface available fixes, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all always-safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().Bool("interactive", false, "review each fix before applying")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	if interactive && (applyAll || applyOnceFlag || targetID != "") {
		return fmt.Errorf("--interactive cannot be combined with --all, --once or --id")
	}
	if interactive && !isTerminal(os.Stdout) {
		return fmt.Errorf("--interactive requires a terminal")
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// id уникален только в пределах одного файла
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: id can only be used with a single file")
	}

	fileSet, bag, _, err := collectDiagnostics(cmd, targetPath)
	if err != nil {
		return err
	}
	bag.Sort()
	diagnostics := bag.Items()

	if interactive {
		diagnostics, err = reviewFixes(fileSet, diagnostics)
		if err != nil {
			return err
		}
		if diagnostics == nil {
			fmt.Fprintln(os.Stdout, "No fixes accepted.")
			return nil
		}
	}

	mode := fix.ModeOnce
	switch {
	case interactive:
		mode = fix.ModeAll
	case targetID != "":
		mode = fix.ModeID
	case applyAll:
		mode = fix.ModeAll
	}

	res, applyErr := fix.Apply(fileSet, diagnostics, fix.Options{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	return reportApplyResult(res, applyErr, dryRun)
}

// reviewFixes показывает каждый фикс в TUI и возвращает диагностики
// только с принятыми фиксами. Принятые пользователем фиксы считаются
// безопасными. nil означает, что ничего не принято.
func reviewFixes(fileSet *source.FileSet, diagnostics []diag.Diagnostic) ([]diag.Diagnostic, error) {
	type ref struct{ diagIdx, fixIdx int }
	refs := make(map[string]ref)

	var items []ui.ReviewItem
	for di, d := range diagnostics {
		for fi, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			key := strconv.Itoa(len(items))
			refs[key] = ref{diagIdx: di, fixIdx: fi}

			start, _ := fileSet.Resolve(d.Primary)
			file := fileSet.Get(d.Primary.File)
			items = append(items, ui.ReviewItem{
				FixID:   key,
				Path:    file.FormatPath("relative", fileSet.BaseDir()),
				Line:    start.Line,
				Message: d.Message,
				Title:   f.Title,
				OldText: f.Edits[0].OldText,
				NewText: f.Edits[0].NewText,
			})
		}
	}
	if len(items) == 0 {
		return nil, nil
	}

	accepted, err := ui.Review(items)
	if err != nil {
		return nil, fmt.Errorf("fix: interactive review failed: %w", err)
	}
	if len(accepted) == 0 {
		return nil, nil
	}

	keep := make(map[int]map[int]bool)
	for _, key := range accepted {
		r := refs[key]
		if keep[r.diagIdx] == nil {
			keep[r.diagIdx] = make(map[int]bool)
		}
		keep[r.diagIdx][r.fixIdx] = true
	}

	var out []diag.Diagnostic
	for di, d := range diagnostics {
		fixes, ok := keep[di]
		if !ok {
			continue
		}
		filtered := d
		filtered.Fixes = nil
		for fi, f := range d.Fixes {
			if !fixes[fi] {
				continue
			}
			f.Applicability = diag.FixAlwaysSafe
			filtered.Fixes = append(filtered.Fixes, f)
		}
		out = append(out, filtered)
	}
	return out, nil
}

func reportApplyResult(res *fix.Result, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(os.Stdout, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.Path
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 && !dryRun {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
