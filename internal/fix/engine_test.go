package fix

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rill/internal/diag"
	"rill/internal/source"
)

func loadTemp(t *testing.T, content string) (*source.FileSet, source.FileID, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.rl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return fs, id, path
}

func replaceFix(id string, file source.FileID, content, old, with string, appl diag.FixApplicability) diag.Diagnostic {
	start := uint32(strings.Index(content, old))
	sp := source.Span{File: file, Start: start, End: start + uint32(len(old))}
	return diag.NewWarning(diag.LintCollapsibleIf, sp, "collapse").WithFix(diag.Fix{
		ID:            id,
		Title:         "try",
		Applicability: appl,
		Edits:         []diag.TextEdit{{Span: sp, NewText: with, OldText: old}},
	})
}

func TestApply_Once(t *testing.T) {
	content := "fn f() { if x { if y { a(); } } }\n"
	fs, id, path := loadTemp(t, content)

	d := replaceFix("one", id, content, "if x { if y { a(); } }", "if x && y { a(); }", diag.FixAlwaysSafe)
	res, err := Apply(fs, []diag.Diagnostic{d}, Options{Mode: ModeOnce})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "one" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "fn f() { if x && y { a(); } }\n" {
		t.Errorf("file after fix = %q", got)
	}
}

func TestApply_OnceTakesSafeFirst(t *testing.T) {
	content := "aa bb\n"
	fs, id, _ := loadTemp(t, content)

	risky := replaceFix("risky", id, content, "aa", "AA", diag.FixMaybeIncorrect)
	safe := replaceFix("safe", id, content, "bb", "BB", diag.FixAlwaysSafe)
	res, err := Apply(fs, []diag.Diagnostic{risky, safe}, Options{Mode: ModeOnce})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "safe" {
		t.Fatalf("ModeOnce must prefer the safe fix, applied = %+v", res.Applied)
	}
}

func TestApply_AllSkipsUnsafe(t *testing.T) {
	content := "aa bb\n"
	fs, id, path := loadTemp(t, content)

	safe := replaceFix("safe", id, content, "aa", "AA", diag.FixAlwaysSafe)
	risky := replaceFix("risky", id, content, "bb", "BB", diag.FixMaybeIncorrect)
	res, err := Apply(fs, []diag.Diagnostic{safe, risky}, Options{Mode: ModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "safe" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	found := false
	for _, s := range res.Skipped {
		if s.ID == "risky" {
			found = true
		}
	}
	if !found {
		t.Error("unsafe fix should be reported as skipped")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "AA bb\n" {
		t.Errorf("file = %q", got)
	}
}

func TestApply_SequentialEditsShiftOffsets(t *testing.T) {
	content := "one two three\n"
	fs, id, path := loadTemp(t, content)

	first := replaceFix("first", id, content, "one", "1", diag.FixAlwaysSafe)
	second := replaceFix("second", id, content, "three", "3", diag.FixAlwaysSafe)
	if _, err := Apply(fs, []diag.Diagnostic{first, second}, Options{Mode: ModeAll}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "1 two 3\n" {
		t.Errorf("offsets after the first edit must shift, file = %q", got)
	}
}

func TestApply_StaleTextSkips(t *testing.T) {
	content := "old text\n"
	fs, id, _ := loadTemp(t, content)

	d := replaceFix("stale", id, content, "old", "new", diag.FixAlwaysSafe)
	d.Fixes[0].Edits[0].OldText = "different"
	res, err := Apply(fs, []diag.Diagnostic{d}, Options{Mode: ModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || !strings.Contains(res.Skipped[0].Reason, "does not match") {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApply_OverlappingFixesConflict(t *testing.T) {
	content := "abcdef\n"
	fs, id, path := loadTemp(t, content)

	a := replaceFix("a", id, content, "abcd", "X", diag.FixAlwaysSafe)
	b := replaceFix("b", id, content, "cdef", "Y", diag.FixAlwaysSafe)
	res, err := Apply(fs, []diag.Diagnostic{a, b}, Options{Mode: ModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("exactly one of two overlapping fixes may apply, got %+v", res.Applied)
	}
	if len(res.Skipped) != 1 || !strings.Contains(res.Skipped[0].Reason, "conflicts") {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "Xef\n" {
		t.Errorf("file = %q", got)
	}
}

func TestApply_ByID(t *testing.T) {
	content := "aa bb\n"
	fs, id, path := loadTemp(t, content)

	a := replaceFix("a", id, content, "aa", "AA", diag.FixAlwaysSafe)
	b := replaceFix("b", id, content, "bb", "BB", diag.FixAlwaysSafe)
	res, err := Apply(fs, []diag.Diagnostic{a, b}, Options{Mode: ModeID, TargetID: "b"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "b" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "aa BB\n" {
		t.Errorf("file = %q", got)
	}

	if _, err := Apply(fs, []diag.Diagnostic{a}, Options{Mode: ModeID, TargetID: "zzz"}); !errors.Is(err, ErrNoFixes) {
		t.Errorf("unknown id should yield ErrNoFixes, got %v", err)
	}
}

func TestApply_DryRunWritesNothing(t *testing.T) {
	content := "aa\n"
	fs, id, path := loadTemp(t, content)

	d := replaceFix("a", id, content, "aa", "AA", diag.FixAlwaysSafe)
	res, err := Apply(fs, []diag.Diagnostic{d}, Options{Mode: ModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || len(res.FileChanges) != 1 {
		t.Fatalf("dry run should still report the work: %+v", res)
	}
	got, _ := os.ReadFile(path)
	if string(got) != content {
		t.Errorf("dry run must not touch the file, got %q", got)
	}
}

func TestApply_VirtualFileRejected(t *testing.T) {
	fs := source.NewFileSet()
	content := "aa\n"
	id := fs.AddVirtual("mem.rl", []byte(content))

	d := replaceFix("a", id, content, "aa", "AA", diag.FixAlwaysSafe)
	res, err := Apply(fs, []diag.Diagnostic{d}, Options{Mode: ModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}
