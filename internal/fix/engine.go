// Package fix applies the text edits attached to diagnostics. Selection
// is deterministic: candidates are ordered by position and preference,
// then filtered by the requested mode. Edits are staged in memory per
// file and only written out when every edit of a fix applied cleanly.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"rill/internal/diag"
	"rill/internal/source"
)

// ErrNoFixes is returned when nothing was selected or applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Mode determines which fixes get applied.
type Mode uint8

const (
	// ModeOnce applies the first safe fix only.
	ModeOnce Mode = iota
	// ModeAll applies every always-safe fix.
	ModeAll
	// ModeID applies the single fix with Options.TargetID.
	ModeID
)

// Options configures a fix run.
type Options struct {
	Mode     Mode
	TargetID string
	// DryRun stages everything but writes no files.
	DryRun bool
}

// Applied records one successfully applied fix.
type Applied struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	Path          string
	EditCount     int
}

// Skipped records a fix that was not applied and why.
type Skipped struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises the edits written to one file.
type FileChange struct {
	Path      string
	EditCount int
}

// Result aggregates a whole run.
type Result struct {
	Applied     []Applied
	Skipped     []Skipped
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply selects fixes from diagnostics per opts and applies them to the
// files of fs. Returns ErrNoFixes when nothing was applied.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts Options) (*Result, error) {
	if fs == nil {
		return &Result{}, fmt.Errorf("fix: FileSet is nil")
	}
	result := &Result{}

	candidates := gather(diagnostics, &result.Skipped)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	order(candidates)

	selected := choose(candidates, opts, &result.Skipped)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	if err := apply(fs, selected, opts, result); err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gather собирает кандидатов; фиксы без правок отсеиваются сразу.
// Пустой ID дополняется детерминированным синтетическим.
func gather(diagnostics []diag.Diagnostic, skips *[]Skipped) []candidate {
	var cands []candidate
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				*skips = append(*skips, Skipped{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands
}

// order sorts candidates by file, span, insertion order, code and
// preference so that repeated runs pick the same fix.
func order(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.diag.Primary.File != b.diag.Primary.File {
			return a.diag.Primary.File < b.diag.Primary.File
		}
		if a.diag.Primary.Start != b.diag.Primary.Start {
			return a.diag.Primary.Start < b.diag.Primary.Start
		}
		if a.diag.Primary.End != b.diag.Primary.End {
			return a.diag.Primary.End < b.diag.Primary.End
		}
		if a.order != b.order {
			return a.order < b.order
		}
		if a.diag.Code != b.diag.Code {
			return a.diag.Code < b.diag.Code
		}
		if a.fix.IsPreferred != b.fix.IsPreferred {
			return a.fix.IsPreferred
		}
		return a.fix.ID < b.fix.ID
	})
}

func choose(cands []candidate, opts Options, skips *[]Skipped) []candidate {
	switch opts.Mode {
	case ModeID:
		for _, c := range cands {
			if c.fix.ID == opts.TargetID {
				return []candidate{c}
			}
		}
		*skips = append(*skips, Skipped{ID: opts.TargetID, Reason: "fix id not found"})
		return nil

	case ModeAll:
		var selected []candidate
		for _, c := range cands {
			if c.fix.Applicability == diag.FixAlwaysSafe {
				selected = append(selected, c)
				continue
			}
			*skips = append(*skips, Skipped{
				ID:     c.fix.ID,
				Title:  c.fix.Title,
				Reason: fmt.Sprintf("applicability is %s", c.fix.Applicability),
			})
		}
		return selected

	case ModeOnce:
		// Первый безопасный; если таких нет — первый любой.
		for _, c := range cands {
			if c.fix.Applicability == diag.FixAlwaysSafe {
				return []candidate{c}
			}
		}
		return cands[:1]
	}
	return nil
}

// fileState tracks the working buffer and already-applied edits of one
// file across candidates.
type fileState struct {
	buf     []byte
	applied []diag.TextEdit
	edits   int
}

func apply(fs *source.FileSet, selected []candidate, opts Options, result *Result) error {
	states := make(map[source.FileID]*fileState)

	for _, cand := range selected {
		if reason := stage(fs, states, cand.fix.Edits); reason != "" {
			result.Skipped = append(result.Skipped, Skipped{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: reason,
			})
			continue
		}
		result.Applied = append(result.Applied, Applied{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			Path:          fs.Get(cand.diag.Primary.File).FormatPath("auto", fs.BaseDir()),
			EditCount:     len(cand.fix.Edits),
		})
	}

	if len(result.Applied) == 0 {
		return nil
	}
	return flush(fs, states, opts, result)
}

// stage applies one fix's edits to the in-memory buffers. It returns a
// skip reason on the first problem; in that case no buffer is touched.
func stage(fs *source.FileSet, states map[source.FileID]*fileState, edits []diag.TextEdit) string {
	byFile := make(map[source.FileID][]diag.TextEdit)
	for _, e := range edits {
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}

	type stagedFile struct {
		buf     []byte
		applied []diag.TextEdit
		count   int
	}
	staged := make(map[source.FileID]*stagedFile)

	for fileID, fileEdits := range byFile {
		file := fs.Get(fileID)
		if file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}

		st := states[fileID]
		if st == nil {
			st = &fileState{buf: append([]byte(nil), file.Content...)}
			states[fileID] = st
		}
		for _, e := range fileEdits {
			if overlapsAny(st.applied, e) {
				return "conflicts with previously applied edits in " + file.FormatPath("auto", fs.BaseDir())
			}
		}

		// Правим с конца, чтобы не пересчитывать хвостовые позиции.
		sort.SliceStable(fileEdits, func(i, j int) bool {
			return fileEdits[i].Span.Start > fileEdits[j].Span.Start
		})

		working := append([]byte(nil), st.buf...)
		applied := append([]diag.TextEdit(nil), st.applied...)
		for _, e := range fileEdits {
			start := int(e.Span.Start) + delta(applied, int(e.Span.Start))
			end := int(e.Span.End) + delta(applied, int(e.Span.End))
			if start < 0 || end < start || end > len(working) {
				return "edit span out of range"
			}
			if e.OldText != "" && string(working[start:end]) != e.OldText {
				return "existing text does not match expected content"
			}
			tail := append([]byte(nil), working[end:]...)
			working = append(append(working[:start], []byte(e.NewText)...), tail...)
			applied = insertSorted(applied, e)
		}
		staged[fileID] = &stagedFile{buf: working, applied: applied, count: len(fileEdits)}
	}

	for fileID, sf := range staged {
		st := states[fileID]
		st.buf = sf.buf
		st.applied = sf.applied
		st.edits += sf.count
	}
	return ""
}

func flush(fs *source.FileSet, states map[source.FileID]*fileState, opts Options, result *Result) error {
	for fileID, st := range states {
		if st.edits == 0 {
			continue
		}
		file := fs.Get(fileID)
		if !opts.DryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, st.buf, mode); err != nil {
				return fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      file.FormatPath("relative", fs.BaseDir()),
			EditCount: st.edits,
		})
	}
	sort.SliceStable(result.FileChanges, func(i, j int) bool {
		return result.FileChanges[i].Path < result.FileChanges[j].Path
	})
	return nil
}

// overlapsAny: полуоткрытые интервалы; два пустых спана не конфликтуют.
func overlapsAny(existing []diag.TextEdit, e diag.TextEdit) bool {
	for _, prev := range existing {
		if spansOverlap(prev.Span, e.Span) {
			return true
		}
	}
	return false
}

func spansOverlap(a, b source.Span) bool {
	if a.Empty() && b.Empty() {
		return false
	}
	if a.Empty() {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Empty() {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// delta returns the byte offset shift at pos caused by edits already
// applied before it.
func delta(applied []diag.TextEdit, pos int) int {
	shift := 0
	for _, e := range applied {
		if int(e.Span.Start) > pos {
			break
		}
		if int(e.Span.End) <= pos {
			shift += len(e.NewText) - int(e.Span.Len())
		}
	}
	return shift
}

func insertSorted(edits []diag.TextEdit, e diag.TextEdit) []diag.TextEdit {
	idx := sort.Search(len(edits), func(i int) bool {
		return edits[i].Span.Start > e.Span.Start
	})
	edits = append(edits, diag.TextEdit{})
	copy(edits[idx+1:], edits[idx:])
	edits[idx] = e
	return edits
}
