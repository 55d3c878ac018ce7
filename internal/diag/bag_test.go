package diag

import (
	"testing"

	"rill/internal/source"
)

func TestBag_Limit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewWarning(LintCollapsibleIf, source.Span{File: 1}, "a")) {
		t.Fatal("first add must succeed")
	}
	if !b.Add(NewWarning(LintCollapsibleIf, source.Span{File: 1}, "b")) {
		t.Fatal("second add must succeed")
	}
	if b.Add(NewWarning(LintCollapsibleIf, source.Span{File: 1}, "c")) {
		t.Fatal("add past the cap must be rejected")
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestBag_Sort(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(LintCollapsibleIf, source.Span{File: 2, Start: 1, End: 2}, "late file"))
	b.Add(NewWarning(LintCollapsibleIf, source.Span{File: 1, Start: 9, End: 10}, "late offset"))
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 0, End: 1}, "first"))
	b.Sort()

	items := b.Items()
	if items[0].Message != "first" || items[1].Message != "late offset" || items[2].Message != "late file" {
		t.Errorf("unexpected order: %q %q %q", items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestBag_Dedup(t *testing.T) {
	b := NewBag(10)
	sp := source.Span{File: 1, Start: 3, End: 7}
	b.Add(NewWarning(LintCollapsibleIf, sp, "x"))
	b.Add(NewWarning(LintCollapsibleIf, sp, "x"))
	b.Add(NewWarning(LintDoubleNeg, sp, "x"))
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Len() after dedup = %d, want 2", b.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := NewWarning(LintCollapsibleIf, source.Span{File: 1, Start: 0, End: 4}, "dup")
	r.Report(d)
	r.Report(d)
	if bag.Len() != 1 {
		t.Errorf("bag.Len() = %d, want 1", bag.Len())
	}
}

func TestCode_ID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{LintCollapsibleIf, "LNT3001"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
