package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rill/internal/diag"
	"rill/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev>[<CODE>]: <Message>
// затем строку контекста с подчёркиванием ^~~~ по Span,
// затем Notes и Fixes, если включены опциями.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) paint(c *color.Color, s string) string {
	if p.opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func (p *prettyPrinter) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.paint(color.New(color.FgRed, color.Bold), "error")
	case diag.SevWarning:
		return p.paint(color.New(color.FgYellow, color.Bold), "warning")
	default:
		return p.paint(color.New(color.FgCyan, color.Bold), "info")
	}
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	start, end := p.fs.Resolve(d.Primary)
	file := p.fs.Get(d.Primary.File)

	fmt.Fprintf(p.w, "%s:%d:%d: %s[%s]: %s\n",
		p.path(file), start.Line, start.Col,
		p.severity(d.Severity), d.Code.ID(), d.Message)

	p.context(file, d.Primary, start, end)

	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := p.fs.Resolve(n.Span)
			fmt.Fprintf(p.w, "  = note: %s (%s:%d:%d)\n", n.Msg, p.path(p.fs.Get(n.Span.File)), nStart.Line, nStart.Col)
		}
	}
	if p.opts.ShowFixes {
		for _, f := range d.Fixes {
			p.fix(f)
		}
	}
}

// context prints the offending source line with a caret underline
// aligned by display width, so tabs and wide runes line up.
func (p *prettyPrinter) context(file *source.File, sp source.Span, start, end source.LineCol) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(p.w, "    %s\n", expandTabs(line))

	// Синтетические спаны могут указывать за конец строки; прижимаем
	// границы, чтобы срезы не паниковали.
	col := min(int(start.Col)-1, len(line))
	if col < 0 {
		col = 0
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))

	underlined := 1
	if end.Line == start.Line && end.Col > start.Col {
		underlined = runewidth.StringWidth(expandTabs(line[col:max(col, min(int(end.Col-1), len(line)))]))
	} else if end.Line > start.Line {
		// многострочный спан подчёркиваем до конца первой строки
		underlined = runewidth.StringWidth(expandTabs(line[col:]))
	}
	if underlined < 1 {
		underlined = 1
	}

	marker := "^" + strings.Repeat("~", underlined-1)
	fmt.Fprintf(p.w, "    %s%s\n", strings.Repeat(" ", pad), p.paint(color.New(color.FgGreen, color.Bold), marker))
}

func (p *prettyPrinter) fix(f diag.Fix) {
	label := f.Title
	if label == "" {
		label = "fix"
	}
	suffix := ""
	if f.Applicability != diag.FixAlwaysSafe {
		suffix = " (" + f.Applicability.String() + ")"
	}
	if len(f.Edits) == 1 && !strings.Contains(f.Edits[0].NewText, "\n") {
		fmt.Fprintf(p.w, "  = help: %s: `%s`%s\n", label, f.Edits[0].NewText, suffix)
		return
	}
	fmt.Fprintf(p.w, "  = help: %s (%d edits)%s\n", label, len(f.Edits), suffix)
}

func (p *prettyPrinter) path(file *source.File) string {
	switch p.opts.PathMode {
	case PathModeAbsolute:
		return file.FormatPath("absolute", "")
	case PathModeRelative:
		return file.FormatPath("relative", p.fs.BaseDir())
	case PathModeBasename:
		return file.FormatPath("basename", "")
	default:
		return file.FormatPath("auto", p.fs.BaseDir())
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
