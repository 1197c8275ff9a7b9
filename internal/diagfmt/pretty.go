package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"traitgen/internal/diag"
	"traitgen/internal/source"
)

type palette struct {
	sev     map[diag.Severity]*color.Color
	message *color.Color
	gutter  *color.Color
	caret   *color.Color
	note    *color.Color
	help    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		message: color.New(color.Bold),
		gutter:  color.New(color.FgBlue, color.Bold),
		caret:   color.New(color.FgRed, color.Bold),
		note:    color.New(color.FgCyan),
		help:    color.New(color.FgGreen),
	}
	all := []*color.Color{p.message, p.gutter, p.caret, p.note, p.help}
	for _, c := range p.sev {
		all = append(all, c)
	}
	// цвет решает опция, а не глобальный color.NoColor
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	if c, ok := p.sev[s]; ok {
		return c
	}
	return p.message
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	fmt.Fprintf(w, "%s%s %s: %s\n",
		location(fs, d.Code, d.Primary, opts.PathMode),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		pal.message.Sprint(d.Message))

	if f := fileOf(fs, d.Primary); f != nil && d.Code.Located() {
		writeSnippet(w, fs, f, d.Primary, opts.Context, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s%s\n", pal.note.Sprint("note:"), location(fs, d.Code, n.Span, opts.PathMode), n.Msg)
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.help.Sprint("help:"), fix.Title)
			if !opts.ShowPreview {
				continue
			}
			for _, edit := range fix.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range preview.before {
					fmt.Fprintf(w, "    - %s\n", line)
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "    + %s\n", line)
				}
			}
		}
	}
}

// location renders "path:line:col: " or "" for diagnostics without a place.
func location(fs *source.FileSet, code diag.Code, sp source.Span, mode PathMode) string {
	f := fileOf(fs, sp)
	if f == nil || !code.Located() {
		return ""
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d: ", formatPath(fs, f, mode), start.Line, start.Col)
}

func writeSnippet(w io.Writer, fs *source.FileSet, f *source.File, sp source.Span, context int8, pal palette) {
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if context > 0 {
		first = 1
		if back := uint32(context); back < start.Line {
			first = start.Line - back
		}
	}
	width := len(fmt.Sprint(start.Line))
	gutter := func(label string) string {
		return pal.gutter.Sprintf("%*s |", width, label)
	}

	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", gutter(fmt.Sprint(ln)), f.GetLine(ln))
	}

	line := f.GetLine(start.Line)
	lineStart := lineStartOffset(f, start.Line)
	col := min(int(sp.Start-lineStart), len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(sp.End-lineStart), len(line))
	}

	// табы сохраняем, чтобы каретка встала под нужный символ
	var pad strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	underline := "^"
	if n := runewidth.StringWidth(line[col:max(col, stop)]); n > 1 {
		underline += strings.Repeat("~", n-1)
	}
	fmt.Fprintf(w, "%s %s%s\n", gutter(""), pad.String(), pal.caret.Sprint(underline))
}

// Short prints one line per diagnostic.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s%s %s: %s\n",
			location(fs, d.Code, d.Primary, mode),
			d.Severity.Label(),
			d.Code.ID(),
			d.Message)
	}
}
