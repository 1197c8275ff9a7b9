package format

import (
	"traitgen/internal/source"
)

// Writer accumulates formatted output and provides helpers for copying source
// fragments and emitting canonical whitespace.
type Writer struct {
	sf          *source.File
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new formatting writer. sf may be nil when nothing is
// copied from the source.
func NewWriter(sf *source.File, opt Options) *Writer {
	opt = opt.withDefaults()
	size := 256
	if sf != nil {
		size = len(sf.Content) + size
	}
	return &Writer{
		sf:          sf,
		opt:         opt,
		buf:         make([]byte, 0, size),
		indentLevel: opt.Indent,
		atLineStart: true,
	}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
	} else {
		spaceCount := w.indentLevel * w.opt.IndentWidth
		for range spaceCount {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.updateLineState(s[len(s)-1])
}

// WriteByte writes a single byte to the output.
func (w *Writer) WriteByte(b byte) error {
	w.writeIndent()
	w.buf = append(w.buf, b)
	w.updateLineState(b)
	return nil
}

func (w *Writer) updateLineState(last byte) {
	w.atLineStart = last == '\n'
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 || w.atLineStart {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// MaybeSpace writes a space if the condition is true.
func (w *Writer) MaybeSpace(cond bool) {
	if cond {
		w.Space()
	}
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// BlankLine ends the current line and emits one empty line.
func (w *Writer) BlankLine() {
	w.Newline()
	if len(w.buf) > 0 && (len(w.buf) < 2 || w.buf[len(w.buf)-2] != '\n') {
		w.buf = append(w.buf, '\n')
	}
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// CopySpan copies a span from the source file to the output.
func (w *Writer) CopySpan(sp source.Span) {
	if w.sf == nil || sp.File != w.sf.ID || sp.End <= sp.Start {
		return
	}
	w.CopyRange(int(sp.Start), int(sp.End))
}

// CopyRange copies a range of bytes from the source file to the output verbatim.
func (w *Writer) CopyRange(start, end int) {
	if w.sf == nil {
		return
	}
	start = max(start, 0)
	end = min(end, len(w.sf.Content))
	if start >= end {
		return
	}
	chunk := w.sf.Content[start:end]
	w.buf = append(w.buf, chunk...)
	w.updateLineState(chunk[len(chunk)-1])
}
