package diag

import (
	"traitgen/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// Error реализует error, чтобы одиночную диагностику можно было вернуть как ошибку.
func (d Diagnostic) Error() string {
	return d.Code.ID() + " " + d.Primary.String() + ": " + d.Message
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of d with one more note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns a copy of d with one more fix.
func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes[:len(d.Fixes):len(d.Fixes)], Fix{Title: title, Edits: edits})
	return d
}
