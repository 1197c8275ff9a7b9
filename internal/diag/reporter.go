package diag

import "traitgen/internal/source"

// Reporter receives diagnostics from the lexer, the parser and the
// reserved-identifier check.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter пишет в *Bag; nil Bag молча отбрасывает всё.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// ReportAll forwards already built diagnostics to r in order.
func ReportAll(r Reporter, diags []Diagnostic) {
	if r == nil {
		return
	}
	for _, d := range diags {
		r.Report(d)
	}
}

type reportKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// UniqueReporter forwards each diagnostic once per code, severity, primary
// span and message. The lexer reports a broken literal again every time it
// resynchronises inside it.
type UniqueReporter struct {
	next Reporter
	seen map[reportKey]struct{}
}

func NewUniqueReporter(next Reporter) *UniqueReporter {
	return &UniqueReporter{next: next, seen: make(map[reportKey]struct{})}
}

func (r *UniqueReporter) Report(d Diagnostic) {
	if r == nil || r.next == nil {
		return
	}
	key := reportKey{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}
