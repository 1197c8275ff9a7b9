package diag

import (
	"testing"

	"traitgen/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.ta", []byte("a\nb\n"), 0)
	otherFile := fs.Add("/workspace/src/lib.rs", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: otherFile, Start: 0, End: 0}, Msg: "declared here"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     SemaReservedIdent,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "note SYN2001 src/lib.rs:1:1 declared here\n" +
		"error SYN2001 testdata/golden/sample.ta:1:1 first line second\n" +
		"note SYN2001 testdata/golden/sample.ta:2:1 note line\n" +
		"warning SEM3001 testdata/golden/sample.ta:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatGoldenDiagnosticsEmpty(t *testing.T) {
	if got := FormatGoldenDiagnostics(nil, source.NewFileSet(), false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
