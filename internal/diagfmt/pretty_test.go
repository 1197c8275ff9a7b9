package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traitgen/internal/diag"
	"traitgen/internal/source"
)

const brokenAlias = "trait A = Send + \"oops;\n"

func unterminatedBag(fs *source.FileSet, path string) *diag.Bag {
	fileID := fs.AddVirtual(path, []byte(brokenAlias))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 17, End: 23},
		"unterminated string",
	))
	return bag
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	bag := unterminatedBag(fs, "/home/user/project/src/aliases.ta")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/aliases.ta:1:18"},
		{"relative", PathModeRelative, "src/aliases.ta:1:18"},
		{"basename", PathModeBasename, "aliases.ta:1:18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, Context: 1})
			out := buf.String()
			assert.Contains(t, out, tt.contains)
			assert.Contains(t, out, "ERROR LEX1002: unterminated string")
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"aliases.ta", "aliases.ta:"},
		{"/very/long/absolute/path/to/some/nested/directory/aliases.ta", "aliases.ta:"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fs := source.NewFileSet()
			bag := unterminatedBag(fs, tt.path)
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			assert.True(t, strings.HasPrefix(buf.String(), tt.expected), buf.String())
		})
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{
		"":         PathModeAuto,
		"auto":     PathModeAuto,
		"absolute": PathModeAbsolute,
		"relative": PathModeRelative,
		"basename": PathModeBasename,
	} {
		got, ok := ParsePathMode(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParsePathMode("tilde")
	assert.False(t, ok)
}

func TestPrettySnippetUnderline(t *testing.T) {
	fs := source.NewFileSet()
	bag := unterminatedBag(fs, "aliases.ta")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "aliases.ta:1:18: ERROR LEX1002: unterminated string", lines[0])
	assert.Equal(t, "1 | trait A = Send + \"oops;", lines[1])
	assert.Equal(t, " | "+strings.Repeat(" ", 17)+"^~~~~~", lines[2])
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	content := "trait A = Send;\ntrait B = Sync;\ntrait C = __T;\n"
	fileID := fs.AddVirtual("ctx.ta", []byte(content))
	bag := diag.NewBag(4)
	start := uint32(strings.Index(content, "__T"))
	bag.Add(diag.NewError(diag.SemaReservedIdent, source.Span{File: fileID, Start: start, End: start + 3}, "reserved"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	out := buf.String()
	assert.Contains(t, out, "2 | trait B = Sync;")
	assert.Contains(t, out, "3 | trait C = __T;")
	assert.NotContains(t, out, "1 | trait A")

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 10})
	assert.Contains(t, buf.String(), "1 | trait A = Send;")
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("trait A = Send\n")
	fileID := fs.AddVirtual("notes.ta", content)

	primary := source.Span{File: fileID, Start: 10, End: 14}
	d := diag.New(diag.SevError, diag.SynExpectSemicolon, primary, "expected `;`").
		WithNote(source.Span{File: fileID, Start: 0, End: 5}, "alias starts here").
		WithFix("insert `;`", diag.FixEdit{Span: primary.ZeroideToEnd(), NewText: ";"})
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	assert.NotContains(t, buf.String(), "note:")
	assert.NotContains(t, buf.String(), "help:")

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	out := buf.String()
	assert.Contains(t, out, "note: notes.ta:1:1: alias starts here")
	assert.Contains(t, out, "help: insert `;`")
	assert.NotContains(t, out, "+ trait A = Send;")

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})
	out = buf.String()
	assert.Contains(t, out, "- trait A = Send\n")
	assert.Contains(t, out, "+ trait A = Send;\n")
}

func TestPrettyUnlocatedDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("present.ta", []byte("trait A = Send;\n"))
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "missing.ta: no such file"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	assert.Equal(t, "ERROR IO4001: missing.ta: no such file\n", buf.String())
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	bag := unterminatedBag(fs, "aliases.ta")
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{}, "cache is read-only"))

	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeBasename)
	assert.Equal(t,
		"aliases.ta:1:18: error LEX1002: unterminated string\n"+
			"warning IO4003: cache is read-only\n",
		buf.String())
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	bag := unterminatedBag(fs, "aliases.ta")

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&colored, bag, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}
