package diagfmt

import (
	"traitgen/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode converts a flag value to PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк контекста перед строкой ошибки
	PathMode    PathMode
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	PathMode       PathMode
}

func formatPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	default:
		return f.Path
	}
}

// fileOf returns the file a located span points into, or nil.
func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}
