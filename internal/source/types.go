package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual marks files added from memory (tests, stdin, generated input).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Text returns the bytes covered by span as a string.
// Out of range spans are clamped to the file content.
func (f *File) Text(span Span) string {
	n := uint32(len(f.Content))
	start, end := min(span.Start, n), min(span.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}
