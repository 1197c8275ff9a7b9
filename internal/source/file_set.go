package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every input file of one run and resolves spans back to
// line/column positions.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> latest id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates a FileSet whose relative paths are reported
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// SetBaseDir changes the directory relative paths are reported against;
// "" means the working directory.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.baseDir = dir
}

// BaseDir returns the configured base directory or the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores normalized content and returns a fresh FileID.
// Adding the same path twice yields two ids; GetLatest returns the newer one.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(n)
	normalized := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[normalized] = id
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM, normalizes CRLF and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.AddBytes(path, content), nil
}

// AddBytes normalizes raw bytes the same way Load does.
func (fs *FileSet) AddBytes(path string, content []byte) FileID {
	var flags FileFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags)
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// Len returns the number of files stored.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// GetLatest returns the newest file ID registered for path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// GetLine returns the 1-based line lineNum without its trailing newline.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lines:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	end := size
	if lineNum-1 < lines {
		end = f.LineIdx[lineNum-1]
	}
	if start >= size || start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the file path in one of the modes
// "absolute", "relative", "basename" or "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		// короткие и относительные пути оставляем как есть
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)
	}
	return f.Path
}
