package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteOutput writes res.Output to path with header on top, replacing the
// file atomically. An unchanged file is left alone so that build tools
// watching mtimes stay quiet; changed reports whether anything was written.
func WriteOutput(res *ExpandResult, path, header string) (changed bool, err error) {
	if res == nil || res.Output == nil {
		return false, fmt.Errorf("%s: nothing to write", path)
	}
	data := Render(res, header)
	if old, readErr := os.ReadFile(path); readErr == nil && bytes.Equal(old, data) {
		return false, nil
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".traitgen-*")
	if err != nil {
		return false, err
	}
	tmp := f.Name()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return false, err
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	return true, nil
}

// Render returns the bytes WriteOutput would write.
func Render(res *ExpandResult, header string) []byte {
	if header == "" {
		return res.Output
	}
	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString("\n\n")
	buf.Write(res.Output)
	return buf.Bytes()
}
