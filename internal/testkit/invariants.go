package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"traitgen/internal/ast"
	"traitgen/internal/parser"
	"traitgen/internal/source"
)

// VirtualFile registers src as an in-memory file and returns it.
func VirtualFile(name, src string) (*source.FileSet, *source.File) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	return fs, fs.Get(id)
}

// CheckSpanInvariants runs a minimal set of span invariants on a parsed collection:
// 1) every item span is non-empty and within file content bounds
// 2) items appear in source order and do not overlap
// 3) every identifier reachable from an item lies inside the item span
func CheckSpanInvariants(c *parser.Collection, sf *source.File) error {
	if c == nil || sf == nil {
		return fmt.Errorf("nil collection or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, item := range c.Items {
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("item %d: empty span: %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item %d: span points to different file id: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("item %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("item %d: span %v overlaps previous item ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		for _, id := range ast.Idents(item) {
			if !sp.Contains(id.Span) {
				return fmt.Errorf("item %d: ident %q at %v escapes item span %v", i, id.Name, id.Span, sp)
			}
		}
	}
	return nil
}
