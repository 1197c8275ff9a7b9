package driver

import (
	"fmt"

	"traitgen/internal/diag"
	"traitgen/internal/parser"
	"traitgen/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Kind    InputKind
	// Collections holds one collection per invocation (one for .ta files);
	// invocations that failed to parse have no entry.
	Collections []*parser.Collection
	Invocations []Invocation
	Bag         *diag.Bag
}

// Items counts the aliases over all collections.
func (r *ParseResult) Items() int {
	n := 0
	for _, c := range r.Collections {
		n += len(c.Items)
	}
	return n
}

// Parse parses and checks a file without generating anything.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	kind, ok := KindOf(path)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported input, want .ta or .rs", path)
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Kind:    kind,
		Bag:     newBag(maxDiagnostics),
	}

	ranges := []source.Span{{File: fileID, Start: 0, End: uint32(len(file.Content))}} //nolint:gosec // FileSet guarantees uint32 sizes
	if kind == InputRust {
		res.Invocations = FindInvocations(file)
		ranges = ranges[:0]
		for _, inv := range res.Invocations {
			if inv.check(res.Bag) {
				ranges = append(ranges, inv.Body)
			}
		}
	}
	for _, r := range ranges {
		coll, err := parser.ParseRange(file, r.Start, r.End, parser.Options{})
		if err != nil {
			addError(res.Bag, err)
			continue
		}
		res.Collections = append(res.Collections, coll)
	}
	return res, nil
}
