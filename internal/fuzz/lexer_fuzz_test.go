package fuzztests

import (
	"testing"

	"traitgen/internal/diag"
	"traitgen/internal/lexer"
	"traitgen/internal/source"
	"traitgen/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addAliasSeeds(f)
	addRustSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.ta", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for range len(file.Content) + 2 {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %v has span %v after offset %d", tok.Kind, tok.Span, prevEnd)
			}
			if int(tok.Span.End) > len(file.Content) {
				t.Fatalf("token %v span %v past end of %d bytes", tok.Kind, tok.Span, len(file.Content))
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				return
			}
		}
		t.Fatalf("lexer did not reach EOF within %d tokens", len(file.Content)+2)
	})
}
