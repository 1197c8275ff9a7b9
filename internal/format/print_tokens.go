package format

import (
	"fmt"
	"io"

	"traitgen/internal/ast"
	"traitgen/internal/source"
	"traitgen/internal/token"
)

// printTokens печатает дерево токенов, сворачивая любую исходную trivia в
// один пробел. keepLeading сохраняет пробел перед первым токеном
// (`#[doc = "..."]` против `#[cfg(x)]`).
func (p *printer) printTokens(tt *ast.TokenTree, keepLeading bool) {
	if tt == nil {
		return
	}
	for i, tok := range tt.Tokens {
		if tok.SpaceBefore() && (i > 0 || keepLeading) {
			p.w.Space()
		}
		p.w.WriteString(tok.Text)
	}
}

// WriteTokenListing writes one line per token: position, kind and text.
// Doc comments from the leading trivia are listed before their token.
func WriteTokenListing(out io.Writer, fs *source.FileSet, toks []token.Token) error {
	for _, tok := range toks {
		for _, tr := range tok.Docs() {
			if _, err := fmt.Fprintf(out, "%s\t%s\t%q\n", position(fs, tr.Span), docKind(tr), tr.DocText()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\t%q\n", position(fs, tok.Span), tok.Kind, tok.Text); err != nil {
			return err
		}
	}
	return nil
}

func docKind(tr token.Trivia) string {
	if tr.Kind.IsInner() {
		return "InnerDoc"
	}
	return "Doc"
}

func position(fs *source.FileSet, sp source.Span) string {
	if fs == nil {
		return sp.String()
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d", start.Line, start.Col)
}
