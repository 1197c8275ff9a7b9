package ast

import (
	"traitgen/internal/source"
	"traitgen/internal/token"
)

// TokenTree is an opaque balanced token sequence: attribute arguments,
// const generic arguments, array lengths. Delimiters are included.
type TokenTree struct {
	Tokens []token.Token
	Span   source.Span
}

func (t *TokenTree) NodeSpan() source.Span { return t.Span }

// Idents returns the identifier tokens of the tree as Ident nodes, in order.
func (t *TokenTree) Idents() []*Ident {
	if t == nil {
		return nil
	}
	var out []*Ident
	for _, tok := range t.Tokens {
		if tok.Kind == token.Ident {
			out = append(out, &Ident{Name: tok.Text, Span: tok.Span})
		}
	}
	return out
}

// Empty reports whether the tree holds no tokens.
func (t *TokenTree) Empty() bool { return t == nil || len(t.Tokens) == 0 }
