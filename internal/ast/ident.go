package ast

import (
	"strings"

	"traitgen/internal/source"
)

// Ident is an identifier. Raw identifiers keep their "r#" prefix in Name,
// so `r#foo` and `foo` never compare equal.
type Ident struct {
	Name string
	Span source.Span
}

func NewIdent(name string, span source.Span) *Ident {
	return &Ident{Name: name, Span: span}
}

func (i *Ident) NodeSpan() source.Span { return i.Span }

// IsRaw reports whether the identifier was written as r#name.
func (i *Ident) IsRaw() bool { return strings.HasPrefix(i.Name, "r#") }

func (i *Ident) String() string { return i.Name }

// Lifetime is 'name; Name is stored without the apostrophe.
type Lifetime struct {
	Name string
	Span source.Span
}

func (l *Lifetime) NodeSpan() source.Span { return l.Span }

func (l *Lifetime) String() string { return "'" + l.Name }
