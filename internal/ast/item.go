package ast

import "traitgen/internal/source"

// TraitAlias is one parsed `trait Name<G> = Bounds where Preds;` declaration.
// The trailing where clause lives in Generics.Where.
type TraitAlias struct {
	Attrs    []*Attribute
	Vis      Visibility
	Ident    *Ident
	Generics *Generics
	Bounds   []TypeParamBound
	Span     source.Span
}

func (a *TraitAlias) NodeSpan() source.Span { return a.Span }

// TraitDecl is a generated `trait Name<G>: Supertraits where ... {}` with an empty body.
type TraitDecl struct {
	Attrs       []*Attribute
	Vis         Visibility
	Ident       *Ident
	Generics    *Generics
	Supertraits []TypeParamBound
	Span        source.Span
}

func (d *TraitDecl) NodeSpan() source.Span { return d.Span }

// ImplDecl is a generated `impl<G> Trait<Args> for SelfTy where ... {}`.
type ImplDecl struct {
	Attrs     []*Attribute
	Generics  ImplGenerics
	Trait     *Ident
	TraitArgs TypeGenerics
	SelfTy    Type
	Where     *WhereClause
	Span      source.Span
}

func (d *ImplDecl) NodeSpan() source.Span { return d.Span }
