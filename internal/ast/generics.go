package ast

import "traitgen/internal/source"

// Generics is a `<...>` parameter list together with the item's where clause.
type Generics struct {
	Params []GenericParam
	Where  *WhereClause
	Span   source.Span
}

func (g *Generics) NodeSpan() source.Span { return g.Span }

// LifetimeParam is `'a: 'b + 'c`.
type LifetimeParam struct {
	Attrs    []*Attribute
	Lifetime *Lifetime
	Bounds   []*Lifetime
	Span     source.Span
}

// TypeParam is `T: Bound = Default`.
type TypeParam struct {
	Attrs   []*Attribute
	Ident   *Ident
	Bounds  []TypeParamBound
	Default Type
	Span    source.Span
}

// ConstParam is `const N: usize = 3`.
type ConstParam struct {
	Attrs   []*Attribute
	Ident   *Ident
	Ty      Type
	Default *TokenTree
	Span    source.Span
}

func (p *LifetimeParam) NodeSpan() source.Span { return p.Span }
func (p *TypeParam) NodeSpan() source.Span     { return p.Span }
func (p *ConstParam) NodeSpan() source.Span    { return p.Span }

func (*LifetimeParam) genericParamNode() {}
func (*TypeParam) genericParamNode()     {}
func (*ConstParam) genericParamNode()    {}

type WhereClause struct {
	Predicates []WherePredicate
	Span       source.Span
}

func (w *WhereClause) NodeSpan() source.Span { return w.Span }

// PredicateType is `for<'a> Ty: Bound + Bound`.
type PredicateType struct {
	Lifetimes *BoundLifetimes
	BoundedTy Type
	Bounds    []TypeParamBound
	Span      source.Span
}

// PredicateLifetime is `'a: 'b + 'c`.
type PredicateLifetime struct {
	Lifetime *Lifetime
	Bounds   []*Lifetime
	Span     source.Span
}

func (p *PredicateType) NodeSpan() source.Span     { return p.Span }
func (p *PredicateLifetime) NodeSpan() source.Span { return p.Span }

func (*PredicateType) wherePredicateNode()     {}
func (*PredicateLifetime) wherePredicateNode() {}

// MakeWhereClause returns the where clause, creating an empty one if absent.
func (g *Generics) MakeWhereClause() *WhereClause {
	if g.Where == nil {
		g.Where = &WhereClause{}
	}
	return g.Where
}

// ImplGenerics renders as the `impl<...>` header: parameters with their
// bounds, without defaults.
type ImplGenerics struct {
	Params []GenericParam
}

// TypeGenerics renders as the argument list `<'a, T, N>` naming every parameter.
type TypeGenerics struct {
	Params []GenericParam
}

// SplitForImpl splits generics for use in an impl header: the parameter list,
// the argument list naming those parameters, and the where clause.
func (g *Generics) SplitForImpl() (ImplGenerics, TypeGenerics, *WhereClause) {
	if g == nil {
		return ImplGenerics{}, TypeGenerics{}, nil
	}
	return ImplGenerics{Params: g.Params}, TypeGenerics{Params: g.Params}, g.Where
}

// Empty reports whether there is nothing to print between `<` and `>`.
func (ig ImplGenerics) Empty() bool { return len(ig.Params) == 0 }

// Empty reports whether there is nothing to print between `<` and `>`.
func (tg TypeGenerics) Empty() bool { return len(tg.Params) == 0 }

// Args converts the type generics into path arguments that name each
// parameter, usable as `Trait<Args>`. Returns nil for an empty list.
func (tg TypeGenerics) Args() *AngleArgs {
	if tg.Empty() {
		return nil
	}
	args := make([]GenericArg, 0, len(tg.Params))
	for _, p := range tg.Params {
		switch p := p.(type) {
		case *LifetimeParam:
			lt := *p.Lifetime
			args = append(args, &LifetimeArg{Lifetime: &lt})
		case *TypeParam:
			args = append(args, &TypeArg{Type: TypeFromIdent(NewIdent(p.Ident.Name, p.Ident.Span))})
		case *ConstParam:
			// `N` в позиции аргумента неотличим от типа; печатается так же.
			args = append(args, &TypeArg{Type: TypeFromIdent(NewIdent(p.Ident.Name, p.Ident.Span))})
		}
	}
	return &AngleArgs{Args: args}
}
