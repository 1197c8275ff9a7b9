package ast

import "traitgen/internal/source"

// Path is `a::b<T>::c`, optionally with a leading `::`.
type Path struct {
	LeadingColon bool
	Segments     []*PathSegment
	Span         source.Span
}

func (p *Path) NodeSpan() source.Span { return p.Span }

// PathSegment is one `ident` or `ident<args>` / `ident(args) -> R` component.
type PathSegment struct {
	Ident *Ident
	Args  PathArgs // nil when the segment has no arguments
	Span  source.Span
}

func (s *PathSegment) NodeSpan() source.Span { return s.Span }

// PathFromIdent builds a single segment path without arguments.
func PathFromIdent(id *Ident) *Path {
	return &Path{
		Segments: []*PathSegment{{Ident: id, Span: id.Span}},
		Span:     id.Span,
	}
}

// IsIdent reports whether the path is exactly one bare segment named name.
func (p *Path) IsIdent(name string) bool {
	return p != nil && !p.LeadingColon && len(p.Segments) == 1 &&
		p.Segments[0].Args == nil && p.Segments[0].Ident.Name == name
}

// Last returns the final segment, or nil for an empty path.
func (p *Path) Last() *PathSegment {
	if p == nil || len(p.Segments) == 0 {
		return nil
	}
	return p.Segments[len(p.Segments)-1]
}

// AngleArgs is `<A, 'b, Item = C>`; Turbofish marks the `::<...>` spelling.
type AngleArgs struct {
	Turbofish bool
	Args      []GenericArg
	Span      source.Span
}

func (a *AngleArgs) NodeSpan() source.Span { return a.Span }
func (*AngleArgs) pathArgsNode()           {}

// ParenArgs is the `Fn(A, B) -> C` sugar; Output is nil without `->`.
type ParenArgs struct {
	Inputs []Type
	Output Type
	Span   source.Span
}

func (a *ParenArgs) NodeSpan() source.Span { return a.Span }
func (*ParenArgs) pathArgsNode()           {}

type LifetimeArg struct {
	Lifetime *Lifetime
}

func (a *LifetimeArg) NodeSpan() source.Span { return a.Lifetime.Span }
func (*LifetimeArg) genericArgNode()         {}

type TypeArg struct {
	Type Type
}

func (a *TypeArg) NodeSpan() source.Span { return a.Type.NodeSpan() }
func (*TypeArg) genericArgNode()         {}

// ConstArg is a literal, `-literal` or `{ expr }` argument kept as tokens.
type ConstArg struct {
	Expr *TokenTree
}

func (a *ConstArg) NodeSpan() source.Span { return a.Expr.Span }
func (*ConstArg) genericArgNode()         {}

// AssocType is `Item = T` (or `Item<'a> = T` for generic associated types).
type AssocType struct {
	Ident *Ident
	Args  *AngleArgs
	Type  Type
	Span  source.Span
}

func (a *AssocType) NodeSpan() source.Span { return a.Span }
func (*AssocType) genericArgNode()         {}

// AssocConstraint is `Item: Bound + Bound`.
type AssocConstraint struct {
	Ident  *Ident
	Args   *AngleArgs
	Bounds []TypeParamBound
	Span   source.Span
}

func (a *AssocConstraint) NodeSpan() source.Span { return a.Span }
func (*AssocConstraint) genericArgNode()         {}
