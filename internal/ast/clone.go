package ast

import (
	"fmt"
	"slices"

	"traitgen/internal/token"
)

// Clone returns a deep copy of g; nil stays nil.
func (g *Generics) Clone() *Generics {
	if g == nil {
		return nil
	}
	out := &Generics{Span: g.Span}
	if g.Params != nil {
		out.Params = make([]GenericParam, len(g.Params))
		for i, p := range g.Params {
			out.Params[i] = CloneParam(p)
		}
	}
	out.Where = g.Where.Clone()
	return out
}

// Clone returns a deep copy of w; nil stays nil.
func (w *WhereClause) Clone() *WhereClause {
	if w == nil {
		return nil
	}
	out := &WhereClause{Span: w.Span}
	if w.Predicates != nil {
		out.Predicates = make([]WherePredicate, len(w.Predicates))
		for i, p := range w.Predicates {
			out.Predicates[i] = ClonePredicate(p)
		}
	}
	return out
}

func CloneParam(p GenericParam) GenericParam {
	switch p := p.(type) {
	case *LifetimeParam:
		return cloneLifetimeParam(p)
	case *TypeParam:
		return &TypeParam{
			Attrs:   CloneAttrs(p.Attrs),
			Ident:   cloneIdent(p.Ident),
			Bounds:  CloneBounds(p.Bounds),
			Default: CloneType(p.Default),
			Span:    p.Span,
		}
	case *ConstParam:
		return &ConstParam{
			Attrs:   CloneAttrs(p.Attrs),
			Ident:   cloneIdent(p.Ident),
			Ty:      CloneType(p.Ty),
			Default: cloneTokens(p.Default),
			Span:    p.Span,
		}
	default:
		panic(fmt.Sprintf("ast.CloneParam: unexpected %T", p))
	}
}

func ClonePredicate(p WherePredicate) WherePredicate {
	switch p := p.(type) {
	case *PredicateType:
		return &PredicateType{
			Lifetimes: cloneBoundLifetimes(p.Lifetimes),
			BoundedTy: CloneType(p.BoundedTy),
			Bounds:    CloneBounds(p.Bounds),
			Span:      p.Span,
		}
	case *PredicateLifetime:
		return &PredicateLifetime{
			Lifetime: cloneLifetime(p.Lifetime),
			Bounds:   cloneLifetimes(p.Bounds),
			Span:     p.Span,
		}
	default:
		panic(fmt.Sprintf("ast.ClonePredicate: unexpected %T", p))
	}
}

func CloneBounds(bs []TypeParamBound) []TypeParamBound {
	if bs == nil {
		return nil
	}
	out := make([]TypeParamBound, len(bs))
	for i, b := range bs {
		out[i] = CloneBound(b)
	}
	return out
}

func CloneBound(b TypeParamBound) TypeParamBound {
	switch b := b.(type) {
	case *TraitBound:
		return &TraitBound{
			Paren:     b.Paren,
			Modifier:  b.Modifier,
			Lifetimes: cloneBoundLifetimes(b.Lifetimes),
			Path:      ClonePath(b.Path),
			Span:      b.Span,
		}
	case *LifetimeBound:
		return &LifetimeBound{Lifetime: cloneLifetime(b.Lifetime)}
	default:
		panic(fmt.Sprintf("ast.CloneBound: unexpected %T", b))
	}
}

func CloneType(t Type) Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *PathType:
		out := &PathType{Path: ClonePath(t.Path), Span: t.Span}
		if t.QSelf != nil {
			out.QSelf = &QSelf{Ty: CloneType(t.QSelf.Ty), Trait: ClonePath(t.QSelf.Trait), Span: t.QSelf.Span}
		}
		return out
	case *RefType:
		return &RefType{Lifetime: cloneLifetime(t.Lifetime), Mut: t.Mut, Elem: CloneType(t.Elem), Span: t.Span}
	case *PtrType:
		return &PtrType{Mut: t.Mut, Elem: CloneType(t.Elem), Span: t.Span}
	case *SliceType:
		return &SliceType{Elem: CloneType(t.Elem), Span: t.Span}
	case *ArrayType:
		return &ArrayType{Elem: CloneType(t.Elem), Len: cloneTokens(t.Len), Span: t.Span}
	case *TupleType:
		return &TupleType{Elems: cloneTypes(t.Elems), Span: t.Span}
	case *NeverType:
		return &NeverType{Span: t.Span}
	case *InferType:
		return &InferType{Span: t.Span}
	case *TraitObjectType:
		return &TraitObjectType{Dyn: t.Dyn, Bounds: CloneBounds(t.Bounds), Span: t.Span}
	case *ImplTraitType:
		return &ImplTraitType{Bounds: CloneBounds(t.Bounds), Span: t.Span}
	case *ParenType:
		return &ParenType{Elem: CloneType(t.Elem), Span: t.Span}
	case *FnPtrType:
		out := &FnPtrType{
			Lifetimes: cloneBoundLifetimes(t.Lifetimes),
			Unsafe:    t.Unsafe,
			Abi:       t.Abi,
			Extern:    t.Extern,
			Variadic:  t.Variadic,
			Output:    CloneType(t.Output),
			Span:      t.Span,
		}
		for _, in := range t.Inputs {
			out.Inputs = append(out.Inputs, &FnArg{Name: cloneIdent(in.Name), Ty: CloneType(in.Ty), Span: in.Span})
		}
		return out
	default:
		panic(fmt.Sprintf("ast.CloneType: unexpected %T", t))
	}
}

func ClonePath(p *Path) *Path {
	if p == nil {
		return nil
	}
	out := &Path{LeadingColon: p.LeadingColon, Span: p.Span}
	out.Segments = make([]*PathSegment, len(p.Segments))
	for i, s := range p.Segments {
		out.Segments[i] = &PathSegment{Ident: cloneIdent(s.Ident), Args: clonePathArgs(s.Args), Span: s.Span}
	}
	return out
}

func clonePathArgs(a PathArgs) PathArgs {
	switch a := a.(type) {
	case nil:
		return nil
	case *AngleArgs:
		return cloneAngleArgs(a)
	case *ParenArgs:
		return &ParenArgs{Inputs: cloneTypes(a.Inputs), Output: CloneType(a.Output), Span: a.Span}
	default:
		panic(fmt.Sprintf("ast.clonePathArgs: unexpected %T", a))
	}
}

func cloneAngleArgs(a *AngleArgs) *AngleArgs {
	if a == nil {
		return nil
	}
	out := &AngleArgs{Turbofish: a.Turbofish, Span: a.Span}
	for _, arg := range a.Args {
		out.Args = append(out.Args, cloneGenericArg(arg))
	}
	return out
}

func cloneGenericArg(a GenericArg) GenericArg {
	switch a := a.(type) {
	case *LifetimeArg:
		return &LifetimeArg{Lifetime: cloneLifetime(a.Lifetime)}
	case *TypeArg:
		return &TypeArg{Type: CloneType(a.Type)}
	case *ConstArg:
		return &ConstArg{Expr: cloneTokens(a.Expr)}
	case *AssocType:
		return &AssocType{Ident: cloneIdent(a.Ident), Args: cloneAngleArgs(a.Args), Type: CloneType(a.Type), Span: a.Span}
	case *AssocConstraint:
		return &AssocConstraint{Ident: cloneIdent(a.Ident), Args: cloneAngleArgs(a.Args), Bounds: CloneBounds(a.Bounds), Span: a.Span}
	default:
		panic(fmt.Sprintf("ast.cloneGenericArg: unexpected %T", a))
	}
}

func CloneAttrs(attrs []*Attribute) []*Attribute {
	if attrs == nil {
		return nil
	}
	out := make([]*Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = &Attribute{
			Style:    a.Style,
			Path:     ClonePath(a.Path),
			Args:     cloneTokens(a.Args),
			DocSugar: a.DocSugar,
			Span:     a.Span,
		}
	}
	return out
}

func cloneTypes(ts []Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = CloneType(t)
	}
	return out
}

func cloneLifetimeParam(p *LifetimeParam) *LifetimeParam {
	return &LifetimeParam{
		Attrs:    CloneAttrs(p.Attrs),
		Lifetime: cloneLifetime(p.Lifetime),
		Bounds:   cloneLifetimes(p.Bounds),
		Span:     p.Span,
	}
}

func cloneBoundLifetimes(b *BoundLifetimes) *BoundLifetimes {
	if b == nil {
		return nil
	}
	out := &BoundLifetimes{Span: b.Span}
	for _, p := range b.Params {
		out.Params = append(out.Params, cloneLifetimeParam(p))
	}
	return out
}

func cloneIdent(id *Ident) *Ident {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func cloneLifetime(lt *Lifetime) *Lifetime {
	if lt == nil {
		return nil
	}
	c := *lt
	return &c
}

func cloneLifetimes(lts []*Lifetime) []*Lifetime {
	if lts == nil {
		return nil
	}
	out := make([]*Lifetime, len(lts))
	for i, lt := range lts {
		out[i] = cloneLifetime(lt)
	}
	return out
}

func cloneTokens(t *TokenTree) *TokenTree {
	if t == nil {
		return nil
	}
	toks := make([]token.Token, len(t.Tokens))
	for i, tok := range t.Tokens {
		tok.Leading = slices.Clone(tok.Leading)
		toks[i] = tok
	}
	return &TokenTree{Tokens: toks, Span: t.Span}
}
