package ast

import "fmt"

// Visitor's Visit is invoked for each node encountered by Walk. If the
// returned visitor w is not nil, Walk visits each child of node with w,
// followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree in source order, depth-first. Identifiers inside
// token trees are visited as *Ident nodes synthesized from their tokens.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Ident, *Lifetime:
		// листья

	case *TokenTree:
		for _, id := range n.Idents() {
			Walk(v, id)
		}

	case *Attribute:
		walkPath(v, n.Path)
		if n.Args != nil {
			Walk(v, n.Args)
		}

	case *Visibility:
		walkPath(v, n.Path)

	case *Path:
		for _, seg := range n.Segments {
			Walk(v, seg)
		}

	case *PathSegment:
		Walk(v, n.Ident)
		if n.Args != nil {
			Walk(v, n.Args)
		}

	case *AngleArgs:
		for _, a := range n.Args {
			Walk(v, a)
		}

	case *ParenArgs:
		walkTypes(v, n.Inputs)
		walkType(v, n.Output)

	case *LifetimeArg:
		Walk(v, n.Lifetime)

	case *TypeArg:
		walkType(v, n.Type)

	case *ConstArg:
		Walk(v, n.Expr)

	case *AssocType:
		Walk(v, n.Ident)
		if n.Args != nil {
			Walk(v, n.Args)
		}
		walkType(v, n.Type)

	case *AssocConstraint:
		Walk(v, n.Ident)
		if n.Args != nil {
			Walk(v, n.Args)
		}
		walkBounds(v, n.Bounds)

	// типы
	case *QSelf:
		walkType(v, n.Ty)
		walkPath(v, n.Trait)

	case *PathType:
		if n.QSelf != nil {
			Walk(v, n.QSelf)
		}
		walkPath(v, n.Path)

	case *RefType:
		if n.Lifetime != nil {
			Walk(v, n.Lifetime)
		}
		walkType(v, n.Elem)

	case *PtrType:
		walkType(v, n.Elem)

	case *SliceType:
		walkType(v, n.Elem)

	case *ArrayType:
		walkType(v, n.Elem)
		if n.Len != nil {
			Walk(v, n.Len)
		}

	case *TupleType:
		walkTypes(v, n.Elems)

	case *NeverType, *InferType:
		// листья

	case *TraitObjectType:
		walkBounds(v, n.Bounds)

	case *ImplTraitType:
		walkBounds(v, n.Bounds)

	case *ParenType:
		walkType(v, n.Elem)

	case *FnArg:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		walkType(v, n.Ty)

	case *FnPtrType:
		if n.Lifetimes != nil {
			Walk(v, n.Lifetimes)
		}
		for _, in := range n.Inputs {
			Walk(v, in)
		}
		walkType(v, n.Output)

	// ограничения
	case *BoundLifetimes:
		for _, p := range n.Params {
			Walk(v, p)
		}

	case *TraitBound:
		if n.Lifetimes != nil {
			Walk(v, n.Lifetimes)
		}
		walkPath(v, n.Path)

	case *LifetimeBound:
		Walk(v, n.Lifetime)

	// generics
	case *Generics:
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}

	case *LifetimeParam:
		walkAttrs(v, n.Attrs)
		Walk(v, n.Lifetime)
		for _, lt := range n.Bounds {
			Walk(v, lt)
		}

	case *TypeParam:
		walkAttrs(v, n.Attrs)
		Walk(v, n.Ident)
		walkBounds(v, n.Bounds)
		walkType(v, n.Default)

	case *ConstParam:
		walkAttrs(v, n.Attrs)
		Walk(v, n.Ident)
		walkType(v, n.Ty)
		if n.Default != nil {
			Walk(v, n.Default)
		}

	case *WhereClause:
		for _, p := range n.Predicates {
			Walk(v, p)
		}

	case *PredicateType:
		if n.Lifetimes != nil {
			Walk(v, n.Lifetimes)
		}
		walkType(v, n.BoundedTy)
		walkBounds(v, n.Bounds)

	case *PredicateLifetime:
		Walk(v, n.Lifetime)
		for _, lt := range n.Bounds {
			Walk(v, lt)
		}

	// элементы
	case *TraitAlias:
		walkAttrs(v, n.Attrs)
		Walk(v, &n.Vis)
		Walk(v, n.Ident)
		if n.Generics != nil {
			Walk(v, n.Generics)
		}
		walkBounds(v, n.Bounds)

	case *TraitDecl:
		walkAttrs(v, n.Attrs)
		Walk(v, &n.Vis)
		Walk(v, n.Ident)
		if n.Generics != nil {
			Walk(v, n.Generics)
		}
		walkBounds(v, n.Supertraits)

	case *ImplDecl:
		walkAttrs(v, n.Attrs)
		for _, p := range n.Generics.Params {
			Walk(v, p)
		}
		Walk(v, n.Trait)
		if args := n.TraitArgs.Args(); args != nil {
			Walk(v, args)
		}
		walkType(v, n.SelfTy)
		if n.Where != nil {
			Walk(v, n.Where)
		}

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

func walkPath(v Visitor, p *Path) {
	if p != nil {
		Walk(v, p)
	}
}

func walkType(v Visitor, t Type) {
	if t != nil {
		Walk(v, t)
	}
}

func walkTypes(v Visitor, ts []Type) {
	for _, t := range ts {
		Walk(v, t)
	}
}

func walkBounds(v Visitor, bs []TypeParamBound) {
	for _, b := range bs {
		Walk(v, b)
	}
}

func walkAttrs(v Visitor, attrs []*Attribute) {
	for _, a := range attrs {
		Walk(v, a)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Idents collects every identifier reachable from node, in traversal order.
func Idents(node Node) []*Ident {
	var out []*Ident
	Inspect(node, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			out = append(out, id)
		}
		return true
	})
	return out
}
