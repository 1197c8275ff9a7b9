package ast

import "traitgen/internal/source"

// QSelf is the `<Ty as Trait>` prefix of a qualified path. Trait is nil for `<Ty>::X`.
type QSelf struct {
	Ty    Type
	Trait *Path
	Span  source.Span
}

func (q *QSelf) NodeSpan() source.Span { return q.Span }

// PathType is `a::B<C>` or `<T as Trait>::Assoc`. With QSelf set, Path holds
// only the segments after `>::`.
type PathType struct {
	QSelf *QSelf
	Path  *Path
	Span  source.Span
}

// RefType is `&'a mut T`.
type RefType struct {
	Lifetime *Lifetime
	Mut      bool
	Elem     Type
	Span     source.Span
}

// PtrType is `*const T` / `*mut T`.
type PtrType struct {
	Mut  bool
	Elem Type
	Span source.Span
}

type SliceType struct {
	Elem Type
	Span source.Span
}

// ArrayType is `[T; N]`; Len is kept as tokens.
type ArrayType struct {
	Elem Type
	Len  *TokenTree
	Span source.Span
}

// TupleType is `(A, B)`; `()` has no elems. A one-element tuple is `(A,)`.
type TupleType struct {
	Elems []Type
	Span  source.Span
}

type NeverType struct {
	Span source.Span
}

type InferType struct {
	Span source.Span
}

// TraitObjectType is `dyn A + B` (Dyn false for the bare 2015 form).
type TraitObjectType struct {
	Dyn    bool
	Bounds []TypeParamBound
	Span   source.Span
}

type ImplTraitType struct {
	Bounds []TypeParamBound
	Span   source.Span
}

type ParenType struct {
	Elem Type
	Span source.Span
}

// FnArg is one parameter of a function pointer type; Name is optional.
type FnArg struct {
	Name *Ident
	Ty   Type
	Span source.Span
}

func (a *FnArg) NodeSpan() source.Span { return a.Span }

// FnPtrType is `for<'a> unsafe extern "C" fn(A, ...) -> R`.
type FnPtrType struct {
	Lifetimes *BoundLifetimes
	Unsafe    bool
	Abi       string // литерал ABI с кавычками; "" если extern не указан
	Extern    bool
	Inputs    []*FnArg
	Variadic  bool
	Output    Type
	Span      source.Span
}

func (t *PathType) NodeSpan() source.Span        { return t.Span }
func (t *RefType) NodeSpan() source.Span         { return t.Span }
func (t *PtrType) NodeSpan() source.Span         { return t.Span }
func (t *SliceType) NodeSpan() source.Span       { return t.Span }
func (t *ArrayType) NodeSpan() source.Span       { return t.Span }
func (t *TupleType) NodeSpan() source.Span       { return t.Span }
func (t *NeverType) NodeSpan() source.Span       { return t.Span }
func (t *InferType) NodeSpan() source.Span       { return t.Span }
func (t *TraitObjectType) NodeSpan() source.Span { return t.Span }
func (t *ImplTraitType) NodeSpan() source.Span   { return t.Span }
func (t *ParenType) NodeSpan() source.Span       { return t.Span }
func (t *FnPtrType) NodeSpan() source.Span       { return t.Span }

func (*PathType) typeNode()        {}
func (*RefType) typeNode()         {}
func (*PtrType) typeNode()         {}
func (*SliceType) typeNode()       {}
func (*ArrayType) typeNode()       {}
func (*TupleType) typeNode()       {}
func (*NeverType) typeNode()       {}
func (*InferType) typeNode()       {}
func (*TraitObjectType) typeNode() {}
func (*ImplTraitType) typeNode()   {}
func (*ParenType) typeNode()       {}
func (*FnPtrType) typeNode()       {}

// TypeFromIdent builds the path type `name`.
func TypeFromIdent(id *Ident) *PathType {
	return &PathType{Path: PathFromIdent(id), Span: id.Span}
}
