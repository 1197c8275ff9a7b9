package ast

import "traitgen/internal/source"

// Node is implemented by every syntax node.
type Node interface {
	NodeSpan() source.Span
}

// Type is a type expression.
type Type interface {
	Node
	typeNode()
}

// TypeParamBound is a trait bound or a lifetime bound.
type TypeParamBound interface {
	Node
	boundNode()
}

// GenericParam is a lifetime, type or const parameter.
type GenericParam interface {
	Node
	genericParamNode()
}

// GenericArg is one argument inside `<...>` of a path segment.
type GenericArg interface {
	Node
	genericArgNode()
}

// PathArgs are the arguments of a path segment: `<...>` or `(...) -> R`.
type PathArgs interface {
	Node
	pathArgsNode()
}

// WherePredicate is a single predicate of a where clause.
type WherePredicate interface {
	Node
	wherePredicateNode()
}
