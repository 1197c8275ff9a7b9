// Package ast is the syntax model for trait alias declarations and for the
// trait/impl items generated from them.
//
// Nodes are plain pointer trees rather than arena IDs: generation clones
// generics and rewrites where clauses, and that is easiest on owned values.
// Every node knows its source span; synthesized nodes carry a zero span.
//
// Walk visits every node and, in particular, every identifier leaf, including
// identifiers inside opaque token trees (attribute arguments, const
// expressions). Consumers that need exhaustive identifier coverage (the
// reserved-name checker) rely on that.
package ast
