package ast

import "traitgen/internal/source"

// TraitBoundModifier: None or Maybe (`?Trait`).
type TraitBoundModifier uint8

const (
	BoundNone TraitBoundModifier = iota
	BoundMaybe
)

// BoundLifetimes is the `for<'a, 'b>` quantifier of a higher-ranked bound.
type BoundLifetimes struct {
	Params []*LifetimeParam
	Span   source.Span
}

func (b *BoundLifetimes) NodeSpan() source.Span { return b.Span }

// TraitBound is `?for<'a> path::Trait<Args>`, optionally parenthesized.
type TraitBound struct {
	Paren     bool
	Modifier  TraitBoundModifier
	Lifetimes *BoundLifetimes
	Path      *Path
	Span      source.Span
}

func (b *TraitBound) NodeSpan() source.Span { return b.Span }
func (*TraitBound) boundNode()              {}

type LifetimeBound struct {
	Lifetime *Lifetime
}

func (b *LifetimeBound) NodeSpan() source.Span { return b.Lifetime.Span }
func (*LifetimeBound) boundNode()              {}
