package ast

import "traitgen/internal/source"

// VisKind описывает форму модификатора видимости.
type VisKind uint8

const (
	VisInherited VisKind = iota
	VisPub               // pub
	VisPubCrate          // pub(crate)
	VisPubSuper          // pub(super)
	VisPubSelf           // pub(self)
	VisPubIn             // pub(in path)
	VisCrate             // crate (устаревшая форма)
)

type Visibility struct {
	Kind VisKind
	Path *Path // только для VisPubIn
	Span source.Span
}

func (v *Visibility) NodeSpan() source.Span { return v.Span }

func (k VisKind) String() string {
	switch k {
	case VisPub:
		return "pub"
	case VisPubCrate:
		return "pub(crate)"
	case VisPubSuper:
		return "pub(super)"
	case VisPubSelf:
		return "pub(self)"
	case VisPubIn:
		return "pub(in)"
	case VisCrate:
		return "crate"
	default:
		return "inherited"
	}
}
