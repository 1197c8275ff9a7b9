package generate

import (
	"fmt"

	"traitgen/internal/ast"
	"traitgen/internal/parser"
	"traitgen/internal/reserved"
)

// Fragment is the output for one alias: the trait, then its blanket impl.
type Fragment struct {
	Trait *ast.TraitDecl
	Impl  *ast.ImplDecl
}

// BlanketDoc is the doc string placed on every generated impl.
func BlanketDoc(name string) string {
	return fmt.Sprintf("Blanket implementation of [`%s`] for all types satisfying its bounds.", name)
}

// TraitAliases lowers every item of the collection, in declaration order.
func TraitAliases(c *parser.Collection) []Fragment {
	if c == nil {
		return nil
	}
	out := make([]Fragment, 0, len(c.Items))
	for _, item := range c.Items {
		out = append(out, TraitAlias(item))
	}
	return out
}

// TraitAlias lowers one declaration:
//
//	docs
//	attrs
//	vis trait Name<G>: Bounds where P {}
//
//	#[doc = "Blanket implementation of [`Name`] ..."]
//	attrs
//	impl<G, __T> Name<g> for __T where P, __T: Bounds + ?Sized {}
//
// Doc attributes go to the trait only; every other attribute goes to both.
func TraitAlias(item *ast.TraitAlias) Fragment {
	docs, attrs := ast.PartitionAttrs(item.Attrs)

	generics := item.Generics
	if generics == nil {
		generics = &ast.Generics{}
	}
	// аргументы трейта берутся из исходных generics, без __T
	_, typeGenerics, _ := generics.SplitForImpl()

	derived := newBuilder(generics).
		addParam(reserved.TypeParam()).
		addPredicate(reserved.PredicateType(item.Bounds)).
		finish()
	implGenerics, _, whereDerived := derived.SplitForImpl()

	traitAttrs := make([]*ast.Attribute, 0, len(item.Attrs))
	traitAttrs = append(traitAttrs, docs...)
	traitAttrs = append(traitAttrs, attrs...)

	trait := &ast.TraitDecl{
		Attrs:       traitAttrs,
		Vis:         item.Vis,
		Ident:       item.Ident,
		Generics:    generics,
		Supertraits: item.Bounds,
		Span:        item.Span,
	}

	implAttrs := make([]*ast.Attribute, 0, len(attrs)+1)
	implAttrs = append(implAttrs, ast.NewDocAttribute(BlanketDoc(item.Ident.Name), item.Ident.Span))
	implAttrs = append(implAttrs, ast.CloneAttrs(attrs)...)

	impl := &ast.ImplDecl{
		Attrs:     implAttrs,
		Generics:  implGenerics,
		Trait:     item.Ident,
		TraitArgs: typeGenerics,
		SelfTy:    reserved.TypePath(),
		Where:     whereDerived,
		Span:      item.Span,
	}
	return Fragment{Trait: trait, Impl: impl}
}
