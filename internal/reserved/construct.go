package reserved

import (
	"traitgen/internal/ast"
	"traitgen/internal/source"
)

const sizedName = "Sized"

// Generated nodes carry the zero span: they have no source location.
var noSpan source.Span

func Ident() *ast.Ident      { return ast.NewIdent(Name, noSpan) }
func SizedIdent() *ast.Ident { return ast.NewIdent(sizedName, noSpan) }

// PathFor builds a single-segment path without generic arguments.
func PathFor(id *ast.Ident) *ast.Path { return ast.PathFromIdent(id) }

func Path() *ast.Path      { return PathFor(Ident()) }
func SizedPath() *ast.Path { return PathFor(SizedIdent()) }

// TypePath is `__T` in type position.
func TypePath() *ast.PathType {
	return &ast.PathType{Path: Path()}
}

// TypeParam is the bare `__T` parameter: no attributes, no bounds (they go
// to the where clause) and no default.
func TypeParam() *ast.TypeParam {
	return &ast.TypeParam{Ident: Ident()}
}

// MaybeSizedBound is `?Sized`.
func MaybeSizedBound() *ast.TraitBound {
	return &ast.TraitBound{Modifier: ast.BoundMaybe, Path: SizedPath()}
}

// PredicateType builds `__T: bounds + ?Sized`. The bounds are copied;
// `?Sized` is always appended last, even if bounds already contain it.
func PredicateType(bounds []ast.TypeParamBound) *ast.PredicateType {
	out := make([]ast.TypeParamBound, 0, len(bounds)+1)
	out = append(out, ast.CloneBounds(bounds)...)
	out = append(out, MaybeSizedBound())
	return &ast.PredicateType{BoundedTy: TypePath(), Bounds: out}
}
