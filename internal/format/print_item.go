package format

import (
	"traitgen/internal/ast"
)

func (p *printer) printAttrs(attrs []*ast.Attribute) {
	for _, a := range attrs {
		p.printAttr(a)
		p.w.Newline()
	}
}

// printAttr: `#[path args]`. Doc-комментарии уже стали `#[doc = "..."]`.
func (p *printer) printAttr(a *ast.Attribute) {
	if a.Style == ast.AttrInner {
		p.w.WriteString("#![")
	} else {
		p.w.WriteString("#[")
	}
	p.printPath(a.Path)
	if a.Args != nil {
		p.printTokens(a.Args, true)
	}
	p.w.WriteString("]")
}

func (p *printer) printVis(v ast.Visibility) {
	switch v.Kind {
	case ast.VisInherited:
		return
	case ast.VisPubIn:
		p.w.WriteString("pub(in ")
		p.printPath(v.Path)
		p.w.WriteString(")")
	default:
		p.w.WriteString(v.Kind.String())
	}
	p.w.Space()
}

// printAlias печатает исходную форму объявления.
func (p *printer) printAlias(a *ast.TraitAlias) {
	p.printAttrs(a.Attrs)
	p.printVis(a.Vis)
	p.w.WriteString("trait ")
	p.w.WriteString(a.Ident.Name)
	var where *ast.WhereClause
	if a.Generics != nil {
		p.printGenerics(a.Generics.Params, true)
		where = a.Generics.Where
	}
	p.w.WriteString(" =")
	if len(a.Bounds) > 0 {
		p.w.Space()
		p.printBounds(a.Bounds)
	}
	p.printWhere(where)
	p.w.WriteString(";")
}

func (p *printer) printTraitDecl(d *ast.TraitDecl) {
	p.printAttrs(d.Attrs)
	p.printVis(d.Vis)
	p.w.WriteString("trait ")
	p.w.WriteString(d.Ident.Name)
	var where *ast.WhereClause
	if d.Generics != nil {
		p.printGenerics(d.Generics.Params, true)
		where = d.Generics.Where
	}
	if len(d.Supertraits) > 0 {
		p.w.WriteString(": ")
		p.printBounds(d.Supertraits)
	}
	p.printWhere(where)
	p.w.WriteString(" {}")
}

func (p *printer) printImplDecl(d *ast.ImplDecl) {
	p.printAttrs(d.Attrs)
	p.w.WriteString("impl")
	p.printGenerics(d.Generics.Params, false)
	p.w.Space()
	p.w.WriteString(d.Trait.Name)
	if args := d.TraitArgs.Args(); args != nil {
		p.printAngleArgs(args)
	}
	p.w.WriteString(" for ")
	p.printType(d.SelfTy)
	p.printWhere(d.Where)
	p.w.WriteString(" {}")
}
