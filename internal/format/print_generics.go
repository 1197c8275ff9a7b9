package format

import (
	"traitgen/internal/ast"
)

// printGenerics печатает `<...>`; withDefaults=false даёт заголовок impl,
// где значения по умолчанию запрещены.
func (p *printer) printGenerics(params []ast.GenericParam, withDefaults bool) {
	if len(params) == 0 {
		return
	}
	p.w.WriteString("<")
	for i, param := range params {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.printParam(param, withDefaults)
	}
	p.w.WriteString(">")
}

func (p *printer) printInlineAttrs(attrs []*ast.Attribute) {
	for _, a := range attrs {
		p.printAttr(a)
		p.w.Space()
	}
}

func (p *printer) printParam(param ast.GenericParam, withDefaults bool) {
	switch param := param.(type) {
	case *ast.LifetimeParam:
		p.printInlineAttrs(param.Attrs)
		p.w.WriteString(param.Lifetime.String())
		if len(param.Bounds) > 0 {
			p.w.WriteString(": ")
			p.printLifetimes(param.Bounds)
		}

	case *ast.TypeParam:
		p.printInlineAttrs(param.Attrs)
		p.w.WriteString(param.Ident.Name)
		if len(param.Bounds) > 0 {
			p.w.WriteString(": ")
			p.printBounds(param.Bounds)
		}
		if withDefaults && param.Default != nil {
			p.w.WriteString(" = ")
			p.printType(param.Default)
		}

	case *ast.ConstParam:
		p.printInlineAttrs(param.Attrs)
		p.w.WriteString("const ")
		p.w.WriteString(param.Ident.Name)
		p.w.WriteString(": ")
		p.printType(param.Ty)
		if withDefaults && param.Default != nil {
			p.w.WriteString(" = ")
			p.printTokens(param.Default, false)
		}
	}
}

func (p *printer) printLifetimes(lts []*ast.Lifetime) {
	for i, lt := range lts {
		if i > 0 {
			p.w.WriteString(" + ")
		}
		p.w.WriteString(lt.String())
	}
}

func (p *printer) printBounds(bounds []ast.TypeParamBound) {
	for i, b := range bounds {
		if i > 0 {
			p.w.WriteString(" + ")
		}
		p.printBound(b)
	}
}

func (p *printer) printBound(b ast.TypeParamBound) {
	switch b := b.(type) {
	case *ast.LifetimeBound:
		p.w.WriteString(b.Lifetime.String())
	case *ast.TraitBound:
		if b.Paren {
			p.w.WriteString("(")
		}
		if b.Modifier == ast.BoundMaybe {
			p.w.WriteString("?")
		}
		if b.Lifetimes != nil {
			p.printBoundLifetimes(b.Lifetimes)
			p.w.Space()
		}
		p.printPath(b.Path)
		if b.Paren {
			p.w.WriteString(")")
		}
	}
}

// printBoundLifetimes: `for<'a, 'b: 'a>`.
func (p *printer) printBoundLifetimes(bl *ast.BoundLifetimes) {
	p.w.WriteString("for<")
	for i, lp := range bl.Params {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.printParam(lp, true)
	}
	p.w.WriteString(">")
}

// printWhere печатает ` where A: B, 'a: 'b`; пустое where не печатается.
func (p *printer) printWhere(wc *ast.WhereClause) {
	if wc == nil || len(wc.Predicates) == 0 {
		return
	}
	p.w.WriteString(" where ")
	for i, pred := range wc.Predicates {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.printPredicate(pred)
	}
}

func (p *printer) printPredicate(pred ast.WherePredicate) {
	switch pred := pred.(type) {
	case *ast.PredicateLifetime:
		p.w.WriteString(pred.Lifetime.String())
		p.w.WriteString(":")
		if len(pred.Bounds) > 0 {
			p.w.Space()
			p.printLifetimes(pred.Bounds)
		}
	case *ast.PredicateType:
		if pred.Lifetimes != nil {
			p.printBoundLifetimes(pred.Lifetimes)
			p.w.Space()
		}
		p.printType(pred.BoundedTy)
		p.w.WriteString(":")
		if len(pred.Bounds) > 0 {
			p.w.Space()
			p.printBounds(pred.Bounds)
		}
	}
}
