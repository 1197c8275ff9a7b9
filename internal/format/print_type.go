package format

import (
	"traitgen/internal/ast"
)

func (p *printer) printType(t ast.Type) {
	switch t := t.(type) {
	case *ast.PathType:
		if t.QSelf != nil {
			p.w.WriteString("<")
			p.printType(t.QSelf.Ty)
			if t.QSelf.Trait != nil {
				p.w.WriteString(" as ")
				p.printPath(t.QSelf.Trait)
			}
			p.w.WriteString(">::")
		}
		p.printPath(t.Path)

	case *ast.RefType:
		p.w.WriteString("&")
		if t.Lifetime != nil {
			p.w.WriteString(t.Lifetime.String())
			p.w.Space()
		}
		if t.Mut {
			p.w.WriteString("mut ")
		}
		p.printType(t.Elem)

	case *ast.PtrType:
		if t.Mut {
			p.w.WriteString("*mut ")
		} else {
			p.w.WriteString("*const ")
		}
		p.printType(t.Elem)

	case *ast.SliceType:
		p.w.WriteString("[")
		p.printType(t.Elem)
		p.w.WriteString("]")

	case *ast.ArrayType:
		p.w.WriteString("[")
		p.printType(t.Elem)
		p.w.WriteString("; ")
		p.printTokens(t.Len, false)
		p.w.WriteString("]")

	case *ast.TupleType:
		p.w.WriteString("(")
		for i, e := range t.Elems {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.printType(e)
		}
		if len(t.Elems) == 1 {
			p.w.WriteString(",")
		}
		p.w.WriteString(")")

	case *ast.NeverType:
		p.w.WriteString("!")

	case *ast.InferType:
		p.w.WriteString("_")

	case *ast.TraitObjectType:
		if t.Dyn {
			p.w.WriteString("dyn ")
		}
		p.printBounds(t.Bounds)

	case *ast.ImplTraitType:
		p.w.WriteString("impl ")
		p.printBounds(t.Bounds)

	case *ast.ParenType:
		p.w.WriteString("(")
		p.printType(t.Elem)
		p.w.WriteString(")")

	case *ast.FnPtrType:
		p.printFnPtr(t)
	}
}

func (p *printer) printFnPtr(t *ast.FnPtrType) {
	if t.Lifetimes != nil {
		p.printBoundLifetimes(t.Lifetimes)
		p.w.Space()
	}
	if t.Unsafe {
		p.w.WriteString("unsafe ")
	}
	if t.Extern {
		p.w.WriteString("extern ")
		if t.Abi != "" {
			p.w.WriteString(t.Abi)
			p.w.Space()
		}
	}
	p.w.WriteString("fn(")
	for i, in := range t.Inputs {
		if i > 0 {
			p.w.WriteString(", ")
		}
		if in.Name != nil {
			p.w.WriteString(in.Name.Name)
			p.w.WriteString(": ")
		}
		p.printType(in.Ty)
	}
	if t.Variadic {
		if len(t.Inputs) > 0 {
			p.w.WriteString(", ")
		}
		p.w.WriteString("...")
	}
	p.w.WriteString(")")
	if t.Output != nil {
		p.w.WriteString(" -> ")
		p.printType(t.Output)
	}
}

func (p *printer) printPath(path *ast.Path) {
	if path == nil {
		return
	}
	if path.LeadingColon {
		p.w.WriteString("::")
	}
	for i, seg := range path.Segments {
		if i > 0 {
			p.w.WriteString("::")
		}
		p.w.WriteString(seg.Ident.Name)
		switch args := seg.Args.(type) {
		case *ast.AngleArgs:
			p.printAngleArgs(args)
		case *ast.ParenArgs:
			p.printParenArgs(args)
		}
	}
}

func (p *printer) printAngleArgs(args *ast.AngleArgs) {
	if args.Turbofish {
		p.w.WriteString("::")
	}
	p.w.WriteString("<")
	for i, a := range args.Args {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.printGenericArg(a)
	}
	p.w.WriteString(">")
}

func (p *printer) printParenArgs(args *ast.ParenArgs) {
	p.w.WriteString("(")
	for i, in := range args.Inputs {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.printType(in)
	}
	p.w.WriteString(")")
	if args.Output != nil {
		p.w.WriteString(" -> ")
		p.printType(args.Output)
	}
}

func (p *printer) printGenericArg(a ast.GenericArg) {
	switch a := a.(type) {
	case *ast.LifetimeArg:
		p.w.WriteString(a.Lifetime.String())
	case *ast.TypeArg:
		p.printType(a.Type)
	case *ast.ConstArg:
		p.printTokens(a.Expr, false)
	case *ast.AssocType:
		p.w.WriteString(a.Ident.Name)
		if a.Args != nil {
			p.printAngleArgs(a.Args)
		}
		p.w.WriteString(" = ")
		p.printType(a.Type)
	case *ast.AssocConstraint:
		p.w.WriteString(a.Ident.Name)
		if a.Args != nil {
			p.printAngleArgs(a.Args)
		}
		p.w.WriteString(":")
		if len(a.Bounds) > 0 {
			p.w.Space()
			p.printBounds(a.Bounds)
		}
	}
}
