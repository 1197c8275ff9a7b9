package format

import (
	"errors"
	"fmt"

	"traitgen/internal/ast"
	"traitgen/internal/generate"
	"traitgen/internal/parser"
	"traitgen/internal/source"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
	// Indent: начальный уровень отступа (раскрытие внутри `mod { ... }`).
	Indent int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	if o.Indent < 0 {
		o.Indent = 0
	}
	return o
}

type printer struct {
	w *Writer
}

// Fragments renders expansions one after another, separated by blank lines.
func Fragments(frags []generate.Fragment, opt Options) []byte {
	w := NewWriter(nil, opt)
	WriteFragments(w, frags)
	return w.Bytes()
}

// WriteFragments appends rendered fragments to w.
func WriteFragments(w *Writer, frags []generate.Fragment) {
	p := printer{w: w}
	for i, f := range frags {
		if i > 0 {
			p.w.BlankLine()
		}
		p.printFragment(f)
	}
	p.w.Newline()
}

// Fragment renders a single expansion: the trait, a blank line, the impl.
func Fragment(f generate.Fragment, opt Options) string {
	w := NewWriter(nil, opt)
	p := printer{w: w}
	p.printFragment(f)
	w.Newline()
	return string(w.Bytes())
}

// Aliases prints declarations back in `trait Name = Bounds;` form.
func Aliases(items []*ast.TraitAlias, opt Options) []byte {
	w := NewWriter(nil, opt)
	p := printer{w: w}
	for _, item := range items {
		p.printAlias(item)
		w.Newline()
	}
	return w.Bytes()
}

// Node renders any single AST node on one line.
func Node(n ast.Node) string {
	w := NewWriter(nil, Options{})
	p := printer{w: w}
	p.printNode(n)
	return string(w.Bytes())
}

func (p *printer) printFragment(f generate.Fragment) {
	p.printTraitDecl(f.Trait)
	p.w.BlankLine()
	p.printImplDecl(f.Impl)
}

func (p *printer) printNode(n ast.Node) {
	switch n := n.(type) {
	case *ast.TraitAlias:
		p.printAlias(n)
	case *ast.TraitDecl:
		p.printTraitDecl(n)
	case *ast.ImplDecl:
		p.printImplDecl(n)
	case *ast.Attribute:
		p.printAttr(n)
	case *ast.Generics:
		p.printGenerics(n.Params, true)
	case *ast.WhereClause:
		p.printWhere(n)
	case ast.WherePredicate:
		p.printPredicate(n)
	case ast.GenericParam:
		p.printParam(n, true)
	case ast.TypeParamBound:
		p.printBound(n)
	case ast.Type:
		p.printType(n)
	case *ast.Path:
		p.printPath(n)
	case ast.GenericArg:
		p.printGenericArg(n)
	case *ast.Ident:
		p.w.WriteString(n.Name)
	case *ast.Lifetime:
		p.w.WriteString(n.String())
	case *ast.TokenTree:
		p.printTokens(n, false)
	default:
		panic(fmt.Sprintf("format: unexpected node type %T", n))
	}
}

// CheckRoundTrip prints the aliases parsed from sf back to source and
// re-parses the result, ensuring the declarations keep their names and order.
func CheckRoundTrip(sf *source.File) (ok bool, msg string) {
	if sf == nil {
		return false, "fmt-check: nil source file"
	}
	orig, err := parser.ParseSource(sf, parser.Options{})
	if err != nil {
		return false, "fmt-check: initial parse failed: " + err.Error()
	}

	printed := Aliases(orig.Items, Options{})
	fs2 := source.NewFileSetWithBase("")
	fid := fs2.AddVirtual(sf.Path, printed)
	again, err := parser.ParseSource(fs2.Get(fid), parser.Options{})
	if err != nil {
		return false, "fmt-check: reparse failed: " + err.Error()
	}

	if err := sameAliases(orig.Items, again.Items); err != nil {
		return false, "fmt-check: " + err.Error()
	}
	return true, "fmt-check: OK"
}

func sameAliases(a, b []*ast.TraitAlias) error {
	if len(a) != len(b) {
		return fmt.Errorf("alias count differs after round-trip: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Ident.Name != b[i].Ident.Name {
			return fmt.Errorf("alias %d renamed after round-trip: %s vs %s", i, a[i].Ident.Name, b[i].Ident.Name)
		}
		if Node(a[i]) != Node(b[i]) {
			return errors.New("alias " + a[i].Ident.Name + " prints differently after round-trip")
		}
	}
	return nil
}
