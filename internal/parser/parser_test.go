package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traitgen/internal/ast"
	"traitgen/internal/diag"
	"traitgen/internal/parser"
	"traitgen/internal/reserved"
	"traitgen/internal/source"
	"traitgen/internal/testkit"
)

func parse(t *testing.T, src string) (*parser.Collection, *source.File, error) {
	t.Helper()
	_, sf := testkit.VirtualFile("test.ta", src)
	c, err := parser.ParseSource(sf, parser.Options{})
	return c, sf, err
}

func mustParse(t *testing.T, src string) *parser.Collection {
	t.Helper()
	c, sf, err := parse(t, src)
	require.NoError(t, err)
	require.NoError(t, testkit.CheckSpanInvariants(c, sf))
	return c
}

func parseErr(t *testing.T, src string) *parser.ParseError {
	t.Helper()
	_, _, err := parse(t, src)
	require.Error(t, err)
	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr), "want *ParseError, got %T: %v", err, err)
	return perr
}

func traitPath(t *testing.T, b ast.TypeParamBound) *ast.Path {
	t.Helper()
	tb, ok := b.(*ast.TraitBound)
	require.True(t, ok, "want trait bound, got %T", b)
	return tb.Path
}

func TestParseSimpleBounds(t *testing.T) {
	c := mustParse(t, "trait SSS = Send + Sync + 'static;")
	require.Len(t, c.Items, 1)
	item := c.Items[0]

	assert.Equal(t, "SSS", item.Ident.Name)
	assert.Equal(t, ast.VisInherited, item.Vis.Kind)
	require.Len(t, item.Bounds, 3)
	assert.True(t, traitPath(t, item.Bounds[0]).IsIdent("Send"))
	assert.True(t, traitPath(t, item.Bounds[1]).IsIdent("Sync"))
	lt, ok := item.Bounds[2].(*ast.LifetimeBound)
	require.True(t, ok)
	assert.Equal(t, "static", lt.Lifetime.Name)
	assert.Nil(t, item.Generics.Where)
}

func TestParseWhereOnly(t *testing.T) {
	c := mustParse(t, "trait DD = where Self: Debug + Display;")
	item := c.Items[0]

	assert.Empty(t, item.Bounds)
	require.NotNil(t, item.Generics.Where)
	require.Len(t, item.Generics.Where.Predicates, 1)
	pred, ok := item.Generics.Where.Predicates[0].(*ast.PredicateType)
	require.True(t, ok)
	self, ok := pred.BoundedTy.(*ast.PathType)
	require.True(t, ok)
	assert.True(t, self.Path.IsIdent("Self"))
	require.Len(t, pred.Bounds, 2)
}

func TestParseTrailingPlusAndEmptyBounds(t *testing.T) {
	c := mustParse(t, "trait A = Send +; trait B = ;")
	require.Len(t, c.Items, 2)
	assert.Len(t, c.Items[0].Bounds, 1)
	assert.Empty(t, c.Items[1].Bounds)
}

func TestParseGenerics(t *testing.T) {
	c := mustParse(t, "pub(crate) trait Conv<'a: 'b, 'b, T: Clone = u8, const N: usize = 3> = From<&'a [T; N]> + Into<T> where T: 'a;")
	item := c.Items[0]

	assert.Equal(t, ast.VisPubCrate, item.Vis.Kind)
	params := item.Generics.Params
	require.Len(t, params, 4)

	a, ok := params[0].(*ast.LifetimeParam)
	require.True(t, ok)
	assert.Equal(t, "a", a.Lifetime.Name)
	require.Len(t, a.Bounds, 1)
	assert.Equal(t, "b", a.Bounds[0].Name)

	tp, ok := params[2].(*ast.TypeParam)
	require.True(t, ok)
	assert.Equal(t, "T", tp.Ident.Name)
	assert.Len(t, tp.Bounds, 1)
	require.NotNil(t, tp.Default)

	cp, ok := params[3].(*ast.ConstParam)
	require.True(t, ok)
	assert.Equal(t, "N", cp.Ident.Name)
	require.NotNil(t, cp.Default)
	assert.Equal(t, "3", cp.Default.Tokens[0].Text)

	from := traitPath(t, item.Bounds[0]).Last()
	args, ok := from.Args.(*ast.AngleArgs)
	require.True(t, ok)
	ref, ok := args.Args[0].(*ast.TypeArg).Type.(*ast.RefType)
	require.True(t, ok)
	arr, ok := ref.Elem.(*ast.ArrayType)
	require.True(t, ok)
	assert.Equal(t, "N", arr.Len.Tokens[0].Text)

	require.NotNil(t, item.Generics.Where)
	assert.Len(t, item.Generics.Where.Predicates, 1)
}

func TestParseAssociatedArgs(t *testing.T) {
	c := mustParse(t, `
trait It = Iterator<Item = u8>;
trait Sendy = Iterator<Item: Send + 'static>;
trait Lend = Lender<Item<'a> = &'a u8>;
trait Q = Foo<<T as Bar>::Out, {N + 1}, -1>;
`)
	require.Len(t, c.Items, 4)

	argsOf := func(i int) []ast.GenericArg {
		seg := traitPath(t, c.Items[i].Bounds[0]).Last()
		aa, ok := seg.Args.(*ast.AngleArgs)
		require.True(t, ok)
		return aa.Args
	}

	at, ok := argsOf(0)[0].(*ast.AssocType)
	require.True(t, ok)
	assert.Equal(t, "Item", at.Ident.Name)

	ac, ok := argsOf(1)[0].(*ast.AssocConstraint)
	require.True(t, ok)
	assert.Len(t, ac.Bounds, 2)

	gat, ok := argsOf(2)[0].(*ast.AssocType)
	require.True(t, ok)
	require.NotNil(t, gat.Args)
	assert.IsType(t, &ast.LifetimeArg{}, gat.Args.Args[0])

	q := argsOf(3)
	require.Len(t, q, 3)
	qt, ok := q[0].(*ast.TypeArg).Type.(*ast.PathType)
	require.True(t, ok)
	require.NotNil(t, qt.QSelf)
	assert.True(t, qt.QSelf.Trait.IsIdent("Bar"))
	assert.True(t, qt.Path.IsIdent("Out"))
	block, ok := q[1].(*ast.ConstArg)
	require.True(t, ok)
	assert.Len(t, block.Expr.Tokens, 5)
	neg, ok := q[2].(*ast.ConstArg)
	require.True(t, ok)
	assert.Len(t, neg.Expr.Tokens, 2)
}

func TestParseHigherRanked(t *testing.T) {
	c := mustParse(t, "trait F = for<'a> Fn(&'a str) -> &'a str; trait G<T> = where for<'a> &'a T: IntoIterator;")
	tb, ok := c.Items[0].Bounds[0].(*ast.TraitBound)
	require.True(t, ok)
	require.NotNil(t, tb.Lifetimes)
	require.Len(t, tb.Lifetimes.Params, 1)
	pa, ok := tb.Path.Last().Args.(*ast.ParenArgs)
	require.True(t, ok)
	assert.Len(t, pa.Inputs, 1)
	assert.NotNil(t, pa.Output)

	pred := c.Items[1].Generics.Where.Predicates[0].(*ast.PredicateType)
	require.NotNil(t, pred.Lifetimes)
	assert.IsType(t, &ast.RefType{}, pred.BoundedTy)
}

func TestParseTypes(t *testing.T) {
	c := mustParse(t, `trait T = Foo<Vec<Vec<u8>>, Box<dyn Fn() + Send>, (), (u8,), (u8, i8), !, _, *const u8, &mut [u8], fn(a: u8, ...) -> u8, ::std::io::Read, impl Sized>;`)
	args := traitPath(t, c.Items[0].Bounds[0]).Last().Args.(*ast.AngleArgs).Args
	require.Len(t, args, 12)

	kinds := make([]ast.Type, len(args))
	for i, a := range args {
		ta, ok := a.(*ast.TypeArg)
		require.True(t, ok, "arg %d is %T", i, a)
		kinds[i] = ta.Type
	}
	assert.IsType(t, &ast.PathType{}, kinds[0])
	assert.IsType(t, &ast.PathType{}, kinds[1])
	assert.IsType(t, &ast.TupleType{}, kinds[2])
	assert.Len(t, kinds[3].(*ast.TupleType).Elems, 1)
	assert.Len(t, kinds[4].(*ast.TupleType).Elems, 2)
	assert.IsType(t, &ast.NeverType{}, kinds[5])
	assert.IsType(t, &ast.InferType{}, kinds[6])
	assert.IsType(t, &ast.PtrType{}, kinds[7])
	assert.IsType(t, &ast.RefType{}, kinds[8])
	fp, ok := kinds[9].(*ast.FnPtrType)
	require.True(t, ok)
	assert.True(t, fp.Variadic)
	require.Len(t, fp.Inputs, 1)
	assert.Equal(t, "a", fp.Inputs[0].Name.Name)
	assert.True(t, kinds[10].(*ast.PathType).Path.LeadingColon)
	assert.IsType(t, &ast.ImplTraitType{}, kinds[11])

	boxed := kinds[1].(*ast.PathType).Path.Last().Args.(*ast.AngleArgs).Args[0].(*ast.TypeArg).Type
	obj, ok := boxed.(*ast.TraitObjectType)
	require.True(t, ok)
	assert.True(t, obj.Dyn)
	assert.Len(t, obj.Bounds, 2)
}

func TestParseDocsAndAttributes(t *testing.T) {
	c := mustParse(t, "/// Hello\n/** Block */\n#[cfg(feature = \"x\")]\npub trait A = Send;")
	attrs := c.Items[0].Attrs
	require.Len(t, attrs, 3)

	v, ok := attrs[0].DocValue()
	require.True(t, ok)
	assert.Equal(t, " Hello", v)
	assert.True(t, attrs[0].DocSugar)

	v, ok = attrs[1].DocValue()
	require.True(t, ok)
	assert.Equal(t, " Block ", v)

	assert.False(t, attrs[2].IsDoc())
	assert.True(t, attrs[2].Path.IsIdent("cfg"))
	assert.Equal(t, "(", attrs[2].Args.Tokens[0].Text)
}

func TestParseGenericParamDocs(t *testing.T) {
	c := mustParse(t, "trait A<\n    /// the element\n    T,\n> = Into<T>;")
	tp := c.Items[0].Generics.Params[0].(*ast.TypeParam)
	require.Len(t, tp.Attrs, 1)
	assert.True(t, tp.Attrs[0].IsDoc())
}

func TestParseVisibility(t *testing.T) {
	c := mustParse(t, "pub trait A = B; pub(super) trait C = D; pub(in crate::x) trait E = F; crate trait G = H;")
	require.Len(t, c.Items, 4)
	assert.Equal(t, ast.VisPub, c.Items[0].Vis.Kind)
	assert.Equal(t, ast.VisPubSuper, c.Items[1].Vis.Kind)
	assert.Equal(t, ast.VisPubIn, c.Items[2].Vis.Kind)
	assert.Len(t, c.Items[2].Vis.Path.Segments, 2)
	assert.Equal(t, ast.VisCrate, c.Items[3].Vis.Kind)
}

func TestParseKeepsDeclarationOrder(t *testing.T) {
	c := mustParse(t, "trait C = Send; trait A = C; trait B = A + C;")
	names := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		names = append(names, it.Ident.Name)
	}
	assert.Equal(t, []string{"C", "A", "B"}, names)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing semicolon", "trait A = Send", diag.SynUnexpectedEOF},
		{"missing name", "trait = Send;", diag.SynExpectIdentifier},
		{"missing equals", "trait A Send;", diag.SynExpectEquals},
		{"missing trait", "pub struct A;", diag.SynExpectTrait},
		{"unclosed generics", "trait A = Foo<T;", diag.SynUnclosedAngleBracket},
		{"unclosed attribute", "#[cfg(x] trait A = B;", diag.SynUnclosedDelimiter},
		{"inner attribute", "#![allow(x)] trait A = B;", diag.SynInnerAttribute},
		{"inner doc", "//! crate docs\ntrait A = B;", diag.SynInnerAttribute},
		{"misplaced doc", "trait A = /// nope\nSend;", diag.SynUnexpectedToken},
		{"bad visibility", "pub(foo) trait A = B;", diag.SynBadVisibility},
		{"bad bound", "trait A = Send + 3;", diag.SynExpectSemicolon},
		{"macro type", "trait A = From<m!()>;", diag.SynExpectType},
		{"lexical error", "trait A = \"open", diag.LexUnterminatedString},
		{"dyn without bounds", "trait A = From<dyn>;", diag.SynExpectBound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, tt.src)
			assert.Equal(t, tt.code, perr.Diagnostic.Code, perr.Diagnostic.Message)
			assert.Equal(t, diag.SevError, perr.Diagnostic.Severity)
		})
	}
}

func TestParseErrorSpan(t *testing.T) {
	src := "trait A = Send;\ntrait B Send;"
	perr := parseErr(t, src)
	sp := perr.Diagnostic.Primary
	_, sf, _ := parse(t, src)
	assert.Equal(t, "Send", sf.Text(sp))
	assert.Equal(t, "expected `=`, found `Send`", perr.Diagnostic.Message)
}

func TestParseFailFastBeatsReserved(t *testing.T) {
	// синтаксическая ошибка во втором элементе: про __T в первом не сообщаем
	perr := parseErr(t, "trait __T = Sized; trait B Send;")
	assert.Equal(t, diag.SynExpectEquals, perr.Diagnostic.Code)
}

func TestParseReservedName(t *testing.T) {
	_, sf, err := parse(t, "trait __T = Sized;")
	var rerr *reserved.Error
	require.True(t, errors.As(err, &rerr), "got %v", err)
	require.Len(t, rerr.Diagnostics, 1)
	assert.Equal(t, diag.SemaReservedIdent, rerr.Diagnostics[0].Code)
	assert.Equal(t, reserved.Message, rerr.Diagnostics[0].Message)
	assert.Equal(t, "__T", sf.Text(rerr.Diagnostics[0].Primary))
}

func TestParseReservedEveryOccurrence(t *testing.T) {
	src := "trait Convertible<__T> = From<__T> + Into<__T>;\ntrait Other = Iterator<Item = Vec<__T>>;"
	_, sf, err := parse(t, src)
	var rerr *reserved.Error
	require.True(t, errors.As(err, &rerr), "got %v", err)
	require.Len(t, rerr.Diagnostics, 4)

	prev := uint32(0)
	for _, sp := range rerr.Spans() {
		assert.Equal(t, "__T", sf.Text(sp))
		assert.GreaterOrEqual(t, sp.Start, prev)
		prev = sp.Start
	}
}

func TestParseReservedExactMatchOnly(t *testing.T) {
	mustParse(t, "trait A<__Tx, T__T, __t> = From<__Tx> + Into<r#__T>;")
}

func TestParseReportsToReporter(t *testing.T) {
	_, sf := testkit.VirtualFile("test.ta", "trait A<__T> = B<__T>;")
	bag := diag.NewBag(16)
	_, err := parser.ParseSource(sf, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.Error(t, err)
	assert.Equal(t, 2, bag.Len())
	assert.Equal(t, 2, bag.ErrorCount())

	_, sf = testkit.VirtualFile("bad.ta", "trait A")
	bag = diag.NewBag(16)
	_, err = parser.ParseSource(sf, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.Error(t, err)
	assert.Equal(t, 1, bag.Len())
}

func TestParseMissingSemicolonSuggestsFix(t *testing.T) {
	pe := parseErr(t, "trait A = Send trait B = Sync;")
	assert.Equal(t, diag.SynExpectSemicolon, pe.Diagnostic.Code)
	require.Len(t, pe.Diagnostic.Fixes, 1)
	require.Len(t, pe.Diagnostic.Fixes[0].Edits, 1)
	edit := pe.Diagnostic.Fixes[0].Edits[0]
	assert.Equal(t, ";", edit.NewText)
	assert.Equal(t, uint32(len("trait A = Send")), edit.Span.Start)
	assert.True(t, edit.Span.Empty())
}
