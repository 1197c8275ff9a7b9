package reserved_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traitgen/internal/ast"
	"traitgen/internal/parser"
	"traitgen/internal/reserved"
	"traitgen/internal/source"
	"traitgen/internal/testkit"
	"traitgen/internal/token"
)

var noSpan source.Span

// parseRenamed разбирает src и затем переименовывает from в to во всём дереве,
// включая токены атрибутов и const-выражений: так в AST попадает имя, которое
// парсер сам бы отклонил.
func parseRenamed(t *testing.T, src, from, to string) []*ast.TraitAlias {
	t.Helper()
	_, sf := testkit.VirtualFile("test.ta", src)
	c, err := parser.ParseSource(sf, parser.Options{})
	require.NoError(t, err)
	for _, item := range c.Items {
		ast.Inspect(item, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.Ident:
				if n.Name == from {
					n.Name = to
				}
			case *ast.TokenTree:
				for i := range n.Tokens {
					if n.Tokens[i].Kind == token.Ident && n.Tokens[i].Text == from {
						n.Tokens[i].Text = to
					}
				}
			}
			return true
		})
	}
	return c.Items
}

func TestCheckerClean(t *testing.T) {
	c := reserved.NewChecker()
	for _, item := range parseRenamed(t, "trait A<T> = From<T> + Into<Vec<T>>;", "T", "U") {
		c.Visit(item)
	}
	assert.NoError(t, c.Finish())
	assert.Empty(t, c.Diagnostics())
}

func TestCheckerNestedPositions(t *testing.T) {
	// атрибут, аргумент внутри for<>-границы, const-блок, граница ассоциированного типа
	items := parseRenamed(t,
		"#[cfg(ZZ)] trait A = for<'a> Foo<'a, Vec<ZZ>, { ZZ }> + Bar<Item: Baz<ZZ>>;",
		"ZZ", reserved.Name)
	c := reserved.NewChecker()
	c.Visit(items[0])
	err := c.Finish()
	require.Error(t, err)

	var rerr *reserved.Error
	require.True(t, errors.As(err, &rerr))
	assert.Len(t, rerr.Diagnostics, 4)
	assert.Contains(t, err.Error(), "(4 occurrences)")
	assert.True(t, strings.HasPrefix(err.Error(), "SEM3001: "+reserved.Message))
}

func TestCheckerLifetimes(t *testing.T) {
	// параметр-лайфтайм, связка for<>, ссылка внутри Fn-сахара
	for _, src := range []string{
		"trait A<'__T> = Sized;",
		"trait A = for<'__T> Fn(&'__T u8);",
		"trait A<'a> = Send where '__T: 'a;",
	} {
		_, sf := testkit.VirtualFile("lt.ta", src)
		_, err := parser.ParseSource(sf, parser.Options{})
		var rerr *reserved.Error
		require.True(t, errors.As(err, &rerr), src)
		for _, sp := range rerr.Spans() {
			assert.Equal(t, reserved.Name, sf.Text(sp), src)
		}
	}

	_, sf := testkit.VirtualFile("lt.ta", "trait A = for<'__T> Fn(&'__T u8);")
	_, err := parser.ParseSource(sf, parser.Options{})
	var rerr *reserved.Error
	require.True(t, errors.As(err, &rerr))
	assert.Len(t, rerr.Diagnostics, 2)

	for _, ok := range []string{"trait A<'__Tx> = Sized;", "trait A<'_T> = Sized;", "trait A<'a> = Sized;"} {
		_, sf := testkit.VirtualFile("lt.ta", ok)
		_, err := parser.ParseSource(sf, parser.Options{})
		assert.NoError(t, err, ok)
	}
}

func TestCheckerRejectsAttributeArguments(t *testing.T) {
	// атрибут копируется и в trait, и в impl, поэтому его аргументы тоже проверяются
	_, sf := testkit.VirtualFile("attr.ta", "#[cfg(__T)] trait A = Send;")
	_, err := parser.ParseSource(sf, parser.Options{})
	var rerr *reserved.Error
	require.True(t, errors.As(err, &rerr))
	require.Len(t, rerr.Diagnostics, 1)
	assert.Equal(t, reserved.Name, sf.Text(rerr.Diagnostics[0].Primary))
}

func TestCheckerAccumulatesAcrossItems(t *testing.T) {
	c := reserved.NewChecker()
	c.Visit(&ast.TraitAlias{Ident: reserved.Ident(), Generics: &ast.Generics{}})
	c.Visit(&ast.TraitAlias{Ident: ast.NewIdent("Fine", noSpan), Generics: &ast.Generics{}})
	c.Visit(&ast.TraitAlias{
		Ident:    ast.NewIdent("Other", noSpan),
		Generics: &ast.Generics{Params: []ast.GenericParam{reserved.TypeParam()}},
	})
	c.Visit(nil)

	err := c.Finish()
	var rerr *reserved.Error
	require.True(t, errors.As(err, &rerr))
	assert.Len(t, rerr.Diagnostics, 2)
	assert.Equal(t, reserved.Message, rerr.Diagnostics[0].Message)
	assert.Equal(t, "SEM3001: "+reserved.Message+" (2 occurrences)", rerr.Error())
}

func TestPredicateTypeAppendsMaybeSized(t *testing.T) {
	send := &ast.TraitBound{Path: reserved.PathFor(ast.NewIdent("Send", noSpan))}
	already := reserved.MaybeSizedBound()
	bounds := []ast.TypeParamBound{send, already}

	pred := reserved.PredicateType(bounds)
	require.Len(t, pred.Bounds, 3)
	last, ok := pred.Bounds[2].(*ast.TraitBound)
	require.True(t, ok)
	assert.Equal(t, ast.BoundMaybe, last.Modifier)
	assert.True(t, last.Path.IsIdent("Sized"))

	// исходный список не тронут и не разделяет узлы с результатом
	assert.Len(t, bounds, 2)
	assert.NotSame(t, send, pred.Bounds[0])

	bt, ok := pred.BoundedTy.(*ast.PathType)
	require.True(t, ok)
	assert.True(t, bt.Path.IsIdent(reserved.Name))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, "__T", reserved.Ident().Name)
	assert.Equal(t, "Sized", reserved.SizedIdent().Name)
	assert.True(t, reserved.Path().IsIdent("__T"))
	assert.True(t, reserved.SizedPath().IsIdent("Sized"))

	tp := reserved.TypeParam()
	assert.Empty(t, tp.Attrs)
	assert.Empty(t, tp.Bounds)
	assert.Nil(t, tp.Default)

	pred := reserved.PredicateType(nil)
	require.Len(t, pred.Bounds, 1)
}

func TestCheckerCountsEveryOccurrence(t *testing.T) {
	properties := gopter.NewProperties(nil)

	slot := gen.OneConstOf("__T", "X", "__Tx", "T__T", "__t", "_T")
	properties.Property("one diagnostic per exact occurrence", prop.ForAll(
		func(name, param, arg, nested, bounded, lt, binder string) bool {
			src := fmt.Sprintf("trait %s<'%s, %s> = From<%s> + Iterator<Item = Vec<%s>> + for<'%s> Fn(&'%s u8) where %s: Clone;",
				name, lt, param, arg, nested, binder, binder, bounded)
			want := 0
			for _, s := range []string{name, param, arg, nested, bounded, lt, binder, binder} {
				if s == reserved.Name {
					want++
				}
			}

			_, sf := testkit.VirtualFile("prop.ta", src)
			_, err := parser.ParseSource(sf, parser.Options{})
			if want == 0 {
				return err == nil
			}
			var rerr *reserved.Error
			if !errors.As(err, &rerr) || len(rerr.Diagnostics) != want {
				return false
			}
			for _, sp := range rerr.Spans() {
				if sf.Text(sp) != reserved.Name {
					return false
				}
			}
			return true
		},
		slot, slot, slot, slot, slot, slot, slot,
	))

	properties.TestingRun(t)
}
