package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traitgen/internal/ast"
	"traitgen/internal/parser"
	"traitgen/internal/source"
	"traitgen/internal/testkit"
)

func parseOne(t *testing.T, src string) *ast.TraitAlias {
	t.Helper()
	_, sf := testkit.VirtualFile("walk.ta", src)
	coll, err := parser.ParseSource(sf, parser.Options{})
	require.NoError(t, err)
	require.Len(t, coll.Items, 1)
	return coll.Items[0]
}

func names(ids []*ast.Ident) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Name)
	}
	return out
}

func TestIdentsFollowSourceOrder(t *testing.T) {
	item := parseOne(t, "#[cfg(test)] pub trait A<'a, T: Clone = u8> = Into<T> + 'a where T: Send;")
	assert.Equal(t,
		[]string{"cfg", "test", "A", "T", "Clone", "u8", "T", "Send", "Into", "T"},
		names(ast.Idents(item)))
}

func TestInspectStopsDescending(t *testing.T) {
	item := parseOne(t, "trait A<T: Clone> = Into<T>;")

	var seen []string
	ast.Inspect(item, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Generics:
			return false
		case *ast.Ident:
			seen = append(seen, n.Name)
		}
		return true
	})
	assert.Equal(t, []string{"A", "Into", "T"}, seen)
}

func TestInspectBalancedNilCalls(t *testing.T) {
	item := parseOne(t, "trait A<'a> = Fn(&'a str) -> bool + ?Sized;")

	depth := 0
	ast.Inspect(item, func(n ast.Node) bool {
		if n == nil {
			depth--
			return false
		}
		depth++
		return true
	})
	assert.Zero(t, depth)
}

func TestGenericsCloneIsIndependent(t *testing.T) {
	item := parseOne(t, "trait A<T: Clone = u8> = Send where T: Sync;")
	orig := item.Generics
	cp := orig.Clone()
	require.NotSame(t, orig, cp)

	tp := cp.Params[0].(*ast.TypeParam)
	tp.Ident.Name = "U"
	tp.Default = nil
	tp.Bounds = append(tp.Bounds, &ast.LifetimeBound{Lifetime: &ast.Lifetime{Name: "static"}})
	cp.Where.Predicates = nil

	origParam := orig.Params[0].(*ast.TypeParam)
	assert.Equal(t, "T", origParam.Ident.Name)
	assert.NotNil(t, origParam.Default)
	assert.Len(t, origParam.Bounds, 1)
	assert.Len(t, orig.Where.Predicates, 1)
}

func TestCloneNil(t *testing.T) {
	var g *ast.Generics
	assert.Nil(t, g.Clone())
	var w *ast.WhereClause
	assert.Nil(t, w.Clone())
	assert.Nil(t, ast.CloneType(nil))
	assert.Nil(t, ast.ClonePath(nil))
}

func TestCloneBoundsKeepsSpans(t *testing.T) {
	item := parseOne(t, "trait A = for<'a> Fn(&'a u8) + Send;")
	bounds := ast.CloneBounds(item.Bounds)
	require.Len(t, bounds, len(item.Bounds))
	for i := range bounds {
		assert.Equal(t, item.Bounds[i].NodeSpan(), bounds[i].NodeSpan())
		assert.NotSame(t, item.Bounds[i], bounds[i])
	}
}

func TestSplitForImplNamesEveryParam(t *testing.T) {
	item := parseOne(t, "trait A<'a, T: Clone = u8, const N: usize = 3> = Send;")
	impl, ty, where := item.Generics.SplitForImpl()

	require.Len(t, impl.Params, 3)
	assert.Nil(t, where)

	args := ty.Args()
	require.NotNil(t, args)
	require.Len(t, args.Args, 3)
	lt, ok := args.Args[0].(*ast.LifetimeArg)
	require.True(t, ok)
	assert.Equal(t, "a", lt.Lifetime.Name)
	for i, want := range []string{"T", "N"} {
		arg, ok := args.Args[i+1].(*ast.TypeArg)
		require.True(t, ok)
		pt, ok := arg.Type.(*ast.PathType)
		require.True(t, ok)
		assert.True(t, pt.Path.IsIdent(want))
	}

	var empty *ast.Generics
	impl, ty, _ = empty.SplitForImpl()
	assert.True(t, impl.Empty())
	assert.Nil(t, ty.Args())
}

func TestDocAttributeRoundTrip(t *testing.T) {
	attr := ast.NewDocAttribute("Blanket \"impl\"", source.Span{})
	require.True(t, attr.IsDoc())
	text, ok := attr.DocValue()
	require.True(t, ok)
	assert.Equal(t, "Blanket \"impl\"", text)

	docs, others := ast.PartitionAttrs([]*ast.Attribute{
		attr,
		{Path: ast.PathFromIdent(ast.NewIdent("inline", source.Span{}))},
	})
	assert.Len(t, docs, 1)
	assert.Len(t, others, 1)
}
