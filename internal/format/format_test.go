package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traitgen/internal/format"
	"traitgen/internal/generate"
	"traitgen/internal/lexer"
	"traitgen/internal/parser"
	"traitgen/internal/testkit"
)

func expand(t *testing.T, src string, opt format.Options) string {
	t.Helper()
	_, sf := testkit.VirtualFile("test.ta", src)
	c, err := parser.ParseSource(sf, parser.Options{})
	require.NoError(t, err)
	return string(format.Fragments(generate.TraitAliases(c), opt))
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func TestExpandGolden(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "simple",
			src:  "trait SSS = Send + Sync + 'static;",
			want: lines(
				"trait SSS: Send + Sync + 'static {}",
				"",
				"#[doc = \"Blanket implementation of [`SSS`] for all types satisfying its bounds.\"]",
				"impl<__T> SSS for __T where __T: Send + Sync + 'static + ?Sized {}",
			),
		},
		{
			name: "where only",
			src:  "trait DD = where Self: Debug + Display;",
			want: lines(
				"trait DD where Self: Debug + Display {}",
				"",
				"#[doc = \"Blanket implementation of [`DD`] for all types satisfying its bounds.\"]",
				"impl<__T> DD for __T where Self: Debug + Display, __T: ?Sized {}",
			),
		},
		{
			name: "generics",
			src:  "pub trait Conv<'a, T: Clone = u8, const N: usize = 3> = From<&'a [T; N]> where T: 'a;",
			want: lines(
				"pub trait Conv<'a, T: Clone = u8, const N: usize = 3>: From<&'a [T; N]> where T: 'a {}",
				"",
				"#[doc = \"Blanket implementation of [`Conv`] for all types satisfying its bounds.\"]",
				"impl<'a, T: Clone, const N: usize, __T> Conv<'a, T, N> for __T where T: 'a, __T: From<&'a [T; N]> + ?Sized {}",
			),
		},
		{
			name: "attributes",
			src:  "/// Docs.\n#[cfg(feature = \"x\")]\npub(crate) trait A = Iterator<Item: Send> + for<'a> Fn(&'a str) -> &'a str;",
			want: lines(
				"#[doc = \" Docs.\"]",
				"#[cfg(feature = \"x\")]",
				"pub(crate) trait A: Iterator<Item: Send> + for<'a> Fn(&'a str) -> &'a str {}",
				"",
				"#[doc = \"Blanket implementation of [`A`] for all types satisfying its bounds.\"]",
				"#[cfg(feature = \"x\")]",
				"impl<__T> A for __T where __T: Iterator<Item: Send> + for<'a> Fn(&'a str) -> &'a str + ?Sized {}",
			),
		},
		{
			name: "two items",
			src:  "trait A = Send; trait B = A + ?Sized;",
			want: lines(
				"trait A: Send {}",
				"",
				"#[doc = \"Blanket implementation of [`A`] for all types satisfying its bounds.\"]",
				"impl<__T> A for __T where __T: Send + ?Sized {}",
				"",
				"trait B: A + ?Sized {}",
				"",
				"#[doc = \"Blanket implementation of [`B`] for all types satisfying its bounds.\"]",
				"impl<__T> B for __T where __T: A + ?Sized + ?Sized {}",
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expand(t, tt.src, format.Options{}))
		})
	}
}

func TestExpandIndented(t *testing.T) {
	got := expand(t, "trait A = Send;", format.Options{Indent: 1})
	want := lines(
		"    trait A: Send {}",
		"",
		"    #[doc = \"Blanket implementation of [`A`] for all types satisfying its bounds.\"]",
		"    impl<__T> A for __T where __T: Send + ?Sized {}",
	)
	assert.Equal(t, want, got)
}

func TestNodeTypes(t *testing.T) {
	src := "trait T = Foo<Vec<Vec<u8>>, Box<dyn Fn() + Send>, (), (u8,), !, _, *const u8, &'a mut [u8; 4], unsafe extern \"C\" fn(a: u8, ...) -> u8, ::std::io::Read, <X as Y>::Z, Item = impl Sized>;"
	_, sf := testkit.VirtualFile("test.ta", src)
	c, err := parser.ParseSource(sf, parser.Options{})
	require.NoError(t, err)

	assert.Equal(t,
		"Foo<Vec<Vec<u8>>, Box<dyn Fn() + Send>, (), (u8,), !, _, *const u8, &'a mut [u8; 4], unsafe extern \"C\" fn(a: u8, ...) -> u8, ::std::io::Read, <X as Y>::Z, Item = impl Sized>",
		format.Node(c.Items[0].Bounds[0]))
}

func TestAliasesRoundTrip(t *testing.T) {
	srcs := []string{
		"trait SSS = Send + Sync + 'static;",
		"/// d\n#[cfg(x)]\npub(in crate::a) trait A<'a: 'b, T: ?Sized = [u8], const N: usize = { 1 + 2 }> = Iterator<Item = &'a T> where for<'c> &'c T: Copy, 'a: 'b;",
		"trait DD = where Self: Debug;",
	}
	for _, src := range srcs {
		_, sf := testkit.VirtualFile("rt.ta", src)
		ok, msg := format.CheckRoundTrip(sf)
		assert.True(t, ok, msg)
	}
}

func TestAliasesPrint(t *testing.T) {
	_, sf := testkit.VirtualFile("a.ta", "pub  trait   A<T>=Into<T>+Send   ;")
	c, err := parser.ParseSource(sf, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "pub trait A<T> = Into<T> + Send;\n", string(format.Aliases(c.Items, format.Options{})))
}

func TestWriteTokenListing(t *testing.T) {
	fs, sf := testkit.VirtualFile("t.ta", "/// hi\ntrait A = B;")
	toks := lexer.Tokenize(sf, lexer.Options{})
	var buf bytes.Buffer
	require.NoError(t, format.WriteTokenListing(&buf, fs, toks))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "1:1\tDoc\t\" hi\"\n2:1\t"), out)
	assert.Contains(t, out, "\"trait\"")
	assert.Contains(t, out, "\"B\"")
}

func TestWriterCopyRange(t *testing.T) {
	_, sf := testkit.VirtualFile("w.rs", "fn main() {}\n")
	w := format.NewWriter(sf, format.Options{})
	w.CopyRange(0, 2)
	w.WriteString(" x")
	w.CopyRange(10, 100)
	assert.Equal(t, "fn x{}\n", string(w.Bytes()))
}
