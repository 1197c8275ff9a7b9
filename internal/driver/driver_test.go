package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traitgen/internal/diag"
	"traitgen/internal/observ"
	"traitgen/internal/source"
	"traitgen/internal/token"
)

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func virtual(name, src string) (*source.FileSet, source.FileID) {
	fs := source.NewFileSet()
	return fs, fs.AddVirtual(name, []byte(src))
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestFindInvocations(t *testing.T) {
	src := lines(
		"use trait_aliases::trait_aliases;",
		"macro_rules! trait_aliases { ($($t:tt)*) => {} }",
		"trait_aliases! { trait A = Send; }",
		"::trait_aliases::trait_aliases!(trait B = Sync;);",
		"crate::trait_aliases![trait C = Copy;]",
		"fn f() { let s = \"trait_aliases! { nope }\"; }",
	)
	fs, id := virtual("lib.rs", src)
	file := fs.Get(id)

	invs := FindInvocations(file)
	require.Len(t, invs, 3)

	assert.Equal(t, "trait_aliases! { trait A = Send; }", file.Text(invs[0].Span))
	assert.Equal(t, " trait A = Send; ", file.Text(invs[0].Body))
	assert.Equal(t, token.LBrace, invs[0].Open)

	assert.Equal(t, "::trait_aliases::trait_aliases!(trait B = Sync;);", file.Text(invs[1].Span))
	assert.Equal(t, token.LParen, invs[1].Open)

	// без `;` после `[]` span заканчивается на скобке
	assert.Equal(t, "crate::trait_aliases![trait C = Copy;]", file.Text(invs[2].Span))
	for _, inv := range invs {
		assert.True(t, inv.Closed)
	}
}

func TestFindInvocationsUnclosed(t *testing.T) {
	fs, id := virtual("lib.rs", "trait_aliases! { trait A = Send;\n")
	invs := FindInvocations(fs.Get(id))
	require.Len(t, invs, 1)
	assert.False(t, invs[0].Closed)

	res, err := ExpandSource(context.Background(), fs, id, Options{})
	require.NoError(t, err)
	assert.Equal(t, []diag.Code{diag.SynUnclosedDelimiter}, codes(res.Bag))
	assert.Nil(t, res.Output)
}

func TestExpandAliasFile(t *testing.T) {
	fs, id := virtual("aliases.ta", "trait SSS = Send + Sync + 'static;\n")
	res, err := ExpandSource(context.Background(), fs, id, Options{})
	require.NoError(t, err)
	require.False(t, res.Failed())

	assert.Equal(t, InputAliases, res.Kind)
	assert.Equal(t, 1, res.Items)
	assert.Equal(t, lines(
		"trait SSS: Send + Sync + 'static {}",
		"",
		"#[doc = \"Blanket implementation of [`SSS`] for all types satisfying its bounds.\"]",
		"impl<__T> SSS for __T where __T: Send + Sync + 'static + ?Sized {}",
	), string(res.Output))
}

func TestExpandEmptyAliasFile(t *testing.T) {
	fs, id := virtual("empty.ta", "// nothing here\n")
	res, err := ExpandSource(context.Background(), fs, id, Options{})
	require.NoError(t, err)
	assert.NotNil(t, res.Output)
	assert.Empty(t, res.Output)
	assert.Zero(t, res.Items)
}

func TestExpandRustInPlace(t *testing.T) {
	src := lines(
		"use std::fmt::Debug;",
		"",
		"mod inner {",
		"    trait_aliases::trait_aliases! {",
		"        trait A = Send;",
		"    }",
		"}",
		"",
		"trait_aliases!(pub trait B<T> = Into<T>;);",
		"fn main() {}",
	)
	fs, id := virtual("lib.rs", src)
	res, err := ExpandSource(context.Background(), fs, id, Options{})
	require.NoError(t, err)
	require.False(t, res.Failed(), "%v", res.Bag.Items())

	assert.Equal(t, 2, res.Invocations)
	assert.Equal(t, 2, res.Items)
	assert.Equal(t, lines(
		"use std::fmt::Debug;",
		"",
		"mod inner {",
		"    trait A: Send {}",
		"",
		"    #[doc = \"Blanket implementation of [`A`] for all types satisfying its bounds.\"]",
		"    impl<__T> A for __T where __T: Send + ?Sized {}",
		"}",
		"",
		"pub trait B<T>: Into<T> {}",
		"",
		"#[doc = \"Blanket implementation of [`B`] for all types satisfying its bounds.\"]",
		"impl<T, __T> B<T> for __T where __T: Into<T> + ?Sized {}",
		"fn main() {}",
	), string(res.Output))
}

func TestExpandRustWithoutInvocations(t *testing.T) {
	src := "fn main() { println!(\"hi\"); }\n"
	fs, id := virtual("main.rs", src)
	res, err := ExpandSource(context.Background(), fs, id, Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Invocations)
	assert.Equal(t, src, string(res.Output))
}

func TestExpandRustReportsEveryBrokenInvocation(t *testing.T) {
	src := lines(
		"trait_aliases! { trait A = Send }",
		"trait_aliases! { trait Ok = Sync; }",
		"trait_aliases! { trait __T = Send; trait B<__T> = Clone; }",
	)
	fs, id := virtual("lib.rs", src)
	res, err := ExpandSource(context.Background(), fs, id, Options{})
	require.NoError(t, err)

	require.True(t, res.Failed())
	assert.Nil(t, res.Output)
	assert.Equal(t, []diag.Code{
		diag.SynUnexpectedEOF,
		diag.SemaReservedIdent,
		diag.SemaReservedIdent,
	}, codes(res.Bag))
	// удачное раскрытие второго вызова всё равно посчитано
	assert.Equal(t, 1, res.Items)
}

func TestExpandRustRejectsReservedLifetime(t *testing.T) {
	fs, id := virtual("lib.rs", "trait_aliases! { trait A<'__T> = Send; }\n")
	res, err := ExpandSource(context.Background(), fs, id, Options{})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Nil(t, res.Output)
	assert.Equal(t, []diag.Code{diag.SemaReservedIdent}, codes(res.Bag))
}

func TestExpandLexicalErrorIsMalformed(t *testing.T) {
	fs, id := virtual("bad.ta", "#[doc = \"unterminated]\ntrait A = Send;\n")
	res, err := ExpandSource(context.Background(), fs, id, Options{})
	require.NoError(t, err)
	assert.Equal(t, []diag.Code{diag.LexUnterminatedString}, codes(res.Bag))
}

func TestExpandUnsupportedAndCancelled(t *testing.T) {
	fs, id := virtual("notes.txt", "trait A = Send;")
	_, err := ExpandSource(context.Background(), fs, id, Options{})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs, id = virtual("a.ta", "trait A = Send;")
	_, err = ExpandSource(ctx, fs, id, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExpandUsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCache(filepath.Join(dir, "cache"), "traitgen")
	require.NoError(t, err)
	path := writeFile(t, dir, "a.ta", "trait A = Send;\n")

	_, first, err := ExpandFile(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	require.False(t, first.Cached)

	_, second, err := ExpandFile(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, first.Items, second.Items)

	// другое содержимое - другой ключ
	writeFile(t, dir, "a.ta", "trait A = Sync;\n")
	_, third, err := ExpandFile(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, third.Cached)

	require.NoError(t, cache.DropAll())
	_, fourth, err := ExpandFile(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
}

func TestExpandFailuresAreNotCached(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCache(filepath.Join(dir, "cache"), "traitgen")
	require.NoError(t, err)
	path := writeFile(t, dir, "a.ta", "trait __T = Send;\n")

	for range 2 {
		_, res, err := ExpandFile(context.Background(), path, Options{Cache: cache})
		require.NoError(t, err)
		assert.True(t, res.Failed())
		assert.False(t, res.Cached)
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.ta", "trait B = Send;\n")
	writeFile(t, dir, "sub/a.rs", "trait_aliases! { trait A = Sync; }\n")
	writeFile(t, dir, "sub/a.g.rs", "trait_aliases! { trait Old = Sync; }\n")
	writeFile(t, dir, ".hidden/h.ta", "trait H = Send;\n")
	writeFile(t, dir, "target/t.ta", "trait T = Send;\n")
	writeFile(t, dir, "broken.ta", "trait X = ;;\n")
	writeFile(t, dir, "README.md", "trait_aliases! {}\n")

	var (
		mu     sync.Mutex
		events []Event
	)
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})
	timer := observ.NewTimer()

	fs, results, err := ExpandDir(context.Background(), dir, Options{
		Jobs:       2,
		SkipSuffix: ".g.rs",
		Progress:   sink,
		Timer:      timer,
	})
	require.NoError(t, err)
	require.NotNil(t, fs)
	require.Len(t, results, 3)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = filepath.Base(r.Path)
	}
	assert.Equal(t, []string{"b.ta", "broken.ta", "a.rs"}, names)
	assert.False(t, results[0].Failed())
	assert.True(t, results[1].Failed())
	assert.False(t, results[2].Failed())

	final := map[string]Status{}
	for _, ev := range events {
		if ev.File != "" && (ev.Status == StatusDone || ev.Status == StatusError) {
			final[filepath.Base(ev.File)] = ev.Status
		}
	}
	assert.Equal(t, map[string]Status{"b.ta": StatusDone, "broken.ta": StatusError, "a.rs": StatusDone}, final)

	phases := map[string]bool{}
	for _, p := range timer.Report().Phases {
		phases[p.Name] = true
	}
	assert.True(t, phases["load"])
	assert.True(t, phases["parse"])
	assert.True(t, phases["generate"])
}

func TestExpandPathsBaseDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	path := writeFile(t, dir, "src/a.ta", "trait A = Send;\n")

	fs, results, err := ExpandPaths(context.Background(), []string{sub}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sub, fs.BaseDir())
	assert.Equal(t, "a.ta", fs.Get(results[0].FileID).FormatPath("relative", fs.BaseDir()))

	fs, results, err = ExpandPaths(context.Background(), []string{sub}, Options{BaseDir: dir})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, dir, fs.BaseDir())
	assert.Equal(t, "src/a.ta", fs.Get(results[0].FileID).FormatPath("relative", fs.BaseDir()))

	fs, _, err = ExpandFile(context.Background(), path, Options{BaseDir: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, fs.BaseDir())
}

func TestListInputsExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.ta", "")
	other := writeFile(t, dir, "x.txt", "")

	files, err := ListInputs([]string{a, dir, other}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{a, other}, files)

	_, err = ListInputs([]string{filepath.Join(dir, "missing")}, "")
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	res := &ExpandResult{Kind: InputAliases, Output: []byte("trait A: Send {}\n")}
	out := filepath.Join(dir, "gen", "a.g.rs")

	changed, err := WriteOutput(res, out, "// generated")
	require.NoError(t, err)
	assert.True(t, changed)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "// generated\n\ntrait A: Send {}\n", string(data))

	changed, err = WriteOutput(res, out, "// generated")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = WriteOutput(&ExpandResult{}, out, "")
	assert.Error(t, err)
}

func TestParseRustFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.rs", lines(
		"trait_aliases! { trait A = Send; trait B = Sync; }",
		"trait_aliases! { trait C = Send + 3; }",
		"trait_aliases! { trait D = Copy; }",
	))
	res, err := Parse(path, 0)
	require.NoError(t, err)
	assert.Equal(t, InputRust, res.Kind)
	assert.Len(t, res.Invocations, 3)
	assert.Len(t, res.Collections, 2)
	assert.Equal(t, 3, res.Items())
	assert.Equal(t, 1, res.Bag.ErrorCount())

	_, err = Parse(filepath.Join(dir, "x.txt"), 0)
	assert.Error(t, err)
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ta", "trait A = Send;")
	res, err := Tokenize(path, 0)
	require.NoError(t, err)
	require.NotEmpty(t, res.Tokens)
	assert.Equal(t, token.KwTrait, res.Tokens[0].Kind)
	assert.Equal(t, token.EOF, res.Tokens[len(res.Tokens)-1].Kind)
	assert.False(t, res.Bag.HasErrors())
}
