package fuzztests

import "testing"

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var aliasSeeds = []string{
	"trait SSS = Send + Sync + 'static;",
	"pub trait A<T> = Into<T> where T: Clone;",
	"#[doc = \"x\"]\n/// doc\npub(crate) trait B<'a, T: 'a = u8, const N: usize = 3> = Iterator<Item = &'a [T; N]> + ?Sized;",
	"trait C = for<'a> Fn(&'a str) -> Option<Vec<u8>>;",
	"trait D = dyn Send;",
	"trait E = ;",
	"trait F<__T> = Send;",
	"trait G = Send",
	"trait H = Vec<Vec<u8>>;",
	"trait I = (Send);",
	"#![inner] trait J = Send;",
	"trait K = \"unterminated",
	"trait L = Send; /* open",
	"trait r#M = r#Send;",
}

var rustSeeds = []string{
	"trait_aliases! { trait A = Send; }",
	"use x;\ntrait_aliases::trait_aliases!( pub trait B<T> = Into<T>; );\nfn main() {}",
	"mod m {\n    trait_aliases! [ trait C = Sync; ];\n}",
	"trait_aliases! { trait D = ",
	"macro_rules! m { () => { trait_aliases! { trait E = Send; } } }",
	"fn f() { let s = \"trait_aliases! {\"; }",
}

func addAliasSeeds(f *testing.F) {
	for _, s := range aliasSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func addRustSeeds(f *testing.F) {
	for _, s := range rustSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
