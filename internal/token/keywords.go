package token

// Only the keywords the item grammar cares about get their own kinds;
// everything else (let, if, match, ...) stays an Ident and can only show up
// inside opaque token trees.
var keywords = map[string]Kind{
	"as":     KwAs,
	"const":  KwConst,
	"crate":  KwCrate,
	"dyn":    KwDyn,
	"extern": KwExtern,
	"fn":     KwFn,
	"for":    KwFor,
	"impl":   KwImpl,
	"in":     KwIn,
	"mut":    KwMut,
	"pub":    KwPub,
	"self":   KwSelf,
	"Self":   KwSelfTy,
	"super":  KwSuper,
	"trait":  KwTrait,
	"unsafe": KwUnsafe,
	"where":  KwWhere,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: "Self" и "self" различаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsPathSegmentKeyword reports whether k may start or continue a path
// (self, Self, super, crate).
func IsPathSegmentKeyword(k Kind) bool {
	switch k {
	case KwSelf, KwSelfTy, KwSuper, KwCrate:
		return true
	default:
		return false
	}
}
