package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is an identifier, including raw identifiers (r#name).
	Ident
	// Lifetime is a lifetime or label such as 'a or 'static.
	Lifetime

	KwAs     // as
	KwConst  // const
	KwCrate  // crate
	KwDyn    // dyn
	KwExtern // extern
	KwFn     // fn
	KwFor    // for
	KwImpl   // impl
	KwIn     // in
	KwMut    // mut
	KwPub    // pub
	KwSelf   // self
	KwSelfTy // Self
	KwSuper  // super
	KwTrait  // trait
	KwUnsafe // unsafe
	KwWhere  // where
	KwTrue   // true
	KwFalse  // false

	IntLit     // 42, 0xff_u8
	FloatLit   // 1.5, 2e10
	StrLit     // "text"
	RawStrLit  // r"text", r#"text"#
	ByteStrLit // b"text", br"text"
	CharLit    // 'c'
	ByteLit    // b'c'

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Caret      // ^
	Bang       // !
	Amp        // &
	Pipe       // |
	Eq         // =
	Lt         // <
	Gt         // >
	At         // @
	Dot        // .
	DotDot     // ..
	DotDotDot  // ...
	DotDotEq   // ..=
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Arrow      // ->
	FatArrow   // =>
	Pound      // #
	Dollar     // $
	Question   // ?
	Tilde      // ~
	Underscore // _
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	Lifetime:   "Lifetime",
	KwAs:       "as",
	KwConst:    "const",
	KwCrate:    "crate",
	KwDyn:      "dyn",
	KwExtern:   "extern",
	KwFn:       "fn",
	KwFor:      "for",
	KwImpl:     "impl",
	KwIn:       "in",
	KwMut:      "mut",
	KwPub:      "pub",
	KwSelf:     "self",
	KwSelfTy:   "Self",
	KwSuper:    "super",
	KwTrait:    "trait",
	KwUnsafe:   "unsafe",
	KwWhere:    "where",
	KwTrue:     "true",
	KwFalse:    "false",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StrLit:     "StrLit",
	RawStrLit:  "RawStrLit",
	ByteStrLit: "ByteStrLit",
	CharLit:    "CharLit",
	ByteLit:    "ByteLit",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Caret:      "^",
	Bang:       "!",
	Amp:        "&",
	Pipe:       "|",
	Eq:         "=",
	Lt:         "<",
	Gt:         ">",
	At:         "@",
	Dot:        ".",
	DotDot:     "..",
	DotDotDot:  "...",
	DotDotEq:   "..=",
	Comma:      ",",
	Semicolon:  ";",
	Colon:      ":",
	ColonColon: "::",
	Arrow:      "->",
	FatArrow:   "=>",
	Pound:      "#",
	Dollar:     "$",
	Question:   "?",
	Tilde:      "~",
	Underscore: "_",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Closing returns the delimiter that closes k, if k opens a group.
func (k Kind) Closing() (Kind, bool) {
	switch k {
	case LParen:
		return RParen, true
	case LBrace:
		return RBrace, true
	case LBracket:
		return RBracket, true
	default:
		return Invalid, false
	}
}

// IsClosing reports whether k closes a delimited group.
func (k Kind) IsClosing() bool {
	return k == RParen || k == RBrace || k == RBracket
}
