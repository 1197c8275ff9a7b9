package token

import (
	"traitgen/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string, char or bool literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StrLit, RawStrLit, ByteStrLit, CharLit, ByteLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation or a delimiter.
func (t Token) IsPunct() bool {
	return t.Kind >= Plus && t.Kind <= RBracket
}

// IsKeyword reports whether the token is one of the recognised keywords.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAs && t.Kind <= KwFalse
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// SpaceBefore reports whether any trivia separates the token from the previous one.
func (t Token) SpaceBefore() bool { return len(t.Leading) > 0 }

// Docs returns the doc-comment trivia attached in front of the token.
func (t Token) Docs() []Trivia {
	var out []Trivia
	for _, tr := range t.Leading {
		if tr.Kind.IsDoc() {
			out = append(out, tr)
		}
	}
	return out
}
