package lexer

import (
	"traitgen/internal/token"

	"golang.org/x/text/unicode/norm"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Не-ASCII идентификаторы приводятся к NFC,
// чтобы сравнение имён (в том числе с зарезервированным `__T`) шло по
// канонической форме; для ASCII Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	if r >= utf8RuneSelf && !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}

	ascii := lx.bumpIdentRunes()

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}

	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanRawIdent сканирует r#name. Ключевые слова в сырой форме остаются Ident,
// Token.Text сохраняет префикс "r#".
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // r
	lx.cursor.Bump() // #
	ascii := lx.bumpIdentRunes()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// bumpIdentRunes съедает первую руну и все последующие продолжения
// идентификатора; возвращает true, если все они были ASCII.
func (lx *Lexer) bumpIdentRunes() bool {
	ascii := true
	if lx.cursor.Peek() >= utf8RuneSelf {
		ascii = false
	}
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) || lx.cursor.EOF() {
				return ascii
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return ascii
		}
		ascii = false
		lx.bumpRune()
	}
}
