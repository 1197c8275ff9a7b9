package lexer

import (
	"traitgen/internal/diag"
	"traitgen/internal/token"
)

// scanString сканирует "..." и b"..." (prefix: длина префикса перед кавычкой).
// Escape-последовательности не валидируются глубоко: `\` съедает следующий байт.
// Переводы строк внутри литерала разрешены.
func (lx *Lexer) scanString(prefix uint32, kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	for i := uint32(0); i <= prefix; i++ {
		lx.cursor.Bump() // префикс и открывающая '"'
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '"' {
			lx.scanNumberSuffix()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// maxRawHashes: предел числа '#' вокруг сырой строки.
const maxRawHashes = 255

// startsRawString проверяет, что с позиции off идут '#'* и '"'.
func (lx *Lexer) startsRawString(off uint32) bool {
	for lx.cursor.PeekAt(off) == '#' {
		off++
	}
	return lx.cursor.PeekAt(off) == '"'
}

// scanRawString сканирует r#"..."# и br#"..."#.
func (lx *Lexer) scanRawString(prefix uint32, kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	for i := uint32(0); i < prefix; i++ {
		lx.cursor.Bump()
	}
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // '"'
	if hashes > maxRawHashes {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadRawString, sp, "too many '#' symbols in raw string")
	}

	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanQuote различает 'c' (CharLit) и 'a / 'static (Lifetime).
func (lx *Lexer) scanQuote() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '

	if lx.cursor.Peek() == '\\' {
		return lx.finishChar(start, token.CharLit)
	}

	after := lx.cursor.Mark()
	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.bumpRune()
	if lx.cursor.Peek() == '\'' {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
	}

	if r == '_' || (r < utf8RuneSelf && isIdentStartByte(byte(r))) || (r >= utf8RuneSelf && isIdentStartRune(r)) {
		lx.cursor.Reset(after)
		lx.bumpIdentRunes()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Lifetime, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanByte сканирует b'x'.
func (lx *Lexer) scanByte() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // b
	lx.cursor.Bump() // '
	return lx.finishChar(start, token.ByteLit)
}

// finishChar дочитывает тело символьного литерала после открывающей кавычки.
func (lx *Lexer) finishChar(start Mark, kind token.Kind) token.Token {
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'u':
			// \u{XXXX}
			lx.cursor.Bump()
			if lx.cursor.Eat('{') {
				for !lx.cursor.EOF() && lx.cursor.Peek() != '}' && lx.cursor.Peek() != '\'' {
					lx.cursor.Bump()
				}
				lx.cursor.Eat('}')
			}
		case 'x':
			lx.cursor.Bump()
			for i := 0; i < 2 && isHex(lx.cursor.Peek()); i++ {
				lx.cursor.Bump()
			}
		case 'n', 'r', 't', '\\', '0', '\'', '"':
			lx.cursor.Bump()
		default:
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadEscape, sp, "unknown character escape")
			lx.bumpRune()
		}
	} else if lx.cursor.Peek() != '\'' {
		lx.bumpRune()
	}
	if !lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
