package lexer

import (
	"traitgen/internal/diag"
	"traitgen/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10 и суффиксы (u8, f32, usize...).
// Неверные формы: репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Bump()
			lx.cursor.Bump()
			n := 0
			for b := lx.cursor.Peek(); digit(b) || b == '_'; b = lx.cursor.Peek() {
				if b != '_' {
					n++
				}
				lx.cursor.Bump()
			}
			if n == 0 {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "missing digits after integer base prefix")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			lx.scanNumberSuffix()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
	}

	lx.bumpDecDigits()

	// дробная часть: "1.5", "1.": но не "1..2", "1.foo" и не "1.0.1"-кортежи
	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		switch {
		case isDec(next):
			lx.cursor.Bump()
			kind = token.FloatLit
			lx.bumpDecDigits()
		case next != '.' && !isIdentStartByte(next) && next < utf8RuneSelf:
			lx.cursor.Bump()
			kind = token.FloatLit
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) && lx.cursor.Peek() != '_' {
			// "1e" без цифр: это суффикс-идентификатор, а не экспонента
			lx.cursor.Reset(mark)
		} else {
			kind = token.FloatLit
			lx.bumpDecDigits()
			if !hasDigit(lx.text(lx.cursor.SpanFrom(mark))) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digit in exponent")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
		}
	}

	if lx.scanNumberSuffix() && kind == token.IntLit {
		sp := lx.cursor.SpanFrom(start)
		if suffix := trailingSuffix(lx.text(sp)); suffix == "f32" || suffix == "f64" {
			kind = token.FloatLit
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) bumpDecDigits() {
	for b := lx.cursor.Peek(); isDec(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

// scanNumberSuffix съедает суффикс типа вида [A-Za-z_][A-Za-z0-9_]*.
func (lx *Lexer) scanNumberSuffix() bool {
	if !isIdentStartByte(lx.cursor.Peek()) {
		return false
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return true
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDec(s[i]) {
			return true
		}
	}
	return false
}

func trailingSuffix(s string) string {
	i := len(s)
	for i > 0 && (isIdentStartByte(s[i-1]) || isDec(s[i-1])) {
		i--
	}
	for i < len(s) && (isDec(s[i]) || s[i] == '_') {
		i++
	}
	return s[i:]
}
