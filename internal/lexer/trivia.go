package lexer

import (
	"traitgen/internal/diag"
	"traitgen/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\r', '\f', '\v' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment; ///... -> TriviaDocLine; //!... -> TriviaInnerDocLine
//   - /* ... */ (с вложенностью) -> TriviaBlockComment; /** */ и /*! */ -> doc-варианты
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = nil
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpaceByte(b) {
			for isSpaceByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b == '/' && lx.scanCommentIntoHold() {
			continue
		}

		break
	}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		lx.cursor.Bump()
		kind := token.TriviaLineComment
		// "///": doc, но "////" снова обычный комментарий
		switch b := lx.cursor.Peek(); {
		case b == '/' && lx.cursor.PeekAt(1) != '/':
			kind = token.TriviaDocLine
		case b == '!':
			kind = token.TriviaInnerDocLine
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
		return true

	case '*':
		lx.cursor.Bump()
		kind := token.TriviaBlockComment
		// "/**": doc, но "/**/" и "/***" обычные
		switch b := lx.cursor.Peek(); {
		case b == '*' && lx.cursor.PeekAt(1) != '*' && lx.cursor.PeekAt(1) != '/':
			kind = token.TriviaDocBlock
		case b == '!':
			kind = token.TriviaInnerDocBlock
		}
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
		return true

	default:
		// это не комментарий: вернёмся, пусть сканируется как оператор '/'
		lx.cursor.Reset(start)
		return false
	}
}
