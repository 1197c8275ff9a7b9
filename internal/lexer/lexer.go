package lexer

import (
	"fmt"

	"traitgen/internal/diag"
	"traitgen/internal/source"
	"traitgen/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewRange лексит только байты [start, end) файла. Спаны остаются в
// координатах всего файла, поэтому диагностики указывают в исходник.
func NewRange(file *source.File, start, end uint32, opts Options) *Lexer {
	c := NewCursor(file)
	if end > c.Limit {
		end = c.Limit
	}
	if start > end {
		start = end
	}
	if end == 0 {
		// Limit == 0 означает "до конца файла", так что пустой диапазон в
		// начале файла моделируем курсором, уже стоящим в конце.
		c.Off = c.Limit
	} else {
		c.Off = start
		c.Limit = end
	}
	return &Lexer{
		file:   file,
		cursor: c,
		opts:   opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// Leading из hold к EOF не приклеиваем
	if lx.cursor.EOF() {
		lx.hold = nil
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == 'r' && lx.startsRawString(1):
		tok = lx.scanRawString(1, token.RawStrLit)

	case ch == 'r' && lx.cursor.PeekAt(1) == '#' && isIdentStartByte(lx.cursor.PeekAt(2)):
		tok = lx.scanRawIdent()

	case ch == 'b' && lx.cursor.PeekAt(1) == '"':
		tok = lx.scanString(1, token.ByteStrLit)

	case ch == 'b' && lx.cursor.PeekAt(1) == '\'':
		tok = lx.scanByte()

	case ch == 'b' && lx.cursor.PeekAt(1) == 'r' && lx.startsRawString(2):
		tok = lx.scanRawString(2, token.ByteStrLit)

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString(0, token.StrLit)

	case ch == '\'':
		tok = lx.scanQuote()

	default:
		// иначе → scanOperatorOrPunct() (включая #, скобки, запятые и т.д.)
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span,
			fmt.Sprintf("token is longer than %d bytes", maxTokenLength))
		lx.cursor.SkipToEnd()
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// Tokenize lexes the whole input and returns every significant token,
// terminated by exactly one EOF token.
func Tokenize(file *source.File, opts Options) []token.Token {
	return drain(New(file, opts))
}

// TokenizeRange is Tokenize restricted to the byte range [start, end).
func TokenizeRange(file *source.File, start, end uint32, opts Options) []token.Token {
	return drain(NewRange(file, start, end, opts))
}

func drain(lx *Lexer) []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
