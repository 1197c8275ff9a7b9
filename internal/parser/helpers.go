package parser

import (
	"fmt"
	"slices"

	"traitgen/internal/diag"
	"traitgen/internal/source"
	"traitgen/internal/token"
)

// peek возвращает текущий токен. После первой ошибки поток "заканчивается":
// всегда EOF, так что любые циклы разбора сразу завершаются.
func (p *Parser) peek() token.Token {
	if p.failed != nil {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.failed != nil || p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance: съедает следующий токен и обновляет lastSpan.
// Doc-комментарий в неположенном месте фиксируется как ошибка разбора.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	if p.pos != p.docsAt {
		if docs := tok.Docs(); len(docs) > 0 {
			p.failAt(diag.SynUnexpectedToken, docs[0].Span, "doc comment is not allowed here")
			return tok
		}
	}
	p.pos++
	p.lastSpan = tok.Span
	return tok
}

// eat съедает токен k, если он следующий.
func (p *Parser) eat(k token.Kind) bool {
	if !p.at(k) {
		return false
	}
	p.advance()
	return p.failed == nil
}

// expect: ожидаем конкретный токен. Если нет: ошибка и false.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	if p.at(k) {
		tok := p.advance()
		return tok, p.failed == nil
	}
	return token.Token{}, p.unexpected(code, what)
}

// diagnosticSpan: лучший span для диагностики: на EOF указываем сразу за
// последним съеденным токеном.
func (p *Parser) diagnosticSpan() source.Span {
	tok := p.toks[p.pos]
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return tok.Span
}

// unexpected формирует "expected X, found Y" и фиксирует ошибку.
func (p *Parser) unexpected(code diag.Code, what string, fixes ...diag.Fix) bool {
	if p.failed != nil {
		return false
	}
	tok := p.peek()
	if tok.Kind == token.EOF {
		code = diag.SynUnexpectedEOF
	}
	return p.failAt(code, p.diagnosticSpan(), fmt.Sprintf("expected %s, found %s", what, describe(tok)), fixes...)
}

// failAt запоминает первую ошибку; всегда возвращает false для удобного `return p.failAt(...)`.
func (p *Parser) failAt(code diag.Code, sp source.Span, msg string, fixes ...diag.Fix) bool {
	if p.failed != nil {
		return false
	}
	d := diag.NewError(code, sp, msg)
	for _, f := range fixes {
		d = d.WithFix(f.Title, f.Edits...)
	}
	p.failed = &d
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(d)
	}
	return false
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Invalid:
		return "invalid token"
	default:
		return "`" + tok.Text + "`"
	}
}

// spanFrom покрывает всё от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}
