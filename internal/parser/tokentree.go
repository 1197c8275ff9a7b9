package parser

import (
	"traitgen/internal/ast"
	"traitgen/internal/diag"
	"traitgen/internal/token"
)

// parseGroup забирает сбалансированную группу (...), [...] или {...}
// вместе с разделителями.
func (p *Parser) parseGroup() (*ast.TokenTree, bool) {
	tt := &ast.TokenTree{}
	if !p.collectGroup(tt) {
		return nil, false
	}
	tt.Span = tt.Tokens[0].Span.Cover(tt.Tokens[len(tt.Tokens)-1].Span)
	return tt, true
}

// collectGroup дописывает группу, начинающуюся с текущего токена, в tt.
func (p *Parser) collectGroup(tt *ast.TokenTree) bool {
	open := p.peek()
	want, ok := open.Kind.Closing()
	if !ok {
		return p.unexpected(diag.SynUnexpectedToken, "`(`, `[` or `{`")
	}
	tt.Tokens = append(tt.Tokens, p.advance())

	stack := []token.Token{open}
	wants := []token.Kind{want}
	for len(stack) > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			if p.failed != nil {
				return false
			}
			top := stack[len(stack)-1]
			return p.failAt(diag.SynUnclosedDelimiter, top.Span, "unclosed delimiter `"+top.Text+"`")
		case tok.Kind.IsClosing():
			if tok.Kind != wants[len(wants)-1] {
				return p.failAt(diag.SynUnclosedDelimiter, tok.Span,
					"mismatched closing delimiter `"+tok.Text+"`")
			}
			stack = stack[:len(stack)-1]
			wants = wants[:len(wants)-1]
		default:
			if w, ok := tok.Kind.Closing(); ok {
				stack = append(stack, tok)
				wants = append(wants, w)
			}
		}
		tt.Tokens = append(tt.Tokens, p.advance())
	}
	return p.failed == nil
}

// parseTokensUntil собирает токены до stop на нулевой глубине (stop не
// съедается). Вложенные группы забираются целиком.
func (p *Parser) parseTokensUntil(stop token.Kind) (*ast.TokenTree, bool) {
	tt := &ast.TokenTree{}
	for !p.at(stop) {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			return nil, p.unexpected(diag.SynUnclosedDelimiter, "`"+stop.String()+"`")
		case tok.Kind.IsClosing():
			return nil, p.failAt(diag.SynUnclosedDelimiter, tok.Span,
				"mismatched closing delimiter `"+tok.Text+"`")
		case tok.Kind == token.LParen || tok.Kind == token.LBracket || tok.Kind == token.LBrace:
			if !p.collectGroup(tt) {
				return nil, false
			}
		default:
			tt.Tokens = append(tt.Tokens, p.advance())
		}
	}
	if p.failed != nil {
		return nil, false
	}
	if len(tt.Tokens) > 0 {
		tt.Span = tt.Tokens[0].Span.Cover(tt.Tokens[len(tt.Tokens)-1].Span)
	}
	return tt, true
}

// parseConstExpr: литерал, `-литерал`, `{ блок }` или одиночный идентификатор.
func (p *Parser) parseConstExpr() (*ast.TokenTree, bool) {
	tt := &ast.TokenTree{}
	tok := p.peek()
	switch {
	case tok.Kind == token.LBrace:
		if !p.collectGroup(tt) {
			return nil, false
		}
	case tok.Kind == token.Minus:
		tt.Tokens = append(tt.Tokens, p.advance())
		if !p.peek().IsLiteral() {
			return nil, p.unexpected(diag.SynExpectType, "literal after `-`")
		}
		tt.Tokens = append(tt.Tokens, p.advance())
	case tok.IsLiteral(), tok.Kind == token.Ident:
		tt.Tokens = append(tt.Tokens, p.advance())
	default:
		return nil, p.unexpected(diag.SynExpectType, "const expression")
	}
	if p.failed != nil {
		return nil, false
	}
	tt.Span = tt.Tokens[0].Span.Cover(tt.Tokens[len(tt.Tokens)-1].Span)
	return tt, true
}
