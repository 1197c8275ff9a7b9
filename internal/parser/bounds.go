package parser

import (
	"traitgen/internal/ast"
	"traitgen/internal/diag"
	"traitgen/internal/token"
)

// parseBounds: bound ('+' bound)* '+'?. Пустой список допустим:
// `trait DD = where Self: Debug;`. allowPlus=false берёт ровно одну границу
// (`&dyn Trait` не может продолжаться через '+').
func (p *Parser) parseBounds(allowPlus bool) ([]ast.TypeParamBound, bool) {
	var bounds []ast.TypeParamBound
	for p.atBoundStart() {
		b, ok := p.parseBound()
		if !ok {
			return nil, false
		}
		bounds = append(bounds, b)
		if !allowPlus || !p.eat(token.Plus) {
			break
		}
	}
	return bounds, p.failed == nil
}

func (p *Parser) atBoundStart() bool {
	switch p.peek().Kind {
	case token.Lifetime, token.LParen, token.Question, token.KwFor:
		return true
	default:
		return p.atPathStart()
	}
}

func (p *Parser) parseBound() (ast.TypeParamBound, bool) {
	if p.at(token.Lifetime) {
		lt, _ := p.parseLifetime()
		return &ast.LifetimeBound{Lifetime: lt}, p.failed == nil
	}
	if p.at(token.LParen) {
		open := p.advance()
		tb, ok := p.parseTraitBound()
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.RParen, diag.SynUnclosedDelimiter, "`)`"); !ok {
			return nil, false
		}
		tb.Paren = true
		tb.Span = p.spanFrom(open.Span)
		return tb, true
	}
	tb, ok := p.parseTraitBound()
	if !ok {
		return nil, false
	}
	return tb, true
}

// parseTraitBound: '?'? ('for' '<' ... '>')? path
func (p *Parser) parseTraitBound() (*ast.TraitBound, bool) {
	start := p.peek().Span
	tb := &ast.TraitBound{}
	if p.eat(token.Question) {
		tb.Modifier = ast.BoundMaybe
	}
	var ok bool
	if p.at(token.KwFor) {
		if tb.Lifetimes, ok = p.parseBoundLifetimes(); !ok {
			return nil, false
		}
	}
	if !p.atPathStart() {
		return nil, p.unexpected(diag.SynExpectBound, "trait path")
	}
	if tb.Path, ok = p.parsePath(); !ok {
		return nil, false
	}
	tb.Span = p.spanFrom(start)
	return tb, true
}
