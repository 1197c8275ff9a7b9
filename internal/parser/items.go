package parser

import (
	"traitgen/internal/ast"
	"traitgen/internal/diag"
	"traitgen/internal/token"
)

// parseAlias разбирает одно объявление:
//
//	attrs* vis? 'trait' Ident generics? '=' bounds? ('where' predicates)? ';'
func (p *Parser) parseAlias() (*ast.TraitAlias, bool) {
	start := p.peek().Span
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return nil, false
	}
	if len(attrs) > 0 {
		start = attrs[0].Span
	}

	vis, ok := p.parseVisibility()
	if !ok {
		return nil, false
	}
	if _, ok = p.expect(token.KwTrait, diag.SynExpectTrait, "`trait`"); !ok {
		return nil, false
	}
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}

	generics := &ast.Generics{}
	if p.at(token.Lt) {
		if generics, ok = p.parseGenerics(); !ok {
			return nil, false
		}
	}

	if _, ok = p.expect(token.Eq, diag.SynExpectEquals, "`=`"); !ok {
		return nil, false
	}
	bounds, ok := p.parseBounds(true)
	if !ok {
		return nil, false
	}
	if p.at(token.KwWhere) {
		if generics.Where, ok = p.parseWhereClause(); !ok {
			return nil, false
		}
	}
	if !p.at(token.Semicolon) {
		insert := diag.Fix{
			Title: "insert `;`",
			Edits: []diag.FixEdit{{Span: p.lastSpan.ZeroideToEnd(), NewText: ";"}},
		}
		return nil, p.unexpected(diag.SynExpectSemicolon, "`;`", insert)
	}
	if p.advance(); p.failed != nil {
		return nil, false
	}

	return &ast.TraitAlias{
		Attrs:    attrs,
		Vis:      vis,
		Ident:    name,
		Generics: generics,
		Bounds:   bounds,
		Span:     p.spanFrom(start),
	}, true
}

// parseOuterAttrs собирает #[...] и doc-комментарии в порядке появления.
// Doc-комментарии из Leading каждого очередного токена превращаются в
// #[doc = "..."] перед атрибутами этого токена.
func (p *Parser) parseOuterAttrs() ([]*ast.Attribute, bool) {
	var attrs []*ast.Attribute
	for {
		tok := p.peek()
		for _, tr := range tok.Docs() {
			if tr.Kind.IsInner() {
				return nil, p.failAt(diag.SynInnerAttribute, tr.Span, "expected outer doc comment")
			}
			attr := ast.NewDocAttribute(tr.DocText(), tr.Span)
			attr.DocSugar = true
			attrs = append(attrs, attr)
		}
		p.docsAt = p.pos

		if !p.at(token.Pound) {
			return attrs, p.failed == nil
		}
		attr, ok := p.parseAttribute()
		if !ok {
			return nil, false
		}
		attrs = append(attrs, attr)
	}
}

func (p *Parser) parseAttribute() (*ast.Attribute, bool) {
	pound := p.advance()
	if p.at(token.Bang) {
		return nil, p.failAt(diag.SynInnerAttribute, pound.Span.Cover(p.peek().Span),
			"inner attributes are not allowed here")
	}
	if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "`[`"); !ok {
		return nil, false
	}
	path, ok := p.parseModPath(true)
	if !ok {
		return nil, false
	}

	var args *ast.TokenTree
	switch {
	case p.atOr(token.LParen, token.LBracket, token.LBrace):
		if args, ok = p.parseGroup(); !ok {
			return nil, false
		}
	case p.at(token.Eq):
		if args, ok = p.parseTokensUntil(token.RBracket); !ok {
			return nil, false
		}
	}
	if _, ok = p.expect(token.RBracket, diag.SynUnclosedDelimiter, "`]`"); !ok {
		return nil, false
	}
	return &ast.Attribute{
		Style: ast.AttrOuter,
		Path:  path,
		Args:  args,
		Span:  p.spanFrom(pound.Span),
	}, true
}

// parseVisibility: pub, pub(crate), pub(super), pub(self), pub(in path), crate.
func (p *Parser) parseVisibility() (ast.Visibility, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwPub:
		p.advance()
		vis := ast.Visibility{Kind: ast.VisPub, Span: tok.Span}
		if !p.at(token.LParen) {
			return vis, p.failed == nil
		}
		inner := p.peekN(1).Kind
		switch {
		case p.peekN(2).Kind == token.RParen && (inner == token.KwCrate || inner == token.KwSuper || inner == token.KwSelf):
			p.advance()
			p.advance()
			p.advance()
			vis.Kind = map[token.Kind]ast.VisKind{
				token.KwCrate: ast.VisPubCrate,
				token.KwSuper: ast.VisPubSuper,
				token.KwSelf:  ast.VisPubSelf,
			}[inner]
		case inner == token.KwIn:
			p.advance()
			p.advance()
			path, ok := p.parseModPath(false)
			if !ok {
				return vis, false
			}
			if _, ok = p.expect(token.RParen, diag.SynBadVisibility, "`)`"); !ok {
				return vis, false
			}
			vis.Kind = ast.VisPubIn
			vis.Path = path
		default:
			return vis, p.failAt(diag.SynBadVisibility, p.peek().Span,
				"expected `crate`, `super`, `self` or `in path` in visibility")
		}
		vis.Span = p.spanFrom(tok.Span)
		return vis, p.failed == nil

	case token.KwCrate:
		if p.peekN(1).Kind == token.ColonColon {
			break
		}
		p.advance()
		return ast.Visibility{Kind: ast.VisCrate, Span: tok.Span}, p.failed == nil
	}
	return ast.Visibility{Kind: ast.VisInherited}, true
}

func (p *Parser) parseIdent() (*ast.Ident, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
	if !ok {
		return nil, false
	}
	return ast.NewIdent(tok.Text, tok.Span), true
}

func (p *Parser) parseLifetime() (*ast.Lifetime, bool) {
	tok, ok := p.expect(token.Lifetime, diag.SynExpectLifetime, "lifetime")
	if !ok {
		return nil, false
	}
	return &ast.Lifetime{Name: tok.Text[1:], Span: tok.Span}, true
}
