package parser

import (
	"traitgen/internal/ast"
	"traitgen/internal/diag"
	"traitgen/internal/token"
)

// parseGenerics разбирает `<'a: 'b, T: Bound = Default, const N: usize = 3>`.
// Порядок видов параметров не проверяется, это дело компилятора.
func (p *Parser) parseGenerics() (*ast.Generics, bool) {
	lt := p.advance() // '<'
	g := &ast.Generics{}
	for !p.at(token.Gt) {
		param, ok := p.parseGenericParam()
		if !ok {
			return nil, false
		}
		g.Params = append(g.Params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngleBracket, "`,` or `>`"); !ok {
		return nil, false
	}
	g.Span = p.spanFrom(lt.Span)
	return g, true
}

func (p *Parser) parseGenericParam() (ast.GenericParam, bool) {
	start := p.peek().Span
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return nil, false
	}
	if len(attrs) > 0 {
		start = attrs[0].Span
	}

	switch p.peek().Kind {
	case token.Lifetime:
		lt, _ := p.parseLifetime()
		param := &ast.LifetimeParam{Attrs: attrs, Lifetime: lt}
		if p.eat(token.Colon) {
			if param.Bounds, ok = p.parseLifetimeBounds(); !ok {
				return nil, false
			}
		}
		param.Span = p.spanFrom(start)
		return param, p.failed == nil

	case token.KwConst:
		p.advance()
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.Colon, diag.SynExpectColon, "`:`"); !ok {
			return nil, false
		}
		ty, ok := p.parseType(true)
		if !ok {
			return nil, false
		}
		param := &ast.ConstParam{Attrs: attrs, Ident: name, Ty: ty}
		if p.eat(token.Eq) {
			if param.Default, ok = p.parseConstExpr(); !ok {
				return nil, false
			}
		}
		param.Span = p.spanFrom(start)
		return param, true

	case token.Ident:
		name, _ := p.parseIdent()
		param := &ast.TypeParam{Attrs: attrs, Ident: name}
		if p.eat(token.Colon) {
			if param.Bounds, ok = p.parseBounds(true); !ok {
				return nil, false
			}
		}
		if p.eat(token.Eq) {
			if param.Default, ok = p.parseType(true); !ok {
				return nil, false
			}
		}
		param.Span = p.spanFrom(start)
		return param, p.failed == nil

	default:
		return nil, p.unexpected(diag.SynExpectIdentifier, "generic parameter")
	}
}

// parseLifetimeBounds: 'a + 'b + ... (допускается завершающий '+' и пустой список).
func (p *Parser) parseLifetimeBounds() ([]*ast.Lifetime, bool) {
	var out []*ast.Lifetime
	for p.at(token.Lifetime) {
		lt, _ := p.parseLifetime()
		out = append(out, lt)
		if !p.eat(token.Plus) {
			break
		}
	}
	return out, p.failed == nil
}

// parseBoundLifetimes разбирает `for<'a, 'b: 'a>`.
func (p *Parser) parseBoundLifetimes() (*ast.BoundLifetimes, bool) {
	kw := p.advance() // for
	if _, ok := p.expect(token.Lt, diag.SynUnexpectedToken, "`<` after `for`"); !ok {
		return nil, false
	}
	bl := &ast.BoundLifetimes{}
	for !p.at(token.Gt) {
		start := p.peek().Span
		attrs, ok := p.parseOuterAttrs()
		if !ok {
			return nil, false
		}
		lt, ok := p.parseLifetime()
		if !ok {
			return nil, false
		}
		param := &ast.LifetimeParam{Attrs: attrs, Lifetime: lt}
		if p.eat(token.Colon) {
			if param.Bounds, ok = p.parseLifetimeBounds(); !ok {
				return nil, false
			}
		}
		param.Span = p.spanFrom(start)
		bl.Params = append(bl.Params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngleBracket, "`,` or `>`"); !ok {
		return nil, false
	}
	bl.Span = p.spanFrom(kw.Span)
	return bl, true
}

// parseWhereClause: 'where' (predicate (',' predicate)* ','?)?
func (p *Parser) parseWhereClause() (*ast.WhereClause, bool) {
	kw := p.advance() // where
	wc := &ast.WhereClause{}
	for p.atPredicateStart() {
		pred, ok := p.parsePredicate()
		if !ok {
			return nil, false
		}
		wc.Predicates = append(wc.Predicates, pred)
		if !p.eat(token.Comma) {
			break
		}
	}
	wc.Span = p.spanFrom(kw.Span)
	return wc, p.failed == nil
}

func (p *Parser) atPredicateStart() bool {
	return p.at(token.Lifetime) || p.at(token.KwFor) || p.atTypeStart()
}

func (p *Parser) parsePredicate() (ast.WherePredicate, bool) {
	start := p.peek().Span
	if p.at(token.Lifetime) {
		lt, _ := p.parseLifetime()
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "`:`"); !ok {
			return nil, false
		}
		bounds, ok := p.parseLifetimeBounds()
		if !ok {
			return nil, false
		}
		return &ast.PredicateLifetime{Lifetime: lt, Bounds: bounds, Span: p.spanFrom(start)}, true
	}

	pred := &ast.PredicateType{}
	var ok bool
	if p.at(token.KwFor) {
		if pred.Lifetimes, ok = p.parseBoundLifetimes(); !ok {
			return nil, false
		}
	}
	if pred.BoundedTy, ok = p.parseType(true); !ok {
		return nil, false
	}
	if _, ok = p.expect(token.Colon, diag.SynExpectColon, "`:`"); !ok {
		return nil, false
	}
	if pred.Bounds, ok = p.parseBounds(true); !ok {
		return nil, false
	}
	pred.Span = p.spanFrom(start)
	return pred, true
}
