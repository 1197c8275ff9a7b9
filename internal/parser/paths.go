package parser

import (
	"traitgen/internal/ast"
	"traitgen/internal/diag"
	"traitgen/internal/token"
)

func (p *Parser) atPathStart() bool {
	k := p.peek().Kind
	return k == token.Ident || k == token.ColonColon || token.IsPathSegmentKeyword(k)
}

func isSegmentToken(tok token.Token, allowKeywords bool) bool {
	if tok.Kind == token.Ident || token.IsPathSegmentKeyword(tok.Kind) {
		return true
	}
	return allowKeywords && tok.IsKeyword()
}

// atPathContinuation: следующий `::` продолжает путь ещё одним сегментом
// (а не turbofish `::<`).
func (p *Parser) atPathContinuation(allowKeywords bool) bool {
	return p.at(token.ColonColon) && isSegmentToken(p.peekN(1), allowKeywords)
}

// parsePath разбирает путь в позиции типа или границы: сегменты могут нести
// `<...>`, `::<...>` и `(...) -> R`.
func (p *Parser) parsePath() (*ast.Path, bool) {
	return p.parsePathWith(false, true)
}

// parseModPath разбирает путь без аргументов (атрибуты, `pub(in ...)`).
// allowKeywords разрешает любые ключевые слова в сегментах, как в путях атрибутов.
func (p *Parser) parseModPath(allowKeywords bool) (*ast.Path, bool) {
	return p.parsePathWith(allowKeywords, false)
}

func (p *Parser) parsePathWith(allowKeywords, withArgs bool) (*ast.Path, bool) {
	start := p.peek().Span
	path := &ast.Path{}
	if p.at(token.ColonColon) {
		p.advance()
		path.LeadingColon = true
	}
	for {
		seg, ok := p.parsePathSegment(allowKeywords, withArgs)
		if !ok {
			return nil, false
		}
		path.Segments = append(path.Segments, seg)
		if !p.atPathContinuation(allowKeywords) {
			break
		}
		p.advance()
	}
	path.Span = p.spanFrom(start)
	return path, true
}

func (p *Parser) parsePathSegment(allowKeywords, withArgs bool) (*ast.PathSegment, bool) {
	tok := p.peek()
	if !isSegmentToken(tok, allowKeywords) {
		return nil, p.unexpected(diag.SynExpectIdentifier, "path segment")
	}
	p.advance()
	seg := &ast.PathSegment{Ident: ast.NewIdent(tok.Text, tok.Span)}
	if withArgs {
		var ok bool
		switch {
		case p.at(token.Lt):
			if seg.Args, ok = p.parseAngleArgs(false); !ok {
				return nil, false
			}
		case p.at(token.ColonColon) && p.peekN(1).Kind == token.Lt:
			p.advance()
			if seg.Args, ok = p.parseAngleArgs(true); !ok {
				return nil, false
			}
		case p.at(token.LParen):
			if seg.Args, ok = p.parseParenArgs(); !ok {
				return nil, false
			}
		}
	}
	seg.Span = p.spanFrom(tok.Span)
	return seg, p.failed == nil
}

// parseAngleArgs: '<' (arg (',' arg)* ','?)? '>'
func (p *Parser) parseAngleArgs(turbofish bool) (*ast.AngleArgs, bool) {
	lt := p.advance()
	args := &ast.AngleArgs{Turbofish: turbofish}
	for !p.at(token.Gt) {
		arg, ok := p.parseGenericArg()
		if !ok {
			return nil, false
		}
		args.Args = append(args.Args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngleBracket, "`,` or `>`"); !ok {
		return nil, false
	}
	args.Span = p.spanFrom(lt.Span)
	return args, true
}

// parseParenArgs: `(A, B) -> C` у Fn-трейтов.
func (p *Parser) parseParenArgs() (*ast.ParenArgs, bool) {
	open := p.advance()
	args := &ast.ParenArgs{}
	for !p.at(token.RParen) {
		ty, ok := p.parseType(true)
		if !ok {
			return nil, false
		}
		args.Inputs = append(args.Inputs, ty)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "`,` or `)`"); !ok {
		return nil, false
	}
	if p.eat(token.Arrow) {
		var ok bool
		if args.Output, ok = p.parseType(false); !ok {
			return nil, false
		}
	}
	args.Span = p.spanFrom(open.Span)
	return args, p.failed == nil
}

func (p *Parser) parseGenericArg() (ast.GenericArg, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Lifetime:
		lt, _ := p.parseLifetime()
		return &ast.LifetimeArg{Lifetime: lt}, p.failed == nil

	case tok.IsLiteral(), tok.Kind == token.Minus, tok.Kind == token.LBrace:
		expr, ok := p.parseConstExpr()
		if !ok {
			return nil, false
		}
		return &ast.ConstArg{Expr: expr}, true

	case tok.Kind == token.Ident:
		if k, ok := p.assocLookahead(); ok {
			return p.parseAssocArg(k)
		}
	}

	ty, ok := p.parseType(true)
	if !ok {
		return nil, false
	}
	return &ast.TypeArg{Type: ty}, true
}

// assocLookahead смотрит, является ли `Ident` или `Ident<...>` началом
// `Item = T` / `Item: Bound`. Возвращает вид разделителя.
func (p *Parser) assocLookahead() (token.Kind, bool) {
	i := 1
	if p.peekN(i).Kind == token.Lt {
		depth := 0
		for ; ; i++ {
			switch p.peekN(i).Kind {
			case token.Lt:
				depth++
			case token.Gt:
				depth--
			case token.EOF, token.Semicolon:
				return token.Invalid, false
			}
			if depth == 0 {
				break
			}
		}
		i++
	}
	switch k := p.peekN(i).Kind; k {
	case token.Eq, token.Colon:
		return k, true
	default:
		return token.Invalid, false
	}
}

func (p *Parser) parseAssocArg(sep token.Kind) (ast.GenericArg, bool) {
	start := p.peek().Span
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	var args *ast.AngleArgs
	if p.at(token.Lt) {
		if args, ok = p.parseAngleArgs(false); !ok {
			return nil, false
		}
	}
	p.advance() // '=' или ':'

	if sep == token.Eq {
		ty, ok := p.parseType(true)
		if !ok {
			return nil, false
		}
		return &ast.AssocType{Ident: name, Args: args, Type: ty, Span: p.spanFrom(start)}, true
	}
	bounds, ok := p.parseBounds(true)
	if !ok {
		return nil, false
	}
	return &ast.AssocConstraint{Ident: name, Args: args, Bounds: bounds, Span: p.spanFrom(start)}, true
}
