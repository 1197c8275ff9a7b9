package parser

import (
	"traitgen/internal/ast"
	"traitgen/internal/diag"
	"traitgen/internal/token"
)

// atTypeStart сообщает, может ли текущий токен начать тип.
func (p *Parser) atTypeStart() bool {
	switch p.peek().Kind {
	case token.LParen, token.Bang, token.Underscore, token.Amp, token.Star,
		token.LBracket, token.KwDyn, token.KwImpl, token.KwFn, token.KwUnsafe,
		token.KwExtern, token.KwFor, token.Lt:
		return true
	default:
		return p.atPathStart()
	}
}

// parseType разбирает тип. allowPlus=false используется там, где `+`
// относится к объемлющему списку границ: `&dyn A`, `-> R`.
func (p *Parser) parseType(allowPlus bool) (ast.Type, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.LParen:
		return p.parseParenOrTuple()

	case token.Bang:
		p.advance()
		return &ast.NeverType{Span: tok.Span}, p.failed == nil

	case token.Underscore:
		p.advance()
		return &ast.InferType{Span: tok.Span}, p.failed == nil

	case token.Amp:
		p.advance()
		ref := &ast.RefType{}
		var ok bool
		if p.at(token.Lifetime) {
			if ref.Lifetime, ok = p.parseLifetime(); !ok {
				return nil, false
			}
		}
		ref.Mut = p.eat(token.KwMut)
		if ref.Elem, ok = p.parseType(false); !ok {
			return nil, false
		}
		ref.Span = p.spanFrom(tok.Span)
		return ref, true

	case token.Star:
		p.advance()
		ptr := &ast.PtrType{}
		switch {
		case p.eat(token.KwMut):
			ptr.Mut = true
		case p.eat(token.KwConst):
		default:
			return nil, p.unexpected(diag.SynExpectType, "`mut` or `const` in raw pointer type")
		}
		var ok bool
		if ptr.Elem, ok = p.parseType(false); !ok {
			return nil, false
		}
		ptr.Span = p.spanFrom(tok.Span)
		return ptr, true

	case token.LBracket:
		return p.parseSliceOrArray()

	case token.KwDyn, token.KwImpl:
		p.advance()
		bounds, ok := p.parseBounds(allowPlus)
		if !ok {
			return nil, false
		}
		if len(bounds) == 0 {
			return nil, p.unexpected(diag.SynExpectBound, "at least one trait bound")
		}
		if tok.Kind == token.KwImpl {
			return &ast.ImplTraitType{Bounds: bounds, Span: p.spanFrom(tok.Span)}, true
		}
		return &ast.TraitObjectType{Dyn: true, Bounds: bounds, Span: p.spanFrom(tok.Span)}, true

	case token.KwFn, token.KwUnsafe, token.KwExtern:
		return p.parseFnPtr(nil)

	case token.KwFor:
		lifetimes, ok := p.parseBoundLifetimes()
		if !ok {
			return nil, false
		}
		if p.atOr(token.KwFn, token.KwUnsafe, token.KwExtern) {
			return p.parseFnPtr(lifetimes)
		}
		// for<'a> Trait<'a> в позиции типа: голый trait object
		if !p.atPathStart() {
			return nil, p.unexpected(diag.SynExpectType, "`fn` or trait path after `for<...>`")
		}
		path, ok := p.parsePath()
		if !ok {
			return nil, false
		}
		first := &ast.TraitBound{Lifetimes: lifetimes, Path: path, Span: p.spanFrom(tok.Span)}
		return p.finishBareTraitObject(tok, first, allowPlus)

	case token.Lt:
		return p.parseQualifiedPathType()
	}

	if !p.atPathStart() {
		return nil, p.unexpected(diag.SynExpectType, "type")
	}
	path, ok := p.parsePath()
	if !ok {
		return nil, false
	}
	if p.at(token.Bang) {
		return nil, p.failAt(diag.SynExpectType, p.peek().Span, "macro invocations in type position are not supported")
	}
	if allowPlus && p.at(token.Plus) {
		first := &ast.TraitBound{Path: path, Span: path.Span}
		return p.finishBareTraitObject(tok, first, allowPlus)
	}
	return &ast.PathType{Path: path, Span: path.Span}, true
}

// finishBareTraitObject дочитывает `+ Bound ...` после первой границы
// trait object без `dyn`.
func (p *Parser) finishBareTraitObject(start token.Token, first *ast.TraitBound, allowPlus bool) (ast.Type, bool) {
	bounds := []ast.TypeParamBound{first}
	if allowPlus && p.eat(token.Plus) {
		rest, ok := p.parseBounds(true)
		if !ok {
			return nil, false
		}
		bounds = append(bounds, rest...)
	}
	return &ast.TraitObjectType{Bounds: bounds, Span: p.spanFrom(start.Span)}, p.failed == nil
}

// parseParenOrTuple: `()`, `(T)`, `(T,)`, `(A, B)`.
func (p *Parser) parseParenOrTuple() (ast.Type, bool) {
	open := p.advance()
	if p.eat(token.RParen) {
		return &ast.TupleType{Span: p.spanFrom(open.Span)}, p.failed == nil
	}
	first, ok := p.parseType(true)
	if !ok {
		return nil, false
	}
	if p.eat(token.RParen) {
		return &ast.ParenType{Elem: first, Span: p.spanFrom(open.Span)}, p.failed == nil
	}

	tuple := &ast.TupleType{Elems: []ast.Type{first}}
	for p.eat(token.Comma) {
		if p.at(token.RParen) {
			break
		}
		elem, ok := p.parseType(true)
		if !ok {
			return nil, false
		}
		tuple.Elems = append(tuple.Elems, elem)
	}
	if _, ok = p.expect(token.RParen, diag.SynUnclosedDelimiter, "`,` or `)`"); !ok {
		return nil, false
	}
	tuple.Span = p.spanFrom(open.Span)
	return tuple, true
}

// parseSliceOrArray: `[T]` или `[T; N]`, где N хранится токенами.
func (p *Parser) parseSliceOrArray() (ast.Type, bool) {
	open := p.advance()
	elem, ok := p.parseType(true)
	if !ok {
		return nil, false
	}
	if p.eat(token.RBracket) {
		return &ast.SliceType{Elem: elem, Span: p.spanFrom(open.Span)}, p.failed == nil
	}
	if _, ok = p.expect(token.Semicolon, diag.SynUnclosedDelimiter, "`;` or `]`"); !ok {
		return nil, false
	}
	length, ok := p.parseTokensUntil(token.RBracket)
	if !ok {
		return nil, false
	}
	if length.Empty() {
		return nil, p.unexpected(diag.SynExpectType, "array length")
	}
	if _, ok = p.expect(token.RBracket, diag.SynUnclosedDelimiter, "`]`"); !ok {
		return nil, false
	}
	return &ast.ArrayType{Elem: elem, Len: length, Span: p.spanFrom(open.Span)}, true
}

// parseFnPtr: for<'a>? unsafe? (extern "abi"?)? fn(args) (-> R)?
func (p *Parser) parseFnPtr(lifetimes *ast.BoundLifetimes) (ast.Type, bool) {
	start := p.peek().Span
	if lifetimes != nil {
		start = lifetimes.Span
	}
	fp := &ast.FnPtrType{Lifetimes: lifetimes}
	fp.Unsafe = p.eat(token.KwUnsafe)
	if p.eat(token.KwExtern) {
		fp.Extern = true
		if p.atOr(token.StrLit, token.RawStrLit) {
			fp.Abi = p.advance().Text
		}
	}
	if _, ok := p.expect(token.KwFn, diag.SynExpectType, "`fn`"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectType, "`(`"); !ok {
		return nil, false
	}
	for !p.at(token.RParen) {
		if p.at(token.DotDotDot) {
			p.advance()
			fp.Variadic = true
			break
		}
		arg, ok := p.parseFnArg()
		if !ok {
			return nil, false
		}
		fp.Inputs = append(fp.Inputs, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "`,` or `)`"); !ok {
		return nil, false
	}
	if p.eat(token.Arrow) {
		var ok bool
		if fp.Output, ok = p.parseType(false); !ok {
			return nil, false
		}
	}
	fp.Span = p.spanFrom(start)
	return fp, p.failed == nil
}

func (p *Parser) parseFnArg() (*ast.FnArg, bool) {
	start := p.peek().Span
	arg := &ast.FnArg{}
	if p.atOr(token.Ident, token.Underscore) && p.peekN(1).Kind == token.Colon {
		tok := p.advance()
		arg.Name = ast.NewIdent(tok.Text, tok.Span)
		p.advance() // ':'
	}
	var ok bool
	if arg.Ty, ok = p.parseType(true); !ok {
		return nil, false
	}
	arg.Span = p.spanFrom(start)
	return arg, true
}

// parseQualifiedPathType: `<Ty as Trait>::Assoc` или `<Ty>::Assoc`.
func (p *Parser) parseQualifiedPathType() (ast.Type, bool) {
	lt := p.advance()
	qself := &ast.QSelf{}
	var ok bool
	if qself.Ty, ok = p.parseType(true); !ok {
		return nil, false
	}
	if p.eat(token.KwAs) {
		if qself.Trait, ok = p.parsePath(); !ok {
			return nil, false
		}
	}
	if _, ok = p.expect(token.Gt, diag.SynUnclosedAngleBracket, "`>`"); !ok {
		return nil, false
	}
	qself.Span = p.spanFrom(lt.Span)
	if _, ok = p.expect(token.ColonColon, diag.SynExpectType, "`::` after qualified self type"); !ok {
		return nil, false
	}

	rest := &ast.Path{}
	for {
		seg, ok := p.parsePathSegment(false, true)
		if !ok {
			return nil, false
		}
		rest.Segments = append(rest.Segments, seg)
		if !p.atPathContinuation(false) {
			break
		}
		p.advance()
	}
	rest.Span = rest.Segments[0].Span.Cover(p.lastSpan)
	return &ast.PathType{QSelf: qself, Path: rest, Span: p.spanFrom(lt.Span)}, true
}
