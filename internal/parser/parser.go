package parser

import (
	"fmt"

	"traitgen/internal/ast"
	"traitgen/internal/diag"
	"traitgen/internal/lexer"
	"traitgen/internal/reserved"
	"traitgen/internal/source"
	"traitgen/internal/token"
)

type Options struct {
	// Reporter получает ошибку разбора и диагностики зарезервированного
	// идентификатора; может быть nil: тогда есть только возвращаемая ошибка.
	Reporter diag.Reporter
}

// Collection is the ordered list of aliases parsed from one input.
// Order is declaration order; it is also the emission order.
type Collection struct {
	File  source.FileID
	Items []*ast.TraitAlias
}

// ParseError is a malformed declaration. Parsing stops at the first one.
type ParseError struct {
	Diagnostic diag.Diagnostic
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Diagnostic.Code.ID(), e.Diagnostic.Message)
}

// Parser: состояние парсера на одну последовательность токенов
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	failed   *diag.Diagnostic
	// docsAt: индекс токена, чьи doc-комментарии уже подняты в атрибуты:
	// они допустимы только перед элементом и перед generic-параметром.
	docsAt int
}

// ParseAliases parses a whole token stream as a sequence of trait alias
// declarations.
//
// A malformed declaration stops parsing immediately and is returned as a
// *ParseError; no partial collection is produced. Every successfully parsed
// item is fed to a reserved.Checker, and after the stream is consumed the
// checker's combined *reserved.Error is returned if it found anything.
func ParseAliases(file *source.File, toks []token.Token, opts Options) (*Collection, error) {
	p := newParser(file, toks, opts)
	checker := reserved.NewChecker()

	items := make([]*ast.TraitAlias, 0, 4)
	for !p.at(token.EOF) {
		item, ok := p.parseAlias()
		if !ok {
			return nil, p.parseError()
		}
		checker.Visit(item)
		items = append(items, item)
	}

	if err := checker.Finish(); err != nil {
		diag.ReportAll(p.opts.Reporter, checker.Diagnostics())
		return nil, err
	}
	return &Collection{File: file.ID, Items: items}, nil
}

// ParseSource lexes and parses the whole file. A lexical error counts as a
// malformed declaration: the first one is returned as *ParseError.
func ParseSource(file *source.File, opts Options) (*Collection, error) {
	return ParseRange(file, 0, uint32(len(file.Content)), opts) //nolint:gosec // FileSet guarantees uint32 sizes
}

// ParseRange is ParseSource limited to the bytes [start, end) of file.
func ParseRange(file *source.File, start, end uint32, opts Options) (*Collection, error) {
	bag := diag.NewBag(16)
	toks := lexer.TokenizeRange(file, start, end, lexer.Options{Reporter: diag.NewUniqueReporter(diag.BagReporter{Bag: bag})})
	if bag.HasErrors() {
		first := bag.Items()[:1]
		diag.ReportAll(opts.Reporter, first)
		return nil, &ParseError{Diagnostic: first[0]}
	}
	return ParseAliases(file, toks, opts)
}

func newParser(file *source.File, toks []token.Token, opts Options) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Kind != token.EOF {
		end := uint32(0)
		if n > 0 {
			end = toks[n-1].Span.End
		}
		toks = append(toks[:n:n], token.Token{
			Kind: token.EOF,
			Span: source.Span{File: file.ID, Start: end, End: end},
		})
	}
	return &Parser{file: file, toks: toks, opts: opts, docsAt: -1}
}

func (p *Parser) parseError() *ParseError {
	if p.failed == nil {
		// не должно случаться: любой false сопровождается fail
		d := diag.NewError(diag.SynUnexpectedToken, p.diagnosticSpan(), "malformed trait alias")
		p.failed = &d
	}
	return &ParseError{Diagnostic: *p.failed}
}
