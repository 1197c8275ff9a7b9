package lexer

import (
	"traitgen/internal/diag"
	"traitgen/internal/source"
)

// maxTokenLength caps a single token; anything longer is almost certainly
// generated garbage and the lexer gives up on the rest of the input.
const maxTokenLength = 1 << 16

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.NewError(code, sp, msg))
	}
}
