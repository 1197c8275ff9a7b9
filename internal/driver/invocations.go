package driver

import (
	"traitgen/internal/diag"
	"traitgen/internal/lexer"
	"traitgen/internal/source"
	"traitgen/internal/token"
)

// MacroName is the macro whose invocations are expanded in Rust files.
const MacroName = "trait_aliases"

// Invocation locates one `trait_aliases! { ... }` call in a Rust file.
type Invocation struct {
	// Span covers the whole call, from the first path segment to the
	// closing delimiter (and the `;` after `()` / `[]` forms).
	Span source.Span
	// Body covers the text between the delimiters.
	Body source.Span
	// Open is the opening delimiter kind: LBrace, LParen or LBracket.
	Open     token.Kind
	OpenSpan source.Span
	// Closed is false when the call runs to the end of the file.
	Closed bool
}

// check reports an unclosed call into bag.
func (inv Invocation) check(bag *diag.Bag) bool {
	if inv.Closed {
		return true
	}
	bag.Add(diag.NewError(diag.SynUnclosedDelimiter, inv.OpenSpan, "unclosed `"+MacroName+"!` invocation"))
	return false
}

// FindInvocations scans file for macro calls named MacroName. Lexical errors
// outside the calls are ignored: that text is copied verbatim anyway. An
// unclosed call is returned with Closed unset and Body running to the end of
// the file.
func FindInvocations(file *source.File) []Invocation {
	toks := lexer.Tokenize(file, lexer.Options{})
	var out []Invocation
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind != token.Ident || tok.Text != MacroName {
			continue
		}
		if i+2 >= len(toks) || toks[i+1].Kind != token.Bang || !isOpenDelim(toks[i+2].Kind) {
			continue
		}
		start := pathStart(toks, i)
		if start > 0 && toks[start-1].Kind == token.Bang {
			// `macro_rules! trait_aliases` и подобное
			continue
		}
		open := toks[i+2]
		closeIdx := matchDelim(toks, i+2)

		inv := Invocation{Open: open.Kind, OpenSpan: open.Span}
		if closeIdx < 0 {
			end := uint32(len(file.Content)) //nolint:gosec // FileSet guarantees uint32 sizes
			inv.Body = source.Span{File: file.ID, Start: open.Span.End, End: end}
			inv.Span = source.Span{File: file.ID, Start: toks[start].Span.Start, End: end}
			out = append(out, inv)
			break
		}
		closeTok := toks[closeIdx]
		inv.Closed = true
		inv.Body = source.Span{File: file.ID, Start: open.Span.End, End: closeTok.Span.Start}
		end := closeTok.Span.End
		if open.Kind != token.LBrace && closeIdx+1 < len(toks) && toks[closeIdx+1].Kind == token.Semicolon {
			end = toks[closeIdx+1].Span.End
			closeIdx++
		}
		inv.Span = source.Span{File: file.ID, Start: toks[start].Span.Start, End: end}
		out = append(out, inv)
		i = closeIdx
	}
	return out
}

// pathStart walks back over `a::b::` (and a leading `::`) before toks[i].
func pathStart(toks []token.Token, i int) int {
	start := i
	for start >= 1 && toks[start-1].Kind == token.ColonColon {
		if start >= 2 && isPathSegment(toks[start-2].Kind) {
			start -= 2
			continue
		}
		start--
		break
	}
	return start
}

func isPathSegment(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwCrate, token.KwSelf, token.KwSuper:
		return true
	}
	return false
}

func isOpenDelim(k token.Kind) bool {
	return k == token.LBrace || k == token.LParen || k == token.LBracket
}

func closingOf(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	default:
		return token.RBrace
	}
}

// matchDelim returns the index of the delimiter closing toks[open], or -1.
// Mismatched inner delimiters are left for the parser to report.
func matchDelim(toks []token.Token, open int) int {
	stack := []token.Kind{closingOf(toks[open].Kind)}
	for j := open + 1; j < len(toks); j++ {
		k := toks[j].Kind
		switch {
		case k == token.EOF:
			return -1
		case isOpenDelim(k):
			stack = append(stack, closingOf(k))
		case k == token.RParen || k == token.RBracket || k == token.RBrace:
			if k != stack[len(stack)-1] {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return j
			}
		}
	}
	return -1
}
