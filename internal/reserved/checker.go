package reserved

import (
	"fmt"

	"traitgen/internal/ast"
	"traitgen/internal/diag"
	"traitgen/internal/source"
)

const (
	// Name is the type parameter of every blanket implementation.
	Name = "__T"
	// Message is attached to each occurrence of Name in user input.
	Message = "identifier `" + Name + "` is reserved for blanket implementations"
)

// Error combines every occurrence found in one collection.
type Error struct {
	Diagnostics []diag.Diagnostic
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 1 {
		return fmt.Sprintf("%s: %s", diag.SemaReservedIdent.ID(), Message)
	}
	return fmt.Sprintf("%s: %s (%d occurrences)", diag.SemaReservedIdent.ID(), Message, len(e.Diagnostics))
}

// Spans returns the location of every occurrence in traversal order.
func (e *Error) Spans() []source.Span {
	out := make([]source.Span, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		out[i] = d.Primary
	}
	return out
}

// Checker accumulates occurrences of Name across the items of one collection.
// It is not safe for concurrent use and is not meant to be reused.
type Checker struct {
	diags []diag.Diagnostic
}

func NewChecker() *Checker {
	return &Checker{}
}

// Visit walks every identifier reachable from item, including attribute
// arguments, const expressions and the names of lifetimes, and records each
// one equal to Name.
func (c *Checker) Visit(item *ast.TraitAlias) {
	if item == nil {
		return
	}
	ast.Inspect(item, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			if n.Name == Name {
				c.report(n.Span)
			}
		case *ast.Lifetime:
			if n.Name == Name {
				c.report(lifetimeIdentSpan(n))
			}
		}
		return true
	})
}

// lifetimeIdentSpan drops the leading apostrophe: `'__T` points at `__T`.
func lifetimeIdentSpan(lt *ast.Lifetime) source.Span {
	sp := lt.Span
	if sp.End > sp.Start {
		sp.Start++
	}
	return sp
}

func (c *Checker) report(sp source.Span) {
	c.diags = append(c.diags, diag.NewError(diag.SemaReservedIdent, sp, Message))
}

// Diagnostics returns the occurrences recorded so far.
func (c *Checker) Diagnostics() []diag.Diagnostic {
	return c.diags
}

// Finish returns nil when nothing was found, otherwise an *Error holding all
// occurrences.
func (c *Checker) Finish() error {
	if len(c.diags) == 0 {
		return nil
	}
	return &Error{Diagnostics: c.diags}
}
