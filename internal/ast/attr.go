package ast

import (
	"fmt"
	"strconv"
	"strings"

	"traitgen/internal/source"
	"traitgen/internal/token"
)

// AttrStyle отличает #[outer] от #![inner].
type AttrStyle uint8

const (
	AttrOuter AttrStyle = iota
	AttrInner
)

// Attribute is `#[path args]`. Args holds every token after the path
// (a delimited group or `= literal`), nil for a bare `#[path]`.
// Doc comments are stored as `doc` attributes with DocSugar set.
type Attribute struct {
	Style    AttrStyle
	Path     *Path
	Args     *TokenTree
	DocSugar bool
	Span     source.Span
}

func (a *Attribute) NodeSpan() source.Span { return a.Span }

// IsDoc reports whether the attribute path is exactly `doc`.
func (a *Attribute) IsDoc() bool {
	return a.Path != nil && a.Path.IsIdent("doc")
}

// DocValue returns the string of a `#[doc = "..."]` attribute.
func (a *Attribute) DocValue() (string, bool) {
	if !a.IsDoc() || a.Args == nil || len(a.Args.Tokens) != 2 {
		return "", false
	}
	eq, lit := a.Args.Tokens[0], a.Args.Tokens[1]
	if eq.Kind != token.Eq {
		return "", false
	}
	switch lit.Kind {
	case token.StrLit:
		s, err := unquoteRust(lit.Text)
		return s, err == nil
	case token.RawStrLit:
		body := strings.TrimPrefix(lit.Text, "r")
		body = strings.Trim(body, "#")
		return strings.TrimSuffix(strings.TrimPrefix(body, `"`), `"`), true
	default:
		return "", false
	}
}

// NewDocAttribute builds `#[doc = "text"]`.
func NewDocAttribute(text string, span source.Span) *Attribute {
	return &Attribute{
		Style: AttrOuter,
		Path:  PathFromIdent(NewIdent("doc", span)),
		Args: &TokenTree{
			Tokens: []token.Token{
				{Kind: token.Eq, Text: "=", Span: span, Leading: spaceTrivia},
				{Kind: token.StrLit, Text: QuoteString(text), Span: span, Leading: spaceTrivia},
			},
			Span: span,
		},
		Span: span,
	}
}

var spaceTrivia = []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}

// PartitionAttrs splits attributes into doc and non-doc groups keeping the
// relative order inside each group. Every attribute lands in exactly one.
func PartitionAttrs(attrs []*Attribute) (docs, others []*Attribute) {
	for _, a := range attrs {
		if a.IsDoc() {
			docs = append(docs, a)
		} else {
			others = append(others, a)
		}
	}
	return docs, others
}

// QuoteString renders s as a Rust string literal.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// unquoteRust декодирует обычный строковый литерал Rust.
func unquoteRust(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", fmt.Errorf("not a string literal: %s", lit)
	}
	body := lit[1 : len(lit)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("dangling escape in %s", lit)
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'':
			b.WriteByte(body[i])
		case '\n':
			// продолжение строки: пропускаем ведущие пробелы следующей строки
			for i+1 < len(body) && strings.ContainsRune(" \t\n\r", rune(body[i+1])) {
				i++
			}
		case 'x':
			if i+2 >= len(body) {
				return "", fmt.Errorf("short \\x escape in %s", lit)
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("bad \\x escape in %s: %w", lit, err)
			}
			b.WriteByte(byte(v))
			i += 2
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if i+1 >= len(body) || body[i+1] != '{' || end < 0 {
				return "", fmt.Errorf("bad \\u escape in %s", lit)
			}
			hex := strings.ReplaceAll(body[i+2:i+end], "_", "")
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return "", fmt.Errorf("bad \\u escape in %s: %w", lit, err)
			}
			b.WriteRune(rune(v))
			i += end
		default:
			return "", fmt.Errorf("unknown escape \\%c in %s", body[i], lit)
		}
	}
	return b.String(), nil
}
