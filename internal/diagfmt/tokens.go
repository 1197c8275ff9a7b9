package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"traitgen/internal/source"
	"traitgen/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	out := make([]string, 0, len(tok.Leading))
	for _, trivia := range tok.Leading {
		out = append(out, trivia.Kind.String())
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		var sb strings.Builder
		fmt.Fprintf(&sb, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := leadingKinds(tok); len(leading) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(leading, ", "))
		}
		sb.WriteByte('\n')

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: leadingKinds(tok),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
