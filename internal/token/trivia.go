package token

import (
	"strings"

	"traitgen/internal/source"
)

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine       // /// outer
	TriviaInnerDocLine  // //! inner
	TriviaDocBlock      // /** */ outer
	TriviaInnerDocBlock // /*! */ inner
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsDoc reports whether the trivia is any kind of doc comment.
func (k TriviaKind) IsDoc() bool {
	return k >= TriviaDocLine && k <= TriviaInnerDocBlock
}

// IsInner reports whether the doc comment documents the enclosing item.
func (k TriviaKind) IsInner() bool {
	return k == TriviaInnerDocLine || k == TriviaInnerDocBlock
}

// DocText strips the comment markers from a doc comment, leaving the
// string the host compiler would put into #[doc = "..."].
func (t Trivia) DocText() string {
	switch t.Kind {
	case TriviaDocLine, TriviaInnerDocLine:
		return t.Text[3:]
	case TriviaDocBlock, TriviaInnerDocBlock:
		return strings.TrimSuffix(t.Text[3:], "*/")
	default:
		return ""
	}
}

var triviaNames = [...]string{
	TriviaSpace:         "Space",
	TriviaNewline:       "Newline",
	TriviaLineComment:   "LineComment",
	TriviaBlockComment:  "BlockComment",
	TriviaDocLine:       "DocLine",
	TriviaInnerDocLine:  "InnerDocLine",
	TriviaDocBlock:      "DocBlock",
	TriviaInnerDocBlock: "InnerDocBlock",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "Trivia?"
}
