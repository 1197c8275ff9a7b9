// Package token defines lexical token kinds and trivia for Rust item syntax.
// Invariants:
//   - Token.Text is the exact source slice (for identifiers: the NFC form).
//   - Token.Span matches the source bytes the token was read from.
//   - Operators are mostly single-character tokens; whether two puncts are
//     joined (">>", "==") is recovered from the absence of Leading trivia.
//     Only "::", "->", "=>", "..", "...", "..=" are lexed as one token.
//   - Doc comments (///, //!, /** */, /*! */) are Leading trivia; the parser
//     lifts them into #[doc = "..."] attributes.
package token
