// Package diag defines the diagnostic model shared by the lexer, the alias
// parser, the reserved-identifier checker and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form such as
//     LEX1002 or SEM3001 (codes.go).
//   - Message – short human oriented text.
//   - Primary span – the source.Span the finding points at.
//   - Notes – optional secondary spans.
//   - Fixes – optional text edits that would resolve the problem.
//
// # Emitting diagnostics
//
// Producers report through a Reporter so that storage stays decoupled from
// emission. BagReporter collects into a Bag and UniqueReporter drops repeats.
// Notes and fixes are attached with Diagnostic.WithNote and WithFix before
// the diagnostic is reported.
//
// Package diag does no IO and no formatting beyond the golden/short line
// format used by tests; pretty and JSON rendering live in internal/diagfmt.
package diag
