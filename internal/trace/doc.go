// Package trace records what traitgen is doing while it expands aliases.
//
// Tracing helps answer "where did the time go" and "which file is it stuck
// on" for large directory expansions.
//
// # Usage
//
//	traitgen expand --trace=- --trace-level=phase src/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes every event immediately (file/stderr)
//   - RingTracer: keeps the last N events for crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including per-alias events
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopePass: pipeline phases (lex, parse, check, generate, format)
//   - ScopeFile: per-input-file processing
//   - ScopeItem: per-alias events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
