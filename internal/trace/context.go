package trace

import (
	"context"
	"strings"
)

// FileSpanPrefix starts the name of every ScopeFile span: "file:src/lib.rs".
const FileSpanPrefix = "file:"

type tracerKey struct{}

type frameKey struct{}

// frame is what a context remembers about the spans above it: the innermost
// span for parenting and the input file of the nearest file span. The file is
// kept even when the level filters file spans out.
type frame struct {
	spanID uint64
	file   string
}

// FromContext returns the tracer stored by WithTracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// CurrentSpanID returns the innermost span opened through StartSpan, 0 at the root.
func CurrentSpanID(ctx context.Context) uint64 { return frameOf(ctx).spanID }

// CurrentFile returns the input file being expanded under ctx, "" outside any.
func CurrentFile(ctx context.Context) string { return frameOf(ctx).file }

func frameOf(ctx context.Context) frame {
	if ctx == nil {
		return frame{}
	}
	f, _ := ctx.Value(frameKey{}).(frame) // отсутствие = корень
	return f
}

// enter computes the frame below a new span. It reports false when nothing
// changes so that callers keep the parent context.
func enter(parent frame, sp *Span, scope Scope, name string) (frame, bool) {
	next := parent
	if sp.id != 0 {
		next.spanID = sp.id
	}
	if scope == ScopeFile {
		next.file = strings.TrimPrefix(name, FileSpanPrefix)
	}
	return next, next != parent
}
