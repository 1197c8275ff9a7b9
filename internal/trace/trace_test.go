package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevelAndFormat(t *testing.T) {
	lvl, err := ParseLevel("Detail")
	if err != nil || lvl != LevelDetail {
		t.Fatalf("ParseLevel(Detail) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	f, err := ParseFormat("json")
	if err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]StorageMode{"stream": ModeStream, " Ring ": ModeRing, "BOTH": ModeBoth} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
		if got.String() != strings.ToLower(strings.TrimSpace(in)) {
			t.Errorf("String() = %q", got.String())
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if StorageMode(9).String() != "unknown" {
		t.Fatalf("unexpected name for unknown mode")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeItem, false},
		{LevelDebug, ScopeItem, true},
		{LevelError, ScopeDriver, false},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, file := StartSpan(ctx, ScopeFile, FileSpanPrefix+"lib.rs")
	Point(ctx, ScopeItem, "alias", "Foo")
	file.WithExtra("items", "1").WithExtra("bytes", "42").End("ok")

	lines := splitLines(buf.String())
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	for i, want := range []string{"→ file:lib.rs", "• alias (Foo)", "← file:lib.rs (ok) {bytes=42, items=1}"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[1], "file=lib.rs") {
		t.Errorf("alias point lost its file: %q", lines[1])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, pass := StartSpan(ctx, ScopePass, "parse")
	Point(ctx, ScopeItem, "alias", "filtered out")
	pass.End("")

	lines := splitLines(buf.String())
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	var begin, end map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &begin); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatal(err)
	}
	if begin["kind"] != "begin" || begin["scope"] != "pass" || end["kind"] != "end" {
		t.Fatalf("unexpected events: %v / %v", begin, end)
	}
	if begin["span_id"] != end["span_id"] {
		t.Fatalf("span ids differ: %v vs %v", begin["span_id"], end["span_id"])
	}
}

func TestStartSpanParents(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := StartSpan(ctx, ScopeDriver, "expand")
	_, inner := StartSpan(ctx, ScopeFile, FileSpanPrefix+"a.ta")
	inner.End("")
	outer.End("")

	evs := ring.Snapshot()
	if len(evs) != 4 {
		t.Fatalf("expected 4 events, got %d", len(evs))
	}
	if evs[0].ParentID != 0 {
		t.Errorf("root span has parent %d", evs[0].ParentID)
	}
	if evs[1].ParentID != outer.ID() {
		t.Errorf("inner parent = %d, want %d", evs[1].ParentID, outer.ID())
	}
	if evs[1].SpanID != evs[2].SpanID {
		t.Errorf("inner begin/end ids differ")
	}
}

func TestStartSpanDisabled(t *testing.T) {
	ctx := context.Background()
	ctx2, sp := StartSpan(ctx, ScopePass, "parse")
	if ctx2 != ctx {
		t.Errorf("disabled pass span changed the context")
	}
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Errorf("disabled span recorded something")
	}
}

func TestCurrentFileSurvivesFilteredSpans(t *testing.T) {
	// на уровне phase файловые спаны не пишутся, но файл в контексте остаётся
	ring := NewRingTracer(16, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	if CurrentFile(ctx) != "" || CurrentSpanID(ctx) != 0 {
		t.Fatalf("root context carries a frame")
	}

	fctx, fsp := StartSpan(ctx, ScopeFile, FileSpanPrefix+"src/lib.rs")
	if fsp.ID() != 0 {
		t.Fatalf("file span should be filtered at phase level")
	}
	pctx, psp := StartSpan(fctx, ScopePass, "parse")
	if got := CurrentFile(pctx); got != "src/lib.rs" {
		t.Fatalf("CurrentFile = %q", got)
	}
	if CurrentSpanID(pctx) != psp.ID() || psp.ID() == 0 {
		t.Fatalf("CurrentSpanID = %d, want %d", CurrentSpanID(pctx), psp.ID())
	}
	if CurrentFile(ctx) != "" {
		t.Fatalf("parent context was modified")
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeItem, Name: name})
	}

	evs := ring.Snapshot()
	if len(evs) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evs))
	}
	if got := evs[0].Name + evs[1].Name + evs[2].Name; got != "cde" {
		t.Fatalf("ring kept %q, want cde", got)
	}
	if evs[0].Seq >= evs[2].Seq {
		t.Fatalf("sequence numbers are not increasing")
	}
}

func TestRingDumpOnPanic(t *testing.T) {
	ring := NewRingTracer(8, LevelDebug)
	ring.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: "file:broken.rs"})

	var buf bytes.Buffer
	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Fatalf("recovered %v, want boom", r)
			}
		}()
		defer ring.DumpOnPanic(&buf)
		panic("boom")
	}()
	if !strings.Contains(buf.String(), "panic: boom") || !strings.Contains(buf.String(), "file:broken.rs") {
		t.Fatalf("dump missing panic or events:\n%s", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelPhase)
	m := NewMultiTracer(LevelDebug, a, b)

	m.Emit(&Event{Kind: KindPoint, Scope: ScopeItem, Name: "x"})
	m.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: "y"})

	if len(a.Snapshot()) != 2 || len(b.Snapshot()) != 1 {
		t.Fatalf("fan-out: a=%d b=%d", len(a.Snapshot()), len(b.Snapshot()))
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewConfig(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off config: %v, enabled=%v", err, tr.Enabled())
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*MultiTracer); !ok || !tr.Enabled() {
		t.Fatalf("ModeBoth built %T", tr)
	}

	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(9)}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestNewCreatesTraceDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.jsonl")
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	_, sp := StartSpan(WithTracer(context.Background(), tr), ScopePass, "parse")
	sp.End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if got := outputFormat(Config{OutputPath: path}); got != FormatNDJSON {
		t.Fatalf("format for .jsonl = %v", got)
	}
}

func TestRingOf(t *testing.T) {
	ring := NewRingTracer(4, LevelPhase)
	if RingOf(ring) != ring {
		t.Errorf("RingOf(ring) lost the ring")
	}
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText), ring)
	if RingOf(multi) != ring {
		t.Errorf("RingOf(multi) lost the ring")
	}
	if RingOf(Nop) != nil {
		t.Errorf("RingOf(Nop) should be nil")
	}

	tr, err := New(Config{Level: LevelPhase, Mode: ModeRing, Heartbeat: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()
	if _, ok := tr.(*Heartbeat); !ok {
		t.Fatalf("heartbeat config built %T", tr)
	}
	if RingOf(tr) == nil {
		t.Errorf("RingOf(heartbeat) lost the ring")
	}
}

func TestHeartbeatReportsOpenFilesAndAlias(t *testing.T) {
	ring := NewRingTracer(64, LevelDebug)
	h := StartHeartbeat(ring, time.Hour)
	if h == nil {
		t.Fatal("heartbeat did not start")
	}
	defer h.Stop()
	ctx := WithTracer(context.Background(), h)

	actx, a := StartSpan(ctx, ScopeFile, FileSpanPrefix+"b.rs")
	_, b := StartSpan(ctx, ScopeFile, FileSpanPrefix+"a.ta")
	Point(actx, ScopeItem, "alias", "Foo")

	if got := h.beat(3).Detail; got != "#3 files=a.ta,b.rs alias=Foo" {
		t.Fatalf("beat detail = %q", got)
	}
	b.End("")
	a.End("")
	files, alias := h.Activity()
	if len(files) != 0 || alias != "Foo" {
		t.Fatalf("after close: files=%v alias=%q", files, alias)
	}
	if got := h.beat(4).Detail; got != "#4 idle alias=Foo" {
		t.Fatalf("idle beat detail = %q", got)
	}
}

func TestHeartbeatBeatsUntilStopped(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for {
		beats := 0
		for _, ev := range ring.Snapshot() {
			if ev.Kind == KindHeartbeat {
				beats++
			}
		}
		if beats > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no heartbeat emitted")
		}
		time.Sleep(time.Millisecond)
	}

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	h.Stop()
	n := len(ring.Snapshot())
	time.Sleep(10 * time.Millisecond)
	if len(ring.Snapshot()) != n {
		t.Fatalf("heartbeat kept beating after Close")
	}

	if StartHeartbeat(Nop, time.Millisecond) != nil || StartHeartbeat(ring, 0) != nil {
		t.Fatalf("heartbeat started for a disabled tracer or zero interval")
	}
}
