package observ

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerMergesPhasesByName(t *testing.T) {
	tm := NewTimer()
	tm.Add("parse", 2*time.Millisecond, "")
	tm.Add("generate", time.Millisecond, "3 aliases")
	tm.Add("parse", 3*time.Millisecond, "")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "parse" || math.Abs(r.Phases[0].DurationMS-5.0) > 1e-9 {
		t.Errorf("first phase = %+v", r.Phases[0])
	}
	if r.Phases[1].Note != "3 aliases" {
		t.Errorf("note = %q", r.Phases[1].Note)
	}
	if math.Abs(r.TotalMS-6.0) > 1e-9 {
		t.Errorf("total = %v, want 6", r.TotalMS)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.Track("lex")("ok")
	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") {
		t.Fatalf("summary header missing:\n%s", s)
	}
	for _, want := range []string{"lex", "// ok", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary lacks %q:\n%s", want, s)
		}
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("file")("")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 1 {
		t.Fatalf("expected one merged phase, got %d", n)
	}
}

func TestTimerNilAndBadIndex(t *testing.T) {
	var tm *Timer
	if idx := tm.Begin("x"); idx != -1 {
		t.Fatalf("nil Begin = %d", idx)
	}
	tm.End(0, "")
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}

	tm = NewTimer()
	tm.End(5, "ignored")
	if n := len(tm.Report().Phases); n != 0 {
		t.Fatalf("bad index recorded %d phases", n)
	}
}
