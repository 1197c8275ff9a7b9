package trace

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Heartbeat wraps a tracer and emits a liveness event every interval naming
// the input files still open and the last alias seen. A file that stays in
// several beats in a row is the one a directory run is stuck on.
//
// Files are known only when the level lets file spans through (detail and
// debug); aliases only at debug.
type Heartbeat struct {
	Tracer
	interval time.Duration

	mu    sync.Mutex
	open  map[uint64]string // span id -> файл
	alias string

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartHeartbeat starts beating into t. It returns nil when t is disabled or
// interval is not positive.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		Tracer:   t,
		interval: interval,
		open:     make(map[uint64]string),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

// Emit records file and alias activity, then forwards ev.
func (h *Heartbeat) Emit(ev *Event) {
	h.observe(ev)
	h.Tracer.Emit(ev)
}

func (h *Heartbeat) observe(ev *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case ev.Scope == ScopeFile && ev.Kind == KindSpanBegin:
		h.open[ev.SpanID] = strings.TrimPrefix(ev.Name, FileSpanPrefix)
	case ev.Scope == ScopeFile && ev.Kind == KindSpanEnd:
		delete(h.open, ev.SpanID)
	case ev.Scope == ScopeItem && ev.Kind == KindPoint:
		h.alias = ev.Detail
	}
}

// Activity returns the open files in order and the last alias seen.
func (h *Heartbeat) Activity() (files []string, alias string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	files = make([]string, 0, len(h.open))
	for _, f := range h.open {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, h.alias
}

func (h *Heartbeat) beat(n uint64) *Event {
	files, alias := h.Activity()
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d", n)
	if len(files) == 0 {
		sb.WriteString(" idle")
	} else {
		sb.WriteString(" files=")
		sb.WriteString(strings.Join(files, ","))
	}
	if alias != "" {
		sb.WriteString(" alias=")
		sb.WriteString(alias)
	}
	return &Event{
		Time:   time.Now(),
		Seq:    NextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		GID:    getGoroutineID(),
		Name:   "heartbeat",
		Detail: sb.String(),
	}
}

func (h *Heartbeat) run() {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for n := uint64(1); ; n++ {
		select {
		case <-ticker.C:
			h.Tracer.Emit(h.beat(n))
		case <-h.stop:
			return
		}
	}
}

// Stop ends the beats and waits for the goroutine; safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() {
		close(h.stop)
		<-h.done
	})
}

// Close stops the beats and closes the wrapped tracer.
func (h *Heartbeat) Close() error {
	h.Stop()
	return h.Tracer.Close()
}
