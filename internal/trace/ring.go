package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory so that a crash report
// can show what the run was doing. Events are stored oldest first once the
// buffer has wrapped.
type RingTracer struct {
	mu     sync.RWMutex
	buf    []Event
	next   int
	filled bool
	level  Level
}

// NewRingTracer keeps up to size events; size <= 0 means 4096.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = 4096
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = *ev
	t.buf[t.next].Seq = NextSeq()
	t.next++
	if t.next == len(t.buf) {
		t.next, t.filled = 0, true
	}
}

// Snapshot copies the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	return t.collect(func(*Event) bool { return true })
}

// SnapshotFile copies the stored events of one template, oldest first.
func (t *RingTracer) SnapshotFile(path string) []Event {
	return t.collect(func(ev *Event) bool { return ev.File == path })
}

// LastFile is the template of the newest event that belongs to one, or ""
// when the run never reached a template.
func (t *RingTracer) LastFile() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := len(t.buf)
	count := t.next
	if t.filled {
		count = n
	}
	for i := 1; i <= count; i++ {
		ev := &t.buf[(t.next-i+n)%n]
		if ev.File != "" {
			return ev.File
		}
	}
	return ""
}

func (t *RingTracer) collect(keep func(*Event) bool) []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Event
	if t.filled {
		for i := t.next; i < len(t.buf); i++ {
			if keep(&t.buf[i]) {
				out = append(out, t.buf[i])
			}
		}
	}
	for i := 0; i < t.next; i++ {
		if keep(&t.buf[i]) {
			out = append(out, t.buf[i])
		}
	}
	return out
}

// Dump writes every stored event.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	return writeEvents(w, t.Snapshot(), format)
}

// DumpFile writes the stored events of one template.
func (t *RingTracer) DumpFile(w io.Writer, path string, format Format) error {
	return writeEvents(w, t.SnapshotFile(path), format)
}

func writeEvents(w io.Writer, events []Event, format Format) error {
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
