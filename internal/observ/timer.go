// Package observ measures where a lint run spends its time (--timings).
package observ

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Phase records the duration of one run phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks run phases plus per-check totals accumulated from workers.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	checks map[string]time.Duration
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), checks: make(map[string]time.Duration)}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// AddCheck adds d to the total of the named check. Safe for concurrent use.
func (t *Timer) AddCheck(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.checks[name] += d
	t.mu.Unlock()
}

// PhaseReport is a serialisable phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
	Checks  []PhaseReport `json:"checks,omitempty"`
}

// Report snapshots phases and per-check totals, slowest check first.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var report Report
	var total time.Duration
	for _, phase := range t.phases {
		total += phase.Dur
		report.Phases = append(report.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		})
	}
	report.TotalMS = durationToMillis(total)

	for name, d := range t.checks {
		report.Checks = append(report.Checks, PhaseReport{Name: name, DurationMS: durationToMillis(d)})
	}
	sort.Slice(report.Checks, func(i, j int) bool {
		if report.Checks[i].DurationMS != report.Checks[j].DurationMS {
			return report.Checks[i].DurationMS > report.Checks[j].DurationMS
		}
		return report.Checks[i].Name < report.Checks[j].Name
	})
	return report
}

// Summary renders the report for stderr.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-30s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-30s %9.2f ms\n", "total", report.TotalMS)
	if len(report.Checks) > 0 {
		b.WriteString("checks (cpu time, all files):\n")
		for _, c := range report.Checks {
			fmt.Fprintf(&b, "  %-30s %9.2f ms\n", c.Name, c.DurationMS)
		}
	}
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
