package observ

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("discover")
	tm.End(idx, "3 files")
	tm.End(42, "ignored")

	r := tm.Report()
	require.Len(t, r.Phases, 1)
	assert.Equal(t, "discover", r.Phases[0].Name)
	assert.Equal(t, "3 files", r.Phases[0].Note)
	assert.Contains(t, tm.Summary(), "// 3 files")
}

func TestTimerChecksConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.AddCheck("Tab", time.Millisecond)
			tm.AddCheck("CodeLint", 3*time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	require.Len(t, r.Checks, 2)
	assert.Equal(t, "CodeLint", r.Checks[0].Name)
	assert.InDelta(t, 24.0, r.Checks[0].DurationMS, 0.001)
	assert.InDelta(t, 8.0, r.Checks[1].DurationMS, 0.001)
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.AddCheck("x", time.Second)
	assert.Equal(t, Report{}, tm.Report())
}
