package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidlint/internal/runner"
)

func feed(m *progressModel, events ...runner.Event) {
	for _, ev := range events {
		m.Update(eventMsg(ev))
	}
}

func TestProgressTracksFiles(t *testing.T) {
	m := NewProgressModel("linting", nil).(*progressModel)
	feed(m,
		runner.Event{File: "a.liquid", Stage: runner.StageLoad, Status: runner.StatusQueued},
		runner.Event{File: "b.liquid", Stage: runner.StageLoad, Status: runner.StatusQueued},
		runner.Event{File: "a.liquid", Stage: runner.StageLint, Status: runner.StatusWorking},
	)
	require.Len(t, m.items, 2)
	assert.Equal(t, "linting", m.items[0].status)
	assert.InDelta(t, 0.25, m.percent(), 1e-9)

	feed(m,
		runner.Event{File: "a.liquid", Stage: runner.StageLint, Status: runner.StatusDone, Issues: 3},
		runner.Event{File: "b.liquid", Stage: runner.StageLint, Status: runner.StatusCached, Issues: 1},
	)
	assert.Equal(t, 2, m.finished())
	assert.Equal(t, 4, m.issues)
	assert.InDelta(t, 1.0, m.percent(), 1e-9)

	view := m.View()
	assert.Contains(t, view, "2/2 files, 4 issues")
	assert.Contains(t, view, "a.liquid (3)")
}

func TestProgressHidesCleanFilesWhenCrowded(t *testing.T) {
	m := NewProgressModel("linting", nil).(*progressModel)
	for i := 0; i < maxRows+5; i++ {
		feed(m, runner.Event{File: string(rune('a'+i)) + ".liquid", Stage: runner.StageLint, Status: runner.StatusDone})
	}
	feed(m, runner.Event{File: "z.liquid", Stage: runner.StageLint, Status: runner.StatusError, Issues: 1})
	view := m.View()
	assert.Contains(t, view, "z.liquid (1)")
	assert.NotContains(t, view, "a.liquid")
	assert.Contains(t, view, "more")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "app/vi...", truncate("app/views/index.liquid", 9))
	assert.Equal(t, "ap", truncate("app", 2))
	assert.Equal(t, "views/...", truncate("views/shared/nav.liquid", 9))
	assert.Equal(t, 9, runewidth.StringWidth(truncate("views/shared/nav.liquid", 9)))
}
