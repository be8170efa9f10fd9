package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		require.NoError(t, err)
		assert.Equal(t, s, l.String())
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelScopes(t *testing.T) {
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFile))
	assert.False(t, LevelDetail.ShouldEmit(ScopeNode))
	assert.True(t, LevelDebug.ShouldEmit(ScopeNode))
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := Start(ctx, ScopePass, "lint")
	_, inner := Start(ctx, ScopeFile, "file:a.liquid")
	inner.WithExtra("issues", "2").End("")
	outer.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	var ev jsonEvent
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &ev))
	assert.Equal(t, "end", ev.Kind)
	assert.Equal(t, "file", ev.Scope)
	assert.Equal(t, outer.ID(), ev.ParentID)
	assert.Equal(t, "2", ev.Extra["issues"])
}

func TestStreamFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(tr, ScopeNode, "check:Tab", 0).End("")
	assert.Empty(t, buf.String())

	Begin(tr, ScopePass, "discover", 0).End("3 files")
	assert.Contains(t, buf.String(), "→ discover")
	assert.Contains(t, buf.String(), "← discover (3 files)")
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeNode, name, "")
	}
	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "b", snap[0].Name)
	assert.Equal(t, "c", snap[1].Name)

	var buf bytes.Buffer
	require.NoError(t, r.Dump(&buf, FormatText))
	assert.Contains(t, buf.String(), "• c")
}

func TestNewErrorLevelIsRingOnly(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Mode: ModeStream, Output: &buf})
	require.NoError(t, err)
	_, ok := Ring(tr)
	assert.True(t, ok)
	Point(tr, ScopePass, "x", "")
	assert.Empty(t, buf.String())
}

func TestNopFromEmptyContext(t *testing.T) {
	assert.Equal(t, Nop, FromContext(context.Background()))
	ctx, s := Start(context.Background(), ScopeDriver, "run")
	assert.Equal(t, uint64(0), s.ID())
	assert.Equal(t, uint64(0), CurrentSpan(ctx))
	assert.Equal(t, "", FileFrom(ctx))
}

func TestRingSnapshotsPerTemplate(t *testing.T) {
	r := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	ctx, run := Start(ctx, ScopePass, "lint")

	for _, path := range []string{"views/a.liquid", "views/b.liquid"} {
		fctx, file := Start(WithFile(ctx, path), ScopeFile, "file:"+path)
		_, check := Start(fctx, ScopeNode, "check:Tab")
		check.End("0 issues")
		PointCtx(fctx, ScopeFile, "cache-write-failed", "disk full")
		file.End("")
	}
	run.End("")

	assert.Equal(t, "views/b.liquid", r.LastFile())
	a := r.SnapshotFile("views/a.liquid")
	require.Len(t, a, 5)
	assert.Equal(t, "file:views/a.liquid", a[0].Name)
	assert.Equal(t, "check:Tab", a[1].Name)
	assert.Equal(t, KindPoint, a[3].Kind)
	assert.Len(t, r.Snapshot(), 12)

	var buf bytes.Buffer
	require.NoError(t, r.DumpFile(&buf, "views/b.liquid", FormatText))
	assert.Contains(t, buf.String(), "check:Tab (0 issues) @views/b.liquid")
	assert.Contains(t, buf.String(), "cache-write-failed (disk full) @views/b.liquid")
	assert.NotContains(t, buf.String(), "views/a.liquid")
}

func TestRingLastFileAfterWrap(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	assert.Equal(t, "", r.LastFile())
	ctx := WithTracer(WithFile(context.Background(), "x.liquid"), r)
	PointCtx(ctx, ScopeNode, "one", "")
	for _, name := range []string{"two", "three", "four"} {
		Point(r, ScopeNode, name, "")
	}
	// событие x.liquid вытеснено
	assert.Equal(t, "", r.LastFile())
	PointCtx(ctx, ScopeNode, "five", "")
	assert.Equal(t, "x.liquid", r.LastFile())
	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "three", snap[0].Name)
	assert.Equal(t, "five", snap[2].Name)
}
