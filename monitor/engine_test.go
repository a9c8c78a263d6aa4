package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func startTestEngine(t *testing.T) (*Engine, <-chan Stats) {
	t.Helper()

	root := t.TempDir()
	writeProcTree(t, root, 5000, []fakeProc{{pid: 10, comm: "worker", ticks: 5, rssKB: 128}})

	e := NewEngine(newCollectorAt(root, 0), 20*time.Millisecond, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	out := make(chan Stats, 64)
	go e.Run(ctx, func(s Stats) { out <- s })
	return e, out
}

func waitForStats(t *testing.T, out <-chan Stats) Stats {
	t.Helper()
	select {
	case s := <-out:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no stats published in time")
		return Stats{}
	}
}

func TestEnginePublishesOnTick(t *testing.T) {
	_, out := startTestEngine(t)

	s := waitForStats(t, out)
	require.Len(t, s.Snapshot, 1)
	assert.Equal(t, 10, s.Snapshot[0].Pid)
	assert.Equal(t, 1, s.Tasks)
}

func TestEnginePauseSuspendsRefresh(t *testing.T) {
	e, out := startTestEngine(t)

	waitForStats(t, out)
	e.Pause()

	// Drain anything already in flight, then expect silence.
	deadline := time.After(150 * time.Millisecond)
	drained := false
	for !drained {
		select {
		case <-out:
		case <-deadline:
			drained = true
		}
	}

	select {
	case <-out:
		t.Fatal("engine published while paused")
	case <-time.After(150 * time.Millisecond):
	}

	e.Resume()
	waitForStats(t, out)
}

func TestEngineKickBypassesPause(t *testing.T) {
	e, out := startTestEngine(t)

	waitForStats(t, out)
	e.Pause()
	time.Sleep(50 * time.Millisecond)
	for len(out) > 0 {
		<-out
	}

	e.Kick()
	waitForStats(t, out)
}
