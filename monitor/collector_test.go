package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tacitus-SL/process-browser/model"
)

type fakeProc struct {
	pid   int
	comm  string
	ticks uint64
	rssKB int64
}

// writeProcTree lays out a synthetic /proc with one aggregate cpu line
// carrying systemTicks in its user column and one directory per fake
// process.
func writeProcTree(t *testing.T, root string, systemTicks uint64, procs []fakeProc) {
	t.Helper()

	cpuLine := fmt.Sprintf("cpu  %d 0 0 0 0 0 0 0 0 0\n", systemTicks)
	require.NoError(t, os.WriteFile(filepath.Join(root, "stat"), []byte(cpuLine), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "meminfo"),
		[]byte("MemTotal:       8000000 kB\n"), 0o644))

	for _, p := range procs {
		dir := filepath.Join(root, strconv.Itoa(p.pid))
		require.NoError(t, os.MkdirAll(dir, 0o755))

		require.NoError(t, os.WriteFile(filepath.Join(dir, "comm"),
			[]byte(p.comm+"\n"), 0o644))

		status := fmt.Sprintf("Name:\t%s\nUid:\t1000\t1000\t1000\t1000\nVmRSS:\t%d kB\n",
			p.comm, p.rssKB)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "status"),
			[]byte(status), 0o644))

		// utime carries all the ticks, stime stays 0.
		stat := fmt.Sprintf("%d (%s) S 1 %d %d 0 -1 4194304 0 0 0 0 %d 0 0 0 20 0 1 0 100 10000 %d\n",
			p.pid, p.comm, p.pid, p.pid, p.ticks, p.rssKB/4)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"),
			[]byte(stat), 0o644))
	}
}

func TestRefreshZeroSystemDeltaZeroCPU(t *testing.T) {
	root := t.TempDir()
	procs := []fakeProc{{pid: 10, comm: "worker", ticks: 100, rssKB: 512}}

	c := newCollectorAt(root, 0)

	writeProcTree(t, root, 5000, procs)
	_, err := c.Refresh()
	require.NoError(t, err)

	// Same system tick total: delta collapses to zero even though the
	// process accumulated ticks.
	procs[0].ticks = 400
	writeProcTree(t, root, 5000, procs)
	snap, err := c.Refresh()
	require.NoError(t, err)

	require.Len(t, snap, 1)
	assert.Zero(t, snap[0].CPUPercent)
}

func TestRefreshComputesCPUDelta(t *testing.T) {
	root := t.TempDir()
	procs := []fakeProc{{pid: 10, comm: "worker", ticks: 100, rssKB: 512}}

	c := newCollectorAt(root, 0)

	writeProcTree(t, root, 5000, procs)
	_, err := c.Refresh()
	require.NoError(t, err)

	procs[0].ticks = 150
	writeProcTree(t, root, 5100, procs)
	snap, err := c.Refresh()
	require.NoError(t, err)

	cores := runtime.NumCPU()
	if cores < 1 {
		cores = 1
	}
	want := 50.0 / 100.0 * 100.0 * float64(cores)
	if max := 100.0 * float64(cores); want > max {
		want = max
	}

	require.Len(t, snap, 1)
	assert.InDelta(t, want, snap[0].CPUPercent, 1e-9)
	assert.GreaterOrEqual(t, snap[0].CPUPercent, 0.0)
}

func TestRefreshCounterResetYieldsZeroNeverNegative(t *testing.T) {
	root := t.TempDir()
	procs := []fakeProc{{pid: 10, comm: "worker", ticks: 100, rssKB: 512}}

	c := newCollectorAt(root, 0)

	writeProcTree(t, root, 5000, procs)
	_, err := c.Refresh()
	require.NoError(t, err)

	// Reported ticks went backwards (counter reset / pid reuse).
	procs[0].ticks = 40
	writeProcTree(t, root, 5100, procs)
	snap, err := c.Refresh()
	require.NoError(t, err)

	require.Len(t, snap, 1)
	assert.Zero(t, snap[0].CPUPercent)
}

func TestRefreshNoPriorHistoryZeroCPU(t *testing.T) {
	root := t.TempDir()

	c := newCollectorAt(root, 0)

	// First observation of the pid was zero ticks: no usable prior,
	// the second cycle must still report 0.
	procs := []fakeProc{{pid: 10, comm: "worker", ticks: 0, rssKB: 512}}
	writeProcTree(t, root, 5000, procs)
	_, err := c.Refresh()
	require.NoError(t, err)

	procs[0].ticks = 50
	writeProcTree(t, root, 5100, procs)
	snap, err := c.Refresh()
	require.NoError(t, err)

	require.Len(t, snap, 1)
	assert.Zero(t, snap[0].CPUPercent)
}

func TestRefreshCapacityTruncates(t *testing.T) {
	root := t.TempDir()
	var procs []fakeProc
	for pid := 100; pid < 110; pid++ {
		procs = append(procs, fakeProc{pid: pid, comm: "p", ticks: 1, rssKB: 4})
	}
	writeProcTree(t, root, 5000, procs)

	c := newCollectorAt(root, 3)

	snap, err := c.Refresh()
	require.NoError(t, err)
	assert.Len(t, snap, 3)
}

func TestRefreshVanishedProcessDegradesToSentinels(t *testing.T) {
	root := t.TempDir()
	writeProcTree(t, root, 5000, []fakeProc{{pid: 10, comm: "worker", ticks: 5, rssKB: 256}})

	// A pid directory with no readable files: the process exited
	// between the listing and the per-file reads.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "77"), 0o755))

	c := newCollectorAt(root, 0)
	snap, err := c.Refresh()
	require.NoError(t, err)

	require.Len(t, snap, 2)
	var ghost *model.ProcessRecord
	for i := range snap {
		if snap[i].Pid == 77 {
			ghost = &snap[i]
		}
	}
	require.NotNil(t, ghost)
	assert.Equal(t, model.UnknownName, ghost.Name)
	assert.Zero(t, ghost.ResidentKB)
	assert.Zero(t, ghost.CPUPercent)
}

func TestRefreshListingFailureKeepsPreviousSnapshot(t *testing.T) {
	root := t.TempDir()
	writeProcTree(t, root, 5000, []fakeProc{{pid: 10, comm: "worker", ticks: 5, rssKB: 256}})

	c := newCollectorAt(root, 0)
	first, err := c.Refresh()
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, os.RemoveAll(root))

	snap, err := c.Refresh()
	assert.Error(t, err)
	assert.Equal(t, first, snap)
	assert.Equal(t, first, c.Last())
}

func TestRefreshPidsUniqueAndFieldsPopulated(t *testing.T) {
	root := t.TempDir()
	writeProcTree(t, root, 5000, []fakeProc{
		{pid: 10, comm: "worker", ticks: 5, rssKB: 256},
		{pid: 20, comm: "helper", ticks: 9, rssKB: 1024},
	})

	c := newCollectorAt(root, 0)
	snap, err := c.Refresh()
	require.NoError(t, err)
	require.Len(t, snap, 2)

	seen := map[int]bool{}
	for _, r := range snap {
		assert.False(t, seen[r.Pid], "duplicate pid %d", r.Pid)
		seen[r.Pid] = true
		assert.Positive(t, r.Pid)
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Owner)
		assert.GreaterOrEqual(t, r.ResidentKB, int64(0))
	}
}

func TestResetClearsHistoryAndSnapshot(t *testing.T) {
	root := t.TempDir()
	procs := []fakeProc{{pid: 10, comm: "worker", ticks: 100, rssKB: 512}}
	writeProcTree(t, root, 5000, procs)

	c := newCollectorAt(root, 0)
	_, err := c.Refresh()
	require.NoError(t, err)
	require.NotNil(t, c.Last())

	c.Reset()
	assert.Nil(t, c.Last())

	// Post-reset refresh behaves like a first call: no baseline, so
	// every percentage is zero.
	procs[0].ticks = 500
	writeProcTree(t, root, 9000, procs)
	snap, err := c.Refresh()
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Zero(t, snap[0].CPUPercent)
}

func TestRefreshLiveSystem(t *testing.T) {
	if _, err := os.Stat(DefaultProcRoot); err != nil {
		t.Skip("no /proc on this system")
	}

	c := NewCollector(model.DefaultCapacity)
	snap, err := c.Refresh()
	require.NoError(t, err)
	require.NotEmpty(t, snap)

	assert.Positive(t, snap[0].Pid)
	assert.LessOrEqual(t, len(snap), model.DefaultCapacity)
}
