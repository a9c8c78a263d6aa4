package monitor

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/Tacitus-SL/process-browser/model"
	"github.com/Tacitus-SL/process-browser/proc"
)

// DefaultProcRoot is the process-information source on a live system.
const DefaultProcRoot = "/proc"

// Collector builds process snapshots from the /proc filesystem and
// keeps the cross-cycle state needed for delta-based CPU accounting:
// a pid → last-observed-ticks history and the last system tick total.
// A Collector is single-writer: exactly one goroutine may call Refresh
// at a time.
type Collector struct {
	root     string
	capacity int

	history    map[int]uint64
	prevSystem uint64

	last model.Snapshot
}

// NewCollector returns a collector over the live /proc with the given
// snapshot capacity. Capacity values below 1 fall back to the default.
func NewCollector(capacity int) *Collector {
	return newCollectorAt(DefaultProcRoot, capacity)
}

func newCollectorAt(root string, capacity int) *Collector {
	if capacity < 1 {
		capacity = model.DefaultCapacity
	}
	return &Collector{
		root:     root,
		capacity: capacity,
		history:  make(map[int]uint64),
	}
}

// Reset clears the CPU history, the system tick baseline and the
// retained snapshot, as if the collector had just been created.
func (c *Collector) Reset() {
	c.history = make(map[int]uint64)
	c.prevSystem = 0
	c.last = nil
}

// Last returns the snapshot produced by the most recent successful
// Refresh, nil before the first one.
func (c *Collector) Last() model.Snapshot {
	return c.last
}

// Refresh enumerates the process namespace and returns a fresh
// snapshot. Per-process read failures (the process exited mid-scan, or
// permission was denied) degrade to defaults and never abort the
// cycle; only an unreadable listing fails the refresh, in which case
// the previous snapshot is returned alongside the error.
func (c *Collector) Refresh() (model.Snapshot, error) {
	curSystem := proc.ReadSystemTicks(c.root)
	var systemDelta uint64
	if c.prevSystem > 0 && curSystem > c.prevSystem {
		systemDelta = curSystem - c.prevSystem
	}
	c.prevSystem = curSystem

	cores := runtime.NumCPU()
	if cores < 1 {
		cores = 1
	}

	entries, err := os.ReadDir(c.root)
	if err != nil {
		return c.last, fmt.Errorf("listing %s: %w", c.root, err)
	}

	memTotal := proc.ReadMemTotalKB(c.root)

	snap := make(model.Snapshot, 0, c.capacity)
	for _, ent := range entries {
		if len(snap) >= c.capacity {
			// Capacity reached: silently drop the remainder.
			break
		}
		if !proc.IsNumeric(ent.Name()) {
			continue
		}
		pid, _ := strconv.Atoi(ent.Name())
		snap = append(snap, c.collect(pid, systemDelta, cores, memTotal))
	}

	c.last = snap
	return snap, nil
}

// collect reads one process. Every read is best effort: a vanished or
// unreadable pid yields a record of sentinels and zeros.
func (c *Collector) collect(pid int, systemDelta uint64, cores int, memTotalKB int64) model.ProcessRecord {
	rec := model.ProcessRecord{Pid: pid, Name: model.UnknownName}

	if comm, err := proc.ReadComm(c.root, pid); err == nil {
		rec.Name = model.TruncateName(comm)
	}

	if status, err := proc.ReadStatus(c.root, pid); err == nil {
		rec.ResidentKB = status.VmRSSKB
		rec.Owner = proc.UIDToName(status.UID)
	} else {
		rec.Owner = "0"
	}

	var ticks uint64
	if stat, err := proc.ReadStat(c.root, pid); err == nil {
		rec.State = stat.State
		ticks = stat.TotalTicks()
	}
	rec.TotalTicks = ticks

	// Delta only counts when a prior non-zero observation exists and
	// the counter did not go backwards; the new reading is stored
	// either way.
	var procDelta uint64
	if prev := c.history[pid]; prev > 0 && ticks > prev {
		procDelta = ticks - prev
	}
	c.history[pid] = ticks

	if systemDelta > 0 {
		rec.CPUPercent = float64(procDelta) / float64(systemDelta) * 100.0 * float64(cores)
		if limit := 100.0 * float64(cores); rec.CPUPercent > limit {
			rec.CPUPercent = limit
		}
	}

	if memTotalKB > 0 {
		rec.MemPercent = float64(rec.ResidentKB) * 100.0 / float64(memTotalKB)
	}

	return rec
}
