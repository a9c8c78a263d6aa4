package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Tacitus-SL/process-browser/model"
	"github.com/Tacitus-SL/process-browser/proc"
)

// Stats is one cycle's worth of data pushed to the presentation layer.
type Stats struct {
	Snapshot model.Snapshot
	Tasks    int
	Running  int
	Load1    float64
	Load5    float64
	Load15   float64
	Uptime   float64
}

// Engine owns the refresh cadence: a ticker at the configured interval,
// suspended while the user is typing a filter or answering a prompt,
// with an out-of-band kick for an immediate refresh right after a kill.
// All collector access happens on the Run goroutine.
type Engine struct {
	collector *Collector
	interval  time.Duration
	logger    *zap.Logger

	paused atomic.Bool
	kick   chan struct{}
}

func NewEngine(collector *Collector, interval time.Duration, logger *zap.Logger) *Engine {
	return &Engine{
		collector: collector,
		interval:  interval,
		logger:    logger,
		kick:      make(chan struct{}, 1),
	}
}

// Pause suspends refreshes until Resume. Pausing while a refresh is in
// flight lets that refresh finish; only subsequent ticks are skipped.
func (e *Engine) Pause()  { e.paused.Store(true) }
func (e *Engine) Resume() { e.paused.Store(false) }

// Kick requests one immediate refresh, bypassing both the ticker and
// the pause flag. Used after a termination so the table catches up
// without waiting a full interval.
func (e *Engine) Kick() {
	select {
	case e.kick <- struct{}{}:
	default:
	}
}

// Run drives the collect loop until ctx is done, handing each cycle's
// stats to publish. On a cycle-level failure the previous data stays
// with the presentation layer: nothing is published.
func (e *Engine) Run(ctx context.Context, publish func(Stats)) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	// First cycle fires immediately so the table is not empty for a
	// whole interval; with no baselines yet its percentages are 0.
	e.cycle(publish)

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if e.paused.Load() {
				continue
			}
			e.cycle(publish)

		case <-e.kick:
			e.cycle(publish)
		}
	}
}

func (e *Engine) cycle(publish func(Stats)) {
	snap, err := e.collector.Refresh()
	if err != nil {
		e.logger.Warn("refresh failed, keeping previous snapshot", zap.Error(err))
		return
	}

	running := 0
	for i := range snap {
		if snap[i].State == 'R' {
			running++
		}
	}

	l1, l5, l15 := proc.ReadLoadavg(e.collector.root)

	publish(Stats{
		Snapshot: snap,
		Tasks:    len(snap),
		Running:  running,
		Load1:    l1,
		Load5:    l5,
		Load15:   l15,
		Uptime:   proc.ReadUptime(e.collector.root),
	})
}
