package daemon

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Tacitus-SL/process-browser/config"
	"github.com/Tacitus-SL/process-browser/model"
	"github.com/Tacitus-SL/process-browser/monitor"
)

// alertCooldown is how long a pid stays quiet after an alert so a
// runaway process does not flood the log every tick.
const alertCooldown = 60 * time.Second

// Daemon is the headless watch mode: the same snapshot engine as the
// TUI, but threshold breaches go to the structured log instead of a
// table.
type Daemon struct {
	collector  *monitor.Collector
	cfg        config.Settings
	logger     *zap.Logger
	lastAlerts map[int]time.Time
	now        func() time.Time
}

func New(cfg config.Settings, logger *zap.Logger) *Daemon {
	return &Daemon{
		collector:  monitor.NewCollector(cfg.Capacity),
		cfg:        cfg,
		logger:     logger,
		lastAlerts: make(map[int]time.Time),
		now:        time.Now,
	}
}

// Run watches until ctx is done. Cycle failures are logged and the
// loop keeps going with the previous data.
func (d *Daemon) Run(ctx context.Context) error {
	d.logger.Info("watch mode started",
		zap.Duration("interval", d.cfg.Interval),
		zap.Float64("cpu_threshold", d.cfg.CPUThreshold),
		zap.Float64("mem_threshold", d.cfg.MemThreshold),
	)

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	// Prime tick baselines so the first checked cycle has real deltas.
	if _, err := d.collector.Refresh(); err != nil {
		d.logger.Warn("initial refresh failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			snap, err := d.collector.Refresh()
			if err != nil {
				d.logger.Warn("refresh failed", zap.Error(err))
				continue
			}
			for i := range snap {
				d.check(&snap[i])
			}
		}
	}
}

func (d *Daemon) check(r *model.ProcessRecord) {
	now := d.now()
	if t, ok := d.lastAlerts[r.Pid]; ok && now.Sub(t) < alertCooldown {
		return
	}

	switch {
	case r.CPUPercent >= d.cfg.CPUThreshold:
		d.logger.Warn("high CPU",
			zap.Int("pid", r.Pid),
			zap.String("name", r.Name),
			zap.String("owner", r.Owner),
			zap.Float64("cpu_percent", r.CPUPercent),
		)
		d.lastAlerts[r.Pid] = now

	case r.MemPercent >= d.cfg.MemThreshold:
		d.logger.Warn("high memory",
			zap.Int("pid", r.Pid),
			zap.String("name", r.Name),
			zap.String("owner", r.Owner),
			zap.Float64("mem_percent", r.MemPercent),
			zap.Int64("resident_kb", r.ResidentKB),
		)
		d.lastAlerts[r.Pid] = now
	}
}
