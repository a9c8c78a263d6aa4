package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/Tacitus-SL/process-browser/config"
	"github.com/Tacitus-SL/process-browser/daemon"
	"github.com/Tacitus-SL/process-browser/model"
	"github.com/Tacitus-SL/process-browser/monitor"
	"github.com/Tacitus-SL/process-browser/proc"
	"github.com/Tacitus-SL/process-browser/ui"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "process-browser",
		Short: "Interactive process browser for Linux",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
		SilenceUsage: true,
	}
	addSettingsFlags(root)

	tui := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive monitor (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}
	addSettingsFlags(tui)

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Headless mode: log processes over CPU/memory thresholds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd)
		},
	}
	addSettingsFlags(watch)

	root.AddCommand(tui, watch, &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("interval", 0, "refresh interval (default 1.5s)")
	cmd.Flags().Int("capacity", 0, "snapshot capacity (default 2048)")
	cmd.Flags().Float64("cpu-threshold", 0, "CPU% alert threshold for watch mode")
	cmd.Flags().Float64("mem-threshold", 0, "MEM% alert threshold for watch mode")
	cmd.Flags().String("log-level", "", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func runTUI(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; use 'watch' for headless operation")
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	model.DefaultHZ = proc.DetectHZ()

	collector := monitor.NewCollector(cfg.Capacity)
	engine := monitor.NewEngine(collector, cfg.Interval, logger)

	program := tea.NewProgram(ui.NewModel(engine), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go engine.Run(ctx, func(stats monitor.Stats) {
		ui.SendData(program, stats)
	})

	_, err = program.Run()
	return err
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := daemon.New(cfg, logger).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
