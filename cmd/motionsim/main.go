// Package main is the entry point for the motion simulator. It runs a
// scenario headless and logs every phase command the behaviors emit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/config"
	"github.com/Faultbox/midgard-motion/internal/engine/animgraph"
	"github.com/Faultbox/midgard-motion/internal/game/sim"
	"github.com/Faultbox/midgard-motion/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, cfgPath, err := config.LoadWithPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logOpts := logger.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		Console:          true,
		SampleFirst:      cfg.Logging.SampleFirst,
		SampleThereafter: cfg.Logging.SampleThereafter,
	}
	if cfg.Logging.LogFile != "" {
		logOpts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Motion Simulator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Sim.Scenario == "" {
		logger.Error("no scenario given, use -scenario or sim.scenario")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runOnce(ctx, cfg); err != nil {
		logger.Error("run failed", zap.Error(err))
		if !cfg.Sim.Watch {
			os.Exit(1)
		}
	}

	if cfg.Sim.Watch {
		if err := watch(ctx, cfg, cfgPath); err != nil {
			logger.Error("watch failed", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("simulator closed normally")
}

func runOnce(ctx context.Context, cfg *config.Config) error {
	graph := animgraph.Default()
	if cfg.Sim.GraphPath != "" {
		g, err := animgraph.Load(cfg.Sim.GraphPath)
		if err != nil {
			return err
		}
		graph = g
	}

	sc, err := sim.LoadScenario(cfg.Sim.Scenario)
	if err != nil {
		return err
	}

	runner := sim.NewRunner(cfg.Motion, graph, cfg.Sim.DT())
	runner.CameraSpeed = cfg.Sim.CameraSpeed
	var last string
	runner.OnFrame = func(f sim.Frame) {
		if f.Active != last {
			logger.Info("behavior",
				zap.Int64("frame", f.Index),
				zap.String("active", f.Active))
			last = f.Active
		}
	}

	res, err := runner.Run(ctx, sc)
	if err != nil {
		return err
	}

	for _, r := range res.Phases {
		logger.Info("phase",
			zap.Float32("t", r.Time),
			zap.Int("phase", int(r.Phase)),
			zap.String("transition", r.Transition),
			zap.Int("sub_style", r.SubStyle),
			zap.Float32("param", r.Parameter),
			zap.Bool("accepted", r.Accepted))
	}
	for _, s := range res.Spells {
		logger.Info("spell", zap.Int("index", s.Index), zap.Int("cancelled", s.Cancelled))
	}
	logger.Info("scenario done",
		zap.String("scenario", res.Scenario),
		zap.Int("ticks", res.Ticks),
		zap.Stringer("stance", res.Final.Stance))
	return nil
}

// watch reruns the scenario whenever the config, scenario or graph file
// changes, until ctx is cancelled.
func watch(ctx context.Context, cfg *config.Config, cfgPath string) error {
	w, err := config.NewWatcher(cfgPath, cfg.Sim.Scenario, cfg.Sim.GraphPath)
	if err != nil {
		return err
	}
	defer w.Close()

	watchedCfg := cfgPath
	if watchedCfg != "" {
		if abs, err := filepath.Abs(watchedCfg); err == nil {
			watchedCfg = abs
		}
	}

	logger.Info("watching for changes", zap.String("config", cfgPath), zap.String("scenario", cfg.Sim.Scenario))
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Info("file changed", zap.String("path", name))
			if watchedCfg != "" && name == watchedCfg {
				next, err := config.Reload(cfgPath)
				if err != nil {
					logger.Warn("config reload failed, keeping previous", zap.Error(err))
					continue
				}
				// The watched files stay the ones given at startup.
				next.Sim.Scenario = cfg.Sim.Scenario
				next.Sim.GraphPath = cfg.Sim.GraphPath
				next.Sim.Watch = true
				cfg = next
			}
			if err := runOnce(ctx, cfg); err != nil {
				logger.Error("run failed", zap.Error(err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}
