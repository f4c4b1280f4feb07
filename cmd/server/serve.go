package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wjkennedy/jira-quake3/internal/agent"
	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/engine"
	"github.com/wjkennedy/jira-quake3/internal/infrastructure/storage"
	"github.com/wjkennedy/jira-quake3/internal/network"
	"github.com/wjkennedy/jira-quake3/internal/server"
	"github.com/wjkennedy/jira-quake3/internal/version"
	"github.com/wjkennedy/jira-quake3/pkg/clock"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

var (
	servePort      string
	serveAutopilot bool
	serveRecordDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulation headless and stream snapshots over WebSocket",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port (default 8080, env DOOM_PORT)")
	serveCmd.Flags().BoolVar(&serveAutopilot, "autopilot", true, "let the bot play while no client sends input")
	serveCmd.Flags().StringVar(&serveRecordDir, "record", "", "directory to save the input tape on shutdown")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("record") {
		cfg.Record = serveRecordDir
	}

	a, err := loadArena(cfg)
	if err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"arena":   a.Name,
		"port":    cfg.Port,
		"tick":    cfg.TickInterval().String(),
		"version": version.String(),
	}).Info("Starting arena server...")

	// 1. Ядро и рассылка
	hub := network.NewBroadcaster()
	loop := engine.NewLoop(a.NewState(), cfg, nil, clock.New())

	opts := engine.RunnerOptions{
		Interval: cfg.TickInterval(),
		Publish:  hub.Broadcast,
	}
	if serveAutopilot {
		opts.Pilot = agent.NewBot()
		opts.IdleTicks = 2 * cfg.TickRate
	}
	var tape *domain.Tape
	if cfg.Record != "" {
		tape = &domain.Tape{Arena: arenaRef(cfg, a), Timestamp: time.Now().Unix()}
		opts.Tape = tape
	}
	runner := engine.NewRunner(loop, opts)

	// 2. Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Run(ctx) })
	g.Go(func() error { return server.New(runner, hub, cfg.Port).Run(ctx) })

	err = g.Wait()
	logger.Log.Info("Shutting down...")

	if tape != nil {
		if _, saveErr := storage.NewTapeService(cfg.Record).Save(tape); saveErr != nil {
			return saveErr
		}
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Log.Info("Done.")
	return err
}
