package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wjkennedy/jira-quake3/internal/engine"
	"github.com/wjkennedy/jira-quake3/internal/infrastructure/storage"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

var replayDump bool

var replayCmd = &cobra.Command{
	Use:   "replay <tape.rctp>",
	Short: "Re-run a recorded input tape on a fresh state",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayDump, "dump", false, "print the final snapshot as JSON")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tape, err := storage.NewTapeService("").Load(args[0])
	if err != nil {
		return fmt.Errorf("load tape: %w", err)
	}

	// Арена из ленты, если не задана явно
	if !cmd.Flags().Changed("arena") && cfg.Arena == "" {
		cfg.Arena = tape.Arena
	}
	a, err := loadArena(cfg)
	if err != nil {
		return err
	}

	snap := engine.Replay(a.NewState(), cfg, tape)

	logger.Log.WithFields(logrus.Fields{
		"tick":    snap.Tick,
		"health":  snap.Player.Health,
		"ammo":    snap.Player.Ammo,
		"enemies": snap.EnemyCount(),
	}).Info("Final state")

	if replayDump {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return nil
}
