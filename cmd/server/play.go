package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/host"
	"github.com/wjkennedy/jira-quake3/internal/infrastructure/storage"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

var playRecordDir string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long:  `WASD/arrows move and turn, space fires, 1-7 select weapon, P pauses, R resets, Esc quits.`,
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playRecordDir, "record", "", "directory to save the input tape on exit")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("record") {
		cfg.Record = playRecordDir
	}

	a, err := loadArena(cfg)
	if err != nil {
		return err
	}

	var tape *domain.Tape
	if cfg.Record != "" {
		tape = &domain.Tape{Arena: arenaRef(cfg, a), Timestamp: time.Now().Unix()}
	}

	game := host.NewGame(a.NewState(), cfg, nil, tape)
	if err := host.Run(game, "quake - "+a.Name); err != nil {
		return err
	}

	if tape != nil {
		if _, err := storage.NewTapeService(cfg.Record).Save(tape); err != nil {
			return err
		}
	}
	logger.Log.Info("Bye.")
	return nil
}
