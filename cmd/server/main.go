// Package main - точка входа: окно, headless-сервер, воспроизведение ленты.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wjkennedy/jira-quake3/internal/engine"
	"github.com/wjkennedy/jira-quake3/pkg/arena"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

var (
	configPath string
	arenaName  string
)

var rootCmd = &cobra.Command{
	Use:          "quake",
	Short:        "Raycasting arena engine",
	Long:         `Real-time raycasting arena: desktop window, headless spectator server and input tape replay.`,
	SilenceUsage: true,
}

func init() {
	logger.Init()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&arenaName, "arena", "", "arena file, built-in name (default e1m1) or random[:seed]")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Log.WithError(err).Error("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig: дефолты -> файл -> окружение -> флаги
func loadConfig(cmd *cobra.Command) (engine.Config, error) {
	cfg := engine.NewConfig()
	if configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(configPath); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()

	if cmd.Flags().Changed("arena") {
		cfg.Arena = arenaName
	}
	return cfg, cfg.Validate()
}

// arenaRef - ссылка на арену для ленты: путь из конфига или встроенное имя
func arenaRef(cfg engine.Config, a *arena.Arena) string {
	if cfg.Arena != "" {
		return cfg.Arena
	}
	return a.Name
}

// loadArena разрешает арену из конфига
func loadArena(cfg engine.Config) (*arena.Arena, error) {
	a, err := arena.Resolve(cfg.Arena)
	if err != nil {
		return nil, fmt.Errorf("load arena: %w", err)
	}
	return a, nil
}
