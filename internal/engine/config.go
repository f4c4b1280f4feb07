package engine

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/render"
)

// ErrInvalidConfig - конфиг не прошел проверку
var ErrInvalidConfig = errors.New("invalid config")

// ReferenceFrame - длительность эталонного кадра (60 FPS). Δt = elapsed / ReferenceFrame.
const ReferenceFrame = 16670 * time.Microsecond

// Экран по умолчанию
const (
	defaultScreenWidth  = 640
	defaultScreenHeight = 400
)

// Config хранит параметры запуска движка.
// Порядок применения: NewConfig -> YAML-файл -> окружение -> флаги CLI.
type Config struct {
	Rules domain.Rules `yaml:"rules"`

	// Проекция
	FOV     float64 `yaml:"fov"`
	Columns int     `yaml:"columns"`

	// Frame - эталонный кадр для нормализации Δt
	Frame        time.Duration `yaml:"frame"`
	ScreenWidth  int           `yaml:"screen_width"`
	ScreenHeight int           `yaml:"screen_height"`

	// TickRate - частота тиков headless-режима (раз в секунду)
	TickRate int `yaml:"tick_rate"`

	Port   string `yaml:"port"`
	Arena  string `yaml:"arena"`
	Record string `yaml:"record"`
}

// NewConfig создает конфиг по умолчанию (эталонные константы)
func NewConfig() Config {
	opts := render.DefaultOptions()
	return Config{
		Rules:        domain.DefaultRules(),
		FOV:          opts.FOV,
		Columns:      opts.Columns,
		Frame:        ReferenceFrame,
		ScreenWidth:  defaultScreenWidth,
		ScreenHeight: defaultScreenHeight,
		TickRate:     60,
		Port:         "8080",
	}
}

// LoadConfig читает YAML поверх значений по умолчанию.
// Отсутствующие в файле поля сохраняют дефолты.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv накладывает переменные окружения DOOM_PORT и DOOM_ARENA
func (c *Config) ApplyEnv() {
	if port := os.Getenv("DOOM_PORT"); port != "" {
		c.Port = port
	}
	if name := os.Getenv("DOOM_ARENA"); name != "" {
		c.Arena = name
	}
}

// Validate проверяет параметры, от которых зависит корректность кадра
func (c Config) Validate() error {
	switch {
	case c.Columns <= 0:
		return fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidConfig, c.Columns)
	case !(c.FOV > 0) || c.FOV >= math.Pi:
		return fmt.Errorf("%w: fov must be in (0, pi), got %v", ErrInvalidConfig, c.FOV)
	case c.Frame <= 0:
		return fmt.Errorf("%w: frame must be positive, got %s", ErrInvalidConfig, c.Frame)
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	case !(c.Rules.RayStep > 0) || !(c.Rules.MaxDepth > 0):
		return fmt.Errorf("%w: ray step and max depth must be positive", ErrInvalidConfig)
	}
	return nil
}

// RenderOptions - параметры проекции для рендерера
func (c Config) RenderOptions() render.Options {
	return render.Options{Columns: c.Columns, FOV: c.FOV}
}

// TickInterval - период тика headless-режима
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return ReferenceFrame
	}
	return time.Second / time.Duration(c.TickRate)
}
