package arena

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// LoadFile читает арену из файла: .yaml/.yml - описание Definition, иначе текстовая карта.
func LoadFile(path string) (*Arena, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read arena %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var a *Arena
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		a, err = ParseYAML(data)
		if a != nil && a.Name == "unnamed" {
			a.Name = base
		}
	default:
		a, err = Parse(base, string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("arena %s: %w", path, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "arena_loader",
		"arena":     a.Name,
		"width":     a.Grid.Width(),
		"height":    a.Grid.Height(),
		"spawns":    len(a.Grid.Spawns()),
	}).Info("Arena loaded")
	return a, nil
}

// ParseYAML разбирает YAML-описание арены
func ParseYAML(data []byte) (*Arena, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return def.Build()
}

// Resolve возвращает встроенную арену для пустого имени или DefaultName,
// процедурную для "random[:seed]", иначе читает файл
func Resolve(nameOrPath string) (*Arena, error) {
	if nameOrPath == "" || nameOrPath == DefaultName {
		return Default(), nil
	}
	seed, generated, err := ParseGenerated(nameOrPath, 1)
	if err != nil {
		return nil, err
	}
	if generated {
		return Generate(seed, DefaultGenOptions())
	}
	return LoadFile(nameOrPath)
}
