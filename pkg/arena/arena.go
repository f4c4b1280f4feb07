// Package arena описывает статические арены: встроенную эталонную карту,
// текстовые и YAML файлы арен и fluent-конструктор для тестов.
package arena

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// Глифы текстового формата карты
const (
	GlyphWall   = '#'
	GlyphEmpty  = '.'
	GlyphDoor   = 'D'
	GlyphSpawn  = 'E'
	GlyphPlayer = 'P'
)

var (
	ErrEmpty        = errors.New("arena has no cells")
	ErrRagged       = errors.New("arena rows have different lengths")
	ErrNotEnclosed  = errors.New("arena perimeter is not fully walled")
	ErrUnknownGlyph = errors.New("unknown arena glyph")
	ErrStartBlocked = errors.New("player start is not walkable")
)

// Point - стартовая точка игрока в мировых координатах
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Definition - описание арены. Строки используют глифы # . D E P.
// Если Player не задан, старт берется из центра клетки 'P'.
type Definition struct {
	Name   string   `yaml:"name" json:"name"`
	Rows   []string `yaml:"rows" json:"rows"`
	Player *Point   `yaml:"player,omitempty" json:"player,omitempty"`
}

// Arena - готовая к запуску арена
type Arena struct {
	Name  string
	Grid  *domain.Grid
	Start domain.Position
}

// NewState создает состояние симуляции на этой арене
func (a *Arena) NewState() *domain.State {
	return domain.NewState(a.Grid, a.Start)
}

// Build проверяет описание и собирает сетку.
// Периметр обязан быть замкнут стенами: незамкнутая арена дает неопределенный рейкаст.
func (d Definition) Build() (*Arena, error) {
	if len(d.Rows) == 0 || len(d.Rows[0]) == 0 {
		return nil, ErrEmpty
	}

	width := len(d.Rows[0])
	cells := make([][]domain.CellKind, len(d.Rows))
	var marker *domain.Cell

	for y, line := range d.Rows {
		if len(line) != width {
			return nil, fmt.Errorf("row %d: %w (got %d, want %d)", y, ErrRagged, len(line), width)
		}
		row := make([]domain.CellKind, width)
		for x, ch := range []byte(line) {
			switch ch {
			case GlyphWall:
				row[x] = domain.CellWall
			case GlyphEmpty:
				row[x] = domain.CellEmpty
			case GlyphDoor:
				row[x] = domain.CellDoor
			case GlyphSpawn:
				row[x] = domain.CellEnemySpawn
			case GlyphPlayer:
				row[x] = domain.CellEmpty
				marker = &domain.Cell{X: x, Y: y}
			default:
				return nil, fmt.Errorf("row %d col %d %q: %w", y, x, ch, ErrUnknownGlyph)
			}
		}
		cells[y] = row
	}

	grid := domain.NewGrid(cells)
	if !grid.Enclosed() {
		return nil, ErrNotEnclosed
	}

	var start domain.Position
	switch {
	case d.Player != nil:
		start = domain.Position{X: d.Player.X, Y: d.Player.Y}
	case marker != nil:
		start = marker.Center()
	default:
		start = domain.Position{X: float64(grid.Width()) / 2, Y: float64(grid.Height()) / 2}
	}
	if !grid.IsWalkable(start.X, start.Y) {
		return nil, fmt.Errorf("%w: (%.2f, %.2f)", ErrStartBlocked, start.X, start.Y)
	}

	name := d.Name
	if name == "" {
		name = "unnamed"
	}
	return &Arena{Name: name, Grid: grid, Start: start}, nil
}

// Parse читает текстовую карту: по строке на ряд, пустые строки и строки с ';' игнорируются
func Parse(name, text string) (*Arena, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		rows = append(rows, line)
	}
	return Definition{Name: name, Rows: rows}.Build()
}
