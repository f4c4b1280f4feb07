package domain

import "math"

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds проверяет, лежит ли клетка внутри сетки
func (g *Grid) InBounds(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < g.width && cy < g.height
}

// Kind возвращает тип клетки. За границами карты - стена.
func (g *Grid) Kind(cx, cy int) CellKind {
	if !g.InBounds(cx, cy) {
		return CellWall
	}
	return g.cells[cy][cx]
}

// IsWalkable - можно ли стоять в точке (x, y).
// Любая точка вне сетки непроходима, как неявная стена.
func (g *Grid) IsWalkable(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	fx, fy := math.Floor(x), math.Floor(y)
	if fx < 0 || fy < 0 || fx >= float64(g.width) || fy >= float64(g.height) {
		return false
	}
	return g.cells[int(fy)][int(fx)] == CellEmpty
}

// Spawns возвращает копию исходных маркеров спавна
func (g *Grid) Spawns() []Cell {
	out := make([]Cell, len(g.spawns))
	copy(out, g.spawns)
	return out
}

// ClearSpawns очищает клетки спавна до пустых (однократно после появления врагов)
func (g *Grid) ClearSpawns() {
	for _, c := range g.spawns {
		g.cells[c.Y][c.X] = CellEmpty
	}
}

// Enclosed проверяет, что периметр полностью из стен
func (g *Grid) Enclosed() bool {
	if g.width == 0 || g.height == 0 {
		return false
	}
	for x := 0; x < g.width; x++ {
		if g.cells[0][x] != CellWall || g.cells[g.height-1][x] != CellWall {
			return false
		}
	}
	for y := 0; y < g.height; y++ {
		if g.cells[y][0] != CellWall || g.cells[y][g.width-1] != CellWall {
			return false
		}
	}
	return true
}

// Rows возвращает копию клеток (для отладки и сериализации карты)
func (g *Grid) Rows() [][]CellKind {
	out := make([][]CellKind, g.height)
	for y := range g.cells {
		out[y] = append([]CellKind(nil), g.cells[y]...)
	}
	return out
}
