package domain

import "math"

// DistanceTo возвращает евклидово расстояние до другой точки
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// AngleTo возвращает направление на другую точку (радианы)
func (p Position) AngleTo(other Position) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// Advance возвращает точку, сдвинутую на dist вдоль angle (не меняя текущую)
func (p Position) Advance(angle, dist float64) Position {
	return Position{X: p.X + math.Cos(angle)*dist, Y: p.Y + math.Sin(angle)*dist}
}

// Cell возвращает клетку, в которой лежит точка
func (p Position) Cell() Cell {
	return Cell{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Center возвращает центр клетки
func (c Cell) Center() Position {
	return Position{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5}
}
