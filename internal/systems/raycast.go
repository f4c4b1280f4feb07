package systems

import (
	"math"

	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// HitKind - чем закончился луч
type HitKind uint8

const (
	// HitWall - непустая клетка или выход за сетку
	HitWall HitKind = iota
	// HitBoundary - луч дошел до MaxDepth, ничего не встретив (незамкнутая арена)
	HitBoundary
	// HitEntity - луч уперся во врага
	HitEntity
)

func (k HitKind) String() string {
	switch k {
	case HitWall:
		return "wall"
	case HitBoundary:
		return "boundary"
	case HitEntity:
		return "entity"
	}
	return "unknown"
}

// RayHit - результат одного луча. Временный, не хранится.
type RayHit struct {
	Distance float64
	Kind     HitKind
	Enemy    *domain.Enemy // только для HitEntity
}

// IsEntity - луч попал во врага
func (h RayHit) IsEntity() bool { return h.Kind == HitEntity }

// RayParams - шаг марша, предельная дальность и радиус попадания во врага
type RayParams struct {
	Step      float64
	MaxDepth  float64
	HitRadius float64
}

// RayParamsFrom берет параметры луча из правил
func RayParamsFrom(r domain.Rules) RayParams {
	return RayParams{Step: r.RayStep, MaxDepth: r.MaxDepth, HitRadius: r.HitRadius}
}

// Cast марширует луч из origin вдоль angle фиксированными шагами.
//
// На каждом шаге:
//  1. Сначала проверяются враги (расстояние < HitRadius) - попадание во врага.
//  2. Только если врага нет, проверяется клетка - стена или выход за карту.
//
// Враг имеет приоритет над стеной в одной и той же точке: это фиксированное правило.
// Если ничего не найдено до MaxDepth, возвращается HitBoundary на последней дистанции.
// Дистанция вдоль луча не убывает; точность ограничена шагом.
func Cast(g *domain.Grid, enemies []*domain.Enemy, origin domain.Position, angle float64, p RayParams) RayHit {
	step := p.Step
	if !(step > 0) || math.IsInf(step, 0) {
		step = domain.DefaultRules().RayStep
	}
	cos, sin := math.Cos(angle), math.Sin(angle)
	radiusSq := p.HitRadius * p.HitRadius

	distance := 0.0
	for i := 1; ; i++ {
		// Умножение вместо накопления: без дрейфа ошибки округления
		distance = float64(i) * step
		x := origin.X + cos*distance
		y := origin.Y + sin*distance

		// 1. Враги
		for _, e := range enemies {
			dx, dy := e.Pos.X-x, e.Pos.Y-y
			if dx*dx+dy*dy < radiusSq {
				return RayHit{Distance: distance, Kind: HitEntity, Enemy: e}
			}
		}

		// 2. Стены и границы карты
		if !g.IsWalkable(x, y) {
			return RayHit{Distance: distance, Kind: HitWall}
		}

		if !(distance < p.MaxDepth) {
			return RayHit{Distance: distance, Kind: HitBoundary}
		}
	}
}
