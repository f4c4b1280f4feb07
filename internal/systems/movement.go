package systems

import (
	"math"

	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// MovementResult - результат попытки движения
type MovementResult struct {
	Target   domain.Position
	HasMoved bool
}

// TryMove вычисляет сдвиг pos на dist вдоль angle. Не меняет состояние!
// Кандидат принимается, только если точка проходима.
func TryMove(g *domain.Grid, pos domain.Position, angle, dist float64) MovementResult {
	target := pos.Advance(angle, dist)
	return MovementResult{Target: target, HasMoved: g.IsWalkable(target.X, target.Y)}
}

// MovePlayer применяет удерживаемые клавиши движения и поворота.
// Поворот не проверяется и не нормализуется.
func MovePlayer(st *domain.State, in domain.Input, r domain.Rules, dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		return
	}
	moveSpeed := r.PlayerSpeed * dt
	rotSpeed := r.PlayerRotSpeed * dt
	p := &st.Player

	if in.Forward {
		if res := TryMove(st.Grid, p.Pos, p.Angle, moveSpeed); res.HasMoved {
			p.Pos = res.Target
		}
	}
	if in.Backward {
		if res := TryMove(st.Grid, p.Pos, p.Angle, -moveSpeed); res.HasMoved {
			p.Pos = res.Target
		}
	}

	if in.TurnLeft {
		p.Angle -= rotSpeed
	}
	if in.TurnRight {
		p.Angle += rotSpeed
	}
}
