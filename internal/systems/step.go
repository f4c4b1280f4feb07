package systems

import (
	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// StepReport - что произошло за один шаг (для логов и телеметрии)
type StepReport struct {
	Shots              []ShotResult
	ProjectilesRemoved int
	EnemiesAlerted     int
}

// Kills - число врагов, убитых за шаг
func (r StepReport) Kills() int {
	n := 0
	for _, s := range r.Shots {
		if s.Killed {
			n++
		}
	}
	return n
}

// Advance продвигает симуляцию на один тик.
// dt - прошедшее время в долях эталонного кадра (1.0 = один кадр 60 FPS).
// Детерминирован по (state, input, dt).
//
// Порядок:
//  1. Дискретные события (выбор оружия, выстрелы) - до движения, как нажатия между кадрами.
//  2. Движение и поворот игрока.
//  3. Снаряды.
//  4. ИИ врагов.
func Advance(st *domain.State, in domain.Input, r domain.Rules, dt float64) StepReport {
	var report StepReport

	// 1. События
	if in.Weapon != 0 {
		st.Player.SelectWeapon(in.Weapon)
	}
	for i := 0; i < in.Fire; i++ {
		report.Shots = append(report.Shots, Fire(st, r))
	}

	// 2. Игрок
	MovePlayer(st, in, r, dt)

	// 3. Снаряды
	report.ProjectilesRemoved = UpdateProjectiles(st, dt)

	// 4. Враги
	report.EnemiesAlerted = UpdateEnemies(st, r, dt)

	st.Tick++
	return report
}
