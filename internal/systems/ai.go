package systems

import (
	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// UpdateEnemies - проход ИИ по всем врагам.
// В радиусе агро враг переходит в Alert и шагает к игроку с фиксированной скоростью
// преследования (шаг принимается, только если клетка проходима). Иначе стоит на месте.
// Враги не атакуют игрока. Проход никого не удаляет; если смерть внутри прохода
// когда-нибудь появится, удалять через Store.SweepEnemies.
// Возвращает число врагов, впервые перешедших в Alert.
func UpdateEnemies(st *domain.State, r domain.Rules, dt float64) int {
	alerted := 0
	player := st.Player.Pos

	for _, e := range st.Store.Enemies() {
		dist := e.Pos.DistanceTo(player)
		if !(dist < r.AggroRadius) {
			continue
		}

		if !e.IsAlert() {
			e.Alert()
			alerted++
		}

		if res := TryMove(st.Grid, e.Pos, e.Pos.AngleTo(player), r.PursuitSpeed*dt); res.HasMoved {
			e.Pos = res.Target
		}
	}
	return alerted
}
