package systems

import "github.com/wjkennedy/jira-quake3/internal/domain"

// SpawnProjectile выпускает визуальный снаряд из позиции игрока вдоль его взгляда
func SpawnProjectile(st *domain.State, r domain.Rules) domain.EntityID {
	return st.Store.AddProjectile(&domain.Projectile{
		Pos:      st.Player.Pos,
		Angle:    st.Player.Angle,
		Speed:    r.ProjectileSpeed,
		Lifetime: r.ProjectileLifetime,
		Damage:   r.ShotDamage,
	})
}

// UpdateProjectiles двигает снаряды на speed*dt и уменьшает срок жизни на 1 за вызов
// (тик, не Δt). Снаряд удаляется, когда срок вышел или он влетел в непроходимую клетку.
// Обход обратный с удалением на месте.
func UpdateProjectiles(st *domain.State, dt float64) int {
	return st.Store.SweepProjectiles(func(p *domain.Projectile) bool {
		p.Pos = p.Pos.Advance(p.Angle, p.Speed*dt)
		p.Lifetime--
		return p.Lifetime > 0 && st.Grid.IsWalkable(p.Pos.X, p.Pos.Y)
	})
}
