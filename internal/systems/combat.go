package systems

import (
	"github.com/sirupsen/logrus"
	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// ShotResult - итог одного выстрела
type ShotResult struct {
	Fired      bool
	Projectile domain.EntityID
	Hit        RayHit
	Damage     int
	Killed     bool
}

// Fire - выстрел игрока.
// Без патронов - тихий no-op. Иначе: патрон -1, визуальный снаряд,
// и независимо от него хит-скан вдоль взгляда. Урон применяется мгновенно,
// полет снаряда на него не влияет.
func Fire(st *domain.State, r domain.Rules) ShotResult {
	if !st.Player.ConsumeAmmo() {
		return ShotResult{}
	}

	res := ShotResult{Fired: true}
	res.Projectile = SpawnProjectile(st, r)

	res.Hit = Cast(st.Grid, st.Store.Enemies(), st.Player.Pos, st.Player.Angle, RayParamsFrom(r))
	if !res.Hit.IsEntity() {
		return res
	}

	target := res.Hit.Enemy
	hpBefore := target.Health
	res.Damage = r.ShotDamage
	res.Killed = target.TakeDamage(r.ShotDamage)
	if res.Killed {
		st.Store.RemoveEnemy(target.ID)
	}

	logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"target_id":   target.ID,
		"distance":    res.Hit.Distance,
		"hp_before":   hpBefore,
		"hp_after":    target.Health,
		"target_died": res.Killed,
		"ammo_left":   st.Player.Ammo,
	}).Debug("Hit-scan resolved.")

	return res
}
