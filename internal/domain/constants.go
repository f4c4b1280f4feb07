package domain

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Стартовые значения игрока
const (
	PlayerStartHealth = 100
	PlayerStartAmmo   = 50
	PlayerStartWeapon = 1

	MinWeapon = 1
	MaxWeapon = 7
)

// Параметры врагов
const (
	EnemyStartHealth = 100
)

// Пороги HUD для полоски здоровья
const (
	HealthSafeAbove    = 50
	HealthWarningAbove = 25
)

// Rules - настраиваемые константы симуляции.
// Значения по умолчанию совпадают с эталонным движком.
type Rules struct {
	PlayerSpeed    float64 `yaml:"player_speed" json:"playerSpeed"`
	PlayerRotSpeed float64 `yaml:"player_rot_speed" json:"playerRotSpeed"`

	ProjectileSpeed    float64 `yaml:"projectile_speed" json:"projectileSpeed"`
	ProjectileLifetime int     `yaml:"projectile_lifetime" json:"projectileLifetime"`
	ShotDamage         int     `yaml:"shot_damage" json:"shotDamage"`

	AggroRadius  float64 `yaml:"aggro_radius" json:"aggroRadius"`
	PursuitSpeed float64 `yaml:"pursuit_speed" json:"pursuitSpeed"`

	// Шаг луча - компромисс точность/скорость, тонкую геометрию под острым углом можно пропустить.
	RayStep   float64 `yaml:"ray_step" json:"rayStep"`
	MaxDepth  float64 `yaml:"max_depth" json:"maxDepth"`
	HitRadius float64 `yaml:"hit_radius" json:"hitRadius"`
}

// DefaultRules возвращает эталонные значения
func DefaultRules() Rules {
	return Rules{
		PlayerSpeed:        0.08,
		PlayerRotSpeed:     0.05,
		ProjectileSpeed:    0.3,
		ProjectileLifetime: 100,
		ShotDamage:         25,
		AggroRadius:        8,
		PursuitSpeed:       0.02,
		RayStep:            0.1,
		MaxDepth:           20,
		HitRadius:          0.3,
	}
}

// Fingerprint - FNV-1a по всем полям правил. Лента хранит его, чтобы повтор
// с другими правилами был заметен.
func (r Rules) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf []byte
	for _, f := range []float64{
		r.PlayerSpeed, r.PlayerRotSpeed,
		r.ProjectileSpeed, float64(r.ProjectileLifetime), float64(r.ShotDamage),
		r.AggroRadius, r.PursuitSpeed,
		r.RayStep, r.MaxDepth, r.HitRadius,
	} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}
