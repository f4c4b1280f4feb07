package domain

// Player - состояние игрока. Живет всю сессию, Reset возвращает стартовые значения.
type Player struct {
	Pos    Position `json:"pos" msgpack:"pos"`
	Angle  float64  `json:"angle" msgpack:"angle"` // радианы, не нормализуется по модулю 2π
	Health int      `json:"health" msgpack:"health"`
	Ammo   int      `json:"ammo" msgpack:"ammo"`
	Weapon int      `json:"weapon" msgpack:"weapon"`
}

// NewPlayer создает игрока в точке старта
func NewPlayer(start Position) Player {
	return Player{
		Pos:    start,
		Angle:  0,
		Health: PlayerStartHealth,
		Ammo:   PlayerStartAmmo,
		Weapon: PlayerStartWeapon,
	}
}

// SelectWeapon переключает оружие. Номера вне 1..7 игнорируются.
func (p *Player) SelectWeapon(n int) bool {
	if n < MinWeapon || n > MaxWeapon {
		return false
	}
	p.Weapon = n
	return true
}

// Enemy - враг, появляется из клетки спавна
type Enemy struct {
	ID     EntityID   `json:"id" msgpack:"id"`
	Pos    Position   `json:"pos" msgpack:"pos"`
	Health int        `json:"health" msgpack:"health"`
	State  EnemyState `json:"state" msgpack:"state"`

	// LastShot не участвует в уроне: враги не атакуют.
	LastShot int64 `json:"lastShot" msgpack:"lastShot"`
}

// NewEnemy создает врага в центре клетки спавна
func NewEnemy(spawn Cell) *Enemy {
	return &Enemy{
		Pos:    spawn.Center(),
		Health: EnemyStartHealth,
		State:  EnemyIdle,
	}
}

// Projectile - визуальный снаряд. Урон от выстрела считается хит-сканом отдельно.
type Projectile struct {
	ID       EntityID `json:"id" msgpack:"id"`
	Pos      Position `json:"pos" msgpack:"pos"`
	Angle    float64  `json:"angle" msgpack:"angle"`
	Speed    float64  `json:"speed" msgpack:"speed"`
	Lifetime int      `json:"lifetime" msgpack:"lifetime"` // в тиках
	Damage   int      `json:"damage" msgpack:"damage"`     // информационно
}
