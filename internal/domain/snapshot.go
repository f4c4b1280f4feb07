package domain

// Snapshot - неизменяемая копия состояния для HUD, зрителей и отладки.
// Безопасно передавать между горутинами: ссылок на живое состояние нет.
type Snapshot struct {
	Tick        uint64       `json:"tick" msgpack:"tick"`
	Status      string       `json:"status" msgpack:"status"`
	FPS         int          `json:"fps" msgpack:"fps"`
	Width       int          `json:"width" msgpack:"width"`
	Height      int          `json:"height" msgpack:"height"`
	Player      Player       `json:"player" msgpack:"player"`
	Enemies     []Enemy      `json:"enemies" msgpack:"enemies"`
	Projectiles []Projectile `json:"projectiles" msgpack:"projectiles"`
}

// EnemyCount - число живых врагов
func (s Snapshot) EnemyCount() int { return len(s.Enemies) }

// Snapshot копирует текущее состояние
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.Tick,
		Width:       s.Grid.Width(),
		Height:      s.Grid.Height(),
		Player:      s.Player,
		Enemies:     make([]Enemy, 0, s.Store.EnemyCount()),
		Projectiles: make([]Projectile, 0, s.Store.ProjectileCount()),
	}
	for _, e := range s.Store.Enemies() {
		snap.Enemies = append(snap.Enemies, *e)
	}
	for _, p := range s.Store.Projectiles() {
		snap.Projectiles = append(snap.Projectiles, *p)
	}
	return snap
}
