package domain

// EntityStore хранит динамические сущности уровня: врагов и снаряды.
// Адресация по стабильному EntityID, а не по индексу в слайсе.
// Удаление - swap-and-pop (порядок не сохраняется).
type EntityStore struct {
	enemies     []*Enemy
	projectiles []*Projectile
	seq         uint64
}

func NewEntityStore() *EntityStore {
	return &EntityStore{}
}

func (s *EntityStore) nextID(kind EntityKind) EntityID {
	s.seq++
	return PackEntityID(kind, s.seq)
}

// AddEnemy регистрирует врага и выдает ему ID
func (s *EntityStore) AddEnemy(e *Enemy) EntityID {
	e.ID = s.nextID(KindEnemy)
	s.enemies = append(s.enemies, e)
	return e.ID
}

// AddProjectile регистрирует снаряд и выдает ему ID
func (s *EntityStore) AddProjectile(p *Projectile) EntityID {
	p.ID = s.nextID(KindProjectile)
	s.projectiles = append(s.projectiles, p)
	return p.ID
}

// Enemy ищет врага по ID
func (s *EntityStore) Enemy(id EntityID) *Enemy {
	for _, e := range s.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Projectile ищет снаряд по ID
func (s *EntityStore) Projectile(id EntityID) *Projectile {
	for _, p := range s.projectiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RemoveEnemy удаляет врага. Нельзя вызывать изнутри обхода Enemies() -
// для удаления во время обхода есть SweepEnemies.
func (s *EntityStore) RemoveEnemy(id EntityID) bool {
	for i, e := range s.enemies {
		if e.ID == id {
			s.enemies = swapRemove(s.enemies, i)
			return true
		}
	}
	return false
}

// Enemies возвращает живых врагов. Слайс принадлежит хранилищу: только чтение.
func (s *EntityStore) Enemies() []*Enemy { return s.enemies }

// Projectiles возвращает живые снаряды. Только чтение.
func (s *EntityStore) Projectiles() []*Projectile { return s.projectiles }

func (s *EntityStore) EnemyCount() int      { return len(s.enemies) }
func (s *EntityStore) ProjectileCount() int { return len(s.projectiles) }

// SweepProjectiles обходит снаряды с конца и удаляет те, для которых keep вернул false.
// Последний элемент, переезжающий на место удаленного, уже обработан,
// поэтому обход ничего не пропускает и не повторяет. Возвращает число удаленных.
func (s *EntityStore) SweepProjectiles(keep func(p *Projectile) bool) int {
	removed := 0
	for i := len(s.projectiles) - 1; i >= 0; i-- {
		if !keep(s.projectiles[i]) {
			s.projectiles = swapRemove(s.projectiles, i)
			removed++
		}
	}
	return removed
}

// SweepEnemies - то же для врагов (для смертей внутри прохода ИИ)
func (s *EntityStore) SweepEnemies(keep func(e *Enemy) bool) int {
	removed := 0
	for i := len(s.enemies) - 1; i >= 0; i-- {
		if !keep(s.enemies[i]) {
			s.enemies = swapRemove(s.enemies, i)
			removed++
		}
	}
	return removed
}

// Clear удаляет все сущности. Счетчик ID не сбрасывается, чтобы старые ID не переиспользовались.
func (s *EntityStore) Clear() {
	clear(s.enemies)
	clear(s.projectiles)
	s.enemies = s.enemies[:0]
	s.projectiles = s.projectiles[:0]
}

// swapRemove убирает элемент i, перенося на его место последний
func swapRemove[T any](items []*T, i int) []*T {
	last := len(items) - 1
	items[i] = items[last]
	items[last] = nil // избегаем утечки памяти
	return items[:last]
}
