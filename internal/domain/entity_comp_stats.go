package domain

// TakeDamage наносит урон. Возвращает true, если враг погиб (здоровье <= 0).
func (e *Enemy) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	e.Health -= amount
	return e.IsDead()
}

// IsDead - здоровье исчерпано
func (e *Enemy) IsDead() bool {
	return e.Health <= 0
}

// ConsumeAmmo тратит патрон. Возвращает false, если патронов нет.
func (p *Player) ConsumeAmmo() bool {
	if p.Ammo <= 0 {
		return false
	}
	p.Ammo--
	return true
}
