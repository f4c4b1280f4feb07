package render

import (
	"fmt"
	"image/color"

	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// HealthColor - три уровня полоски здоровья
func HealthColor(health int) color.RGBA {
	switch {
	case health > domain.HealthSafeAbove:
		return ColorHealthSafe
	case health > domain.HealthWarningAbove:
		return ColorHealthWarn
	default:
		return ColorHealthCrit
	}
}

// DrawHUD рисует интерфейс поверх кадра. Только читает переданные значения.
func DrawHUD(s Surface, p domain.Player, enemies int, f Frame) {
	w, h := s.Size()
	width, height := float64(w), float64(h)

	// Здоровье
	s.FillRect(10, height-40, 200, 30, ColorPanel)
	barW := float64(p.Health) * 1.9
	if barW < 0 {
		barW = 0
	}
	s.FillRect(15, height-35, barW, 20, HealthColor(p.Health))
	s.DrawText(fmt.Sprintf("Health: %d", p.Health), 20, height-20, ColorText)

	// Патроны и оружие
	s.FillRect(width-210, height-40, 200, 30, ColorPanel)
	s.DrawText(fmt.Sprintf("Ammo: %d", p.Ammo), width-200, height-20, ColorAmmo)
	s.DrawText(fmt.Sprintf("Weapon: %d", p.Weapon), width-200, height-5, ColorAmmo)

	// Прицел
	s.FillRect(width/2-10, height/2, 20, 2, ColorCrosshair)
	s.FillRect(width/2, height/2-10, 2, 20, ColorCrosshair)

	// Счетчик врагов
	s.FillRect(10, 10, 200, 30, ColorPanel)
	s.DrawText(fmt.Sprintf("Enemies: %d", enemies), 20, 30, ColorEnemyCount)

	// FPS
	s.DrawText(fmt.Sprintf("FPS: %d", f.FPS), width-90, 30, ColorText)
}
