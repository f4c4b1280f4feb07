package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// Keyboard - источник состояния клавиш
type Keyboard interface {
	// Pressed - клавиша удерживается
	Pressed(k ebiten.Key) bool
	// JustPressed - клавиша нажата в этом кадре
	JustPressed(k ebiten.Key) bool
}

// EbitenKeyboard читает клавиатуру ebiten
type EbitenKeyboard struct{}

func (EbitenKeyboard) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (EbitenKeyboard) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Commands - управление циклом, не входящее в снимок ввода
type Commands struct {
	Pause bool
	Reset bool
	Quit  bool
}

var weaponKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
}

// ReadInput собирает снимок ввода кадра: WASD/стрелки удерживаются,
// пробел и цифры - дискретные нажатия.
func ReadInput(kb Keyboard) (domain.Input, Commands) {
	in := domain.Input{
		Forward:   kb.Pressed(ebiten.KeyW) || kb.Pressed(ebiten.KeyArrowUp),
		Backward:  kb.Pressed(ebiten.KeyS) || kb.Pressed(ebiten.KeyArrowDown),
		TurnLeft:  kb.Pressed(ebiten.KeyA) || kb.Pressed(ebiten.KeyArrowLeft),
		TurnRight: kb.Pressed(ebiten.KeyD) || kb.Pressed(ebiten.KeyArrowRight),
	}

	if kb.JustPressed(ebiten.KeySpace) {
		in.Fire = 1
	}
	// Несколько цифр за кадр: побеждает старшая
	for i, k := range weaponKeys {
		if kb.JustPressed(k) {
			in.Weapon = i + 1
		}
	}

	cmds := Commands{
		Pause: kb.JustPressed(ebiten.KeyP),
		Reset: kb.JustPressed(ebiten.KeyR),
		Quit:  kb.Pressed(ebiten.KeyEscape),
	}
	return in, cmds
}
