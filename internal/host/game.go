// Package host запускает движок в окне ebiten: клавиатура, тик на каждый Update, кадр во внеэкранный буфер.
package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/engine"
	"github.com/wjkennedy/jira-quake3/pkg/clock"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// Game реализует ebiten.Game
type Game struct {
	loop    *engine.Loop
	kb      Keyboard
	surface *Surface
	width   int
	height  int
	tape    *domain.Tape
}

// NewGame собирает окно для состояния st. tape может быть nil.
func NewGame(st *domain.State, cfg engine.Config, kb Keyboard, tape *domain.Tape) *Game {
	if kb == nil {
		kb = EbitenKeyboard{}
	}
	surface := NewSurface(ebiten.NewImage(cfg.ScreenWidth, cfg.ScreenHeight))
	if tape != nil && tape.Rules == 0 {
		tape.Rules = cfg.Rules.Fingerprint()
	}
	return &Game{
		loop:    engine.NewLoop(st, cfg, surface, clock.New()),
		kb:      kb,
		surface: surface,
		width:   cfg.ScreenWidth,
		height:  cfg.ScreenHeight,
		tape:    tape,
	}
}

// Loop - планировщик кадров окна
func (g *Game) Loop() *engine.Loop { return g.loop }

// Update вызывается ebiten с частотой TPS: ввод -> тик -> кадр во внеэкранный буфер
func (g *Game) Update() error {
	if g.loop.Status() == engine.Stopped {
		g.loop.Start()
	}

	in, cmds := ReadInput(g.kb)
	if cmds.Quit {
		return ebiten.Termination
	}
	if cmds.Pause {
		g.loop.PauseToggle()
	}
	if cmds.Reset {
		g.loop.Reset()
		if g.tape != nil {
			g.tape.MarkReset()
		}
	}

	res, ok := g.loop.Tick(in)
	if ok && g.tape != nil {
		g.tape.Record(res.Delta, in)
	}
	return nil
}

// Draw копирует последний кадр на экран. На паузе кадр замирает.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.surface.Image(), nil)
	if g.loop.Status() == engine.Paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", g.width/2-18, g.height/2-30)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run открывает окно и блокируется до закрытия
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.width*2, g.height*2)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Log.WithFields(logrus.Fields{
		"component": "host",
		"width":     g.width,
		"height":    g.height,
	}).Info("Opening window")

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	g.loop.Stop()
	return nil
}
