package engine

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/render"
	"github.com/wjkennedy/jira-quake3/internal/systems"
	"github.com/wjkennedy/jira-quake3/pkg/clock"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// Status - состояние цикла
type Status uint8

const (
	Stopped Status = iota
	Running
	Paused
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "stopped"
}

// TickResult - итог одного тика
type TickResult struct {
	// Delta - Δt в долях эталонного кадра
	Delta  float64
	Report systems.StepReport
}

// Loop - планировщик кадров: по внешнему тику считает Δt, выполняет шаг симуляции
// и рисует кадр. Не потокобезопасен: все вызовы из одной горутины.
type Loop struct {
	state    *domain.State
	rules    domain.Rules
	renderer *render.Renderer
	surface  render.Surface
	clock    clock.Clock
	frame    time.Duration
	width    int
	height   int

	status Status
	last   time.Time // база для Δt, переустанавливается при Start и Resume
	fps    int
}

// NewLoop собирает цикл. surface может быть nil (симуляция без отрисовки).
func NewLoop(st *domain.State, cfg Config, surface render.Surface, clk clock.Clock) *Loop {
	frame := cfg.Frame
	if frame <= 0 {
		frame = ReferenceFrame
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Loop{
		state:    st,
		rules:    cfg.Rules,
		renderer: render.New(cfg.RenderOptions(), cfg.Rules),
		surface:  surface,
		clock:    clk,
		frame:    frame,
		width:    cfg.ScreenWidth,
		height:   cfg.ScreenHeight,
	}
}

func (l *Loop) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "loop",
		"tick":      l.state.Tick,
	})
}

// Status возвращает текущее состояние
func (l *Loop) Status() Status { return l.status }

// FPS - кадров в секунду по последнему интервалу
func (l *Loop) FPS() int { return l.fps }

// Start запускает цикл из Stopped и фиксирует базу времени.
// Повторный вызов (в том числе на паузе) ничего не делает.
func (l *Loop) Start() {
	if l.status != Stopped {
		return
	}
	l.status = Running
	l.last = l.clock.Now()
	l.log().Info("Loop started")
}

// Stop останавливает цикл. Следующий Start заново фиксирует базу.
func (l *Loop) Stop() {
	if l.status == Stopped {
		return
	}
	l.status = Stopped
	l.log().Info("Loop stopped")
}

// Pause приостанавливает работающий цикл
func (l *Loop) Pause() {
	if l.status != Running {
		return
	}
	l.status = Paused
	l.log().Debug("Loop paused")
}

// Resume продолжает цикл. База времени переустанавливается,
// поэтому время паузы не попадает в Δt первого тика.
func (l *Loop) Resume() {
	if l.status != Paused {
		return
	}
	l.status = Running
	l.last = l.clock.Now()
	l.log().Debug("Loop resumed")
}

// PauseToggle переключает Running <-> Paused. В Stopped ничего не делает.
func (l *Loop) PauseToggle() {
	switch l.status {
	case Running:
		l.Pause()
	case Paused:
		l.Resume()
	}
}

// Reset возвращает мир в начальное состояние, не меняя статус цикла
func (l *Loop) Reset() {
	l.state.Reset()
	l.log().WithField("enemies", l.state.Store.EnemyCount()).Info("World reset")
}

// Tick - один внешний тик. Вне Running возвращает false и ничего не меняет.
func (l *Loop) Tick(in domain.Input) (TickResult, bool) {
	if l.status != Running {
		return TickResult{}, false
	}

	// 1. Δt по монотонным часам
	now := l.clock.Now()
	elapsed := now.Sub(l.last)
	l.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > 0 {
		l.fps = int(math.Round(float64(time.Second) / float64(elapsed)))
	}

	// 2. Шаг и кадр
	dt := float64(elapsed) / float64(l.frame)
	return l.Step(in, dt), true
}

// Step выполняет шаг с заданным Δt и рисует кадр, минуя часы.
// Используется при воспроизведении ленты.
func (l *Loop) Step(in domain.Input, dt float64) TickResult {
	report := systems.Advance(l.state, in, l.rules, dt)

	if l.surface != nil {
		l.renderer.Render(l.surface, l.state, render.Frame{FPS: l.fps})
	}

	if kills := report.Kills(); kills > 0 {
		l.log().WithFields(logrus.Fields{
			"kills":   kills,
			"enemies": l.state.Store.EnemyCount(),
		}).Info("Enemies killed")
	}
	if report.EnemiesAlerted > 0 {
		l.log().WithField("alerted", report.EnemiesAlerted).Debug("Enemies alerted")
	}

	return TickResult{Delta: dt, Report: report}
}

// Capture рисует текущее состояние в новый буфер размера экрана, не продвигая симуляцию
func (l *Loop) Capture() *render.Framebuffer {
	w, h := l.width, l.height
	if w <= 0 || h <= 0 {
		w, h = defaultScreenWidth, defaultScreenHeight
	}
	fb := render.NewFramebuffer(w, h)
	l.renderer.Render(fb, l.state, render.Frame{FPS: l.fps})
	return fb
}

// Snapshot - неизменяемая копия состояния со статусом цикла
func (l *Loop) Snapshot() domain.Snapshot {
	snap := l.state.Snapshot()
	snap.Status = l.status.String()
	snap.FPS = l.fps
	return snap
}
