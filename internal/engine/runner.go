package engine

import (
	"context"
	"image"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// Pilot производит ввод, когда удаленного ввода нет
type Pilot interface {
	Next(snap domain.Snapshot) domain.Input
}

// RunnerOptions - параметры headless-цикла
type RunnerOptions struct {
	Interval time.Duration
	// Publish вызывается после каждого тика и каждой управляющей команды
	Publish func(domain.Snapshot)
	// Pilot управляет игроком, пока удаленный ввод молчит дольше IdleTicks
	Pilot     Pilot
	IdleTicks int
	// Tape, если задана, получает каждый выполненный тик
	Tape *domain.Tape
}

// Runner владеет состоянием в одной горутине (Run).
// Остальные горутины общаются с ним только через каналы и снимки.
type Runner struct {
	loop *Loop
	opts RunnerOptions

	inputs   chan remoteInput
	controls chan domain.ActionType
	frames   chan chan *image.RGBA

	latest atomic.Pointer[domain.Snapshot]
}

func NewRunner(loop *Loop, opts RunnerOptions) *Runner {
	if opts.Interval <= 0 {
		opts.Interval = ReferenceFrame
	}
	if opts.IdleTicks <= 0 {
		opts.IdleTicks = 120
	}
	r := &Runner{
		loop:     loop,
		opts:     opts,
		inputs:   make(chan remoteInput, 100),
		controls: make(chan domain.ActionType, 10),
		frames:   make(chan chan *image.RGBA),
	}
	if opts.Tape != nil && opts.Tape.Rules == 0 {
		opts.Tape.Rules = loop.rules.Fingerprint()
	}
	snap := loop.Snapshot()
	r.latest.Store(&snap)
	return r
}

// remoteInput - ввод от удаленного клиента
type remoteInput struct {
	in   domain.Input
	held bool // заменяет удерживаемые клавиши
}

// Submit передает полный снимок ввода: удерживаемые клавиши заменяют прежние,
// выстрелы и выбор оружия копятся до тика. Не блокирует: при переполнении ввод теряется.
func (r *Runner) Submit(in domain.Input) bool {
	return r.send(remoteInput{in: in, held: true})
}

// Press добавляет только дискретные нажатия (Fire, Weapon), удержание не трогает
func (r *Runner) Press(fire, weapon int) bool {
	return r.send(remoteInput{in: domain.Input{Fire: fire, Weapon: weapon}})
}

func (r *Runner) send(ri remoteInput) bool {
	select {
	case r.inputs <- ri:
		return true
	default:
		return false
	}
}

// Control передает команду управления циклом (ActionPause, ActionReset)
func (r *Runner) Control(action domain.ActionType) bool {
	select {
	case r.controls <- action:
		return true
	default:
		return false
	}
}

// Frame рисует текущее состояние в горутине Run и возвращает кадр.
// Пока Run не крутится, ждет до отмены ctx.
func (r *Runner) Frame(ctx context.Context) (*image.RGBA, error) {
	reply := make(chan *image.RGBA, 1)
	select {
	case r.frames <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case img := <-reply:
		return img, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Latest - последний опубликованный снимок. Безопасен из любой горутины.
func (r *Runner) Latest() domain.Snapshot {
	return *r.latest.Load()
}

// Run крутит цикл до отмены ctx. Отмена срабатывает на границе тика.
func (r *Runner) Run(ctx context.Context) error {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "runner",
		"interval":  r.opts.Interval.String(),
	})

	r.loop.Start()
	log.Info("Headless loop started")

	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	var (
		held   domain.Input // удерживаемые клавиши удаленного игрока
		events domain.Input // накопленные нажатия
		idle   = r.opts.IdleTicks
	)

	for {
		select {
		case <-ctx.Done():
			r.loop.Stop()
			log.WithField("tick", r.loop.state.Tick).Info("Headless loop stopped")
			return ctx.Err()

		case ri := <-r.inputs:
			if ri.held {
				held = domain.Input{
					Forward:   ri.in.Forward,
					Backward:  ri.in.Backward,
					TurnLeft:  ri.in.TurnLeft,
					TurnRight: ri.in.TurnRight,
				}
			}
			events = events.Merge(domain.Input{Fire: ri.in.Fire, Weapon: ri.in.Weapon})
			idle = 0

		case action := <-r.controls:
			r.control(action, log)
			r.publish()

		case reply := <-r.frames:
			reply <- r.loop.Capture().Image

		case <-ticker.C:
			in := held.Merge(events)
			events = domain.Input{}

			if idle >= r.opts.IdleTicks && r.opts.Pilot != nil {
				in = r.opts.Pilot.Next(r.Latest())
			}
			idle++

			res, ok := r.loop.Tick(in)
			if !ok {
				continue
			}
			if r.opts.Tape != nil {
				r.opts.Tape.Record(res.Delta, in)
			}
			r.publish()
		}
	}
}

func (r *Runner) control(action domain.ActionType, log *logrus.Entry) {
	switch action {
	case domain.ActionPause:
		r.loop.PauseToggle()
	case domain.ActionReset:
		r.loop.Reset()
		if r.opts.Tape != nil {
			r.opts.Tape.MarkReset()
		}
	default:
		log.WithField("action", action.String()).Warn("Unsupported control action")
	}
}

func (r *Runner) publish() {
	snap := r.loop.Snapshot()
	r.latest.Store(&snap)
	if r.opts.Publish != nil {
		r.opts.Publish(snap)
	}
}
