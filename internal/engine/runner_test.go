package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/render"
	"github.com/wjkennedy/jira-quake3/pkg/clock"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// turnPilot всегда поворачивает направо
type turnPilot struct{ calls atomic.Int32 }

func (p *turnPilot) Next(domain.Snapshot) domain.Input {
	p.calls.Add(1)
	return domain.Input{TurnRight: true}
}

func startRunner(t *testing.T, opts RunnerOptions) (*Runner, func() error) {
	t.Helper()
	if opts.Interval == 0 {
		opts.Interval = time.Millisecond
	}
	loop := NewLoop(createTestState(), NewConfig(), nil, clock.New())
	r := NewRunner(loop, opts)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	stop := func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(2 * time.Second):
			t.Fatal("runner did not stop")
			return nil
		}
	}
	t.Cleanup(func() { cancel() })
	return r, stop
}

func TestRunner_PressFire(t *testing.T) {
	var published atomic.Int32
	r, stop := startRunner(t, RunnerOptions{
		Publish: func(domain.Snapshot) { published.Add(1) },
	})

	require.True(t, r.Press(2, 3))

	require.Eventually(t, func() bool {
		return r.Latest().Player.Ammo == domain.PlayerStartAmmo-2
	}, 2*time.Second, time.Millisecond)

	snap := r.Latest()
	assert.Equal(t, 3, snap.Player.Weapon)
	assert.Equal(t, "running", snap.Status)
	assert.Positive(t, published.Load())

	err := stop()
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "running", r.Latest().Status, "latest is the last published tick")
}

func TestRunner_SubmitHeldKeys(t *testing.T) {
	r, stop := startRunner(t, RunnerOptions{})
	defer stop()

	require.True(t, r.Submit(domain.Input{TurnLeft: true}))

	// Удерживаемая клавиша действует на каждом тике, пока не пришел новый снимок
	require.Eventually(t, func() bool {
		return r.Latest().Player.Angle < -0.1
	}, 2*time.Second, time.Millisecond)

	require.True(t, r.Submit(domain.Input{}))
	time.Sleep(20 * time.Millisecond)
	angle := r.Latest().Player.Angle
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, angle, r.Latest().Player.Angle)
}

func TestRunner_Controls(t *testing.T) {
	r, stop := startRunner(t, RunnerOptions{})
	defer stop()

	require.True(t, r.Press(4, 0))
	require.Eventually(t, func() bool {
		return r.Latest().EnemyCount() == 0
	}, 2*time.Second, time.Millisecond)

	require.True(t, r.Control(domain.ActionPause))
	require.Eventually(t, func() bool {
		return r.Latest().Status == "paused"
	}, 2*time.Second, time.Millisecond)

	require.True(t, r.Control(domain.ActionReset))
	require.Eventually(t, func() bool {
		s := r.Latest()
		return s.EnemyCount() == 1 && s.Player.Ammo == domain.PlayerStartAmmo
	}, 2*time.Second, time.Millisecond)
	assert.Equal(t, "paused", r.Latest().Status)
	assert.Equal(t, uint64(0), r.Latest().Tick)
}

func TestRunner_Frame(t *testing.T) {
	r, stop := startRunner(t, RunnerOptions{})
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	img, err := r.Frame(ctx)
	require.NoError(t, err)

	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
	assert.Equal(t, render.ColorCeiling, img.RGBAAt(0, 0))
}

func TestRunner_FrameWithoutRun(t *testing.T) {
	r := NewRunner(NewLoop(createTestState(), NewConfig(), nil, clock.New()), RunnerOptions{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := r.Frame(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunner_PilotAndTape(t *testing.T) {
	pilot := &turnPilot{}
	tape := &domain.Tape{Arena: "test"}
	r, stop := startRunner(t, RunnerOptions{Pilot: pilot, IdleTicks: 1, Tape: tape})

	require.Eventually(t, func() bool {
		return r.Latest().Player.Angle > 0
	}, 2*time.Second, time.Millisecond)
	require.ErrorIs(t, stop(), context.Canceled)

	assert.Positive(t, pilot.calls.Load())
	require.NotEmpty(t, tape.Frames)
	assert.True(t, tape.Frames[0].Input.TurnRight)
	assert.Equal(t, uint64(tape.Ticks()), r.Latest().Tick)
	assert.Equal(t, NewConfig().Rules.Fingerprint(), tape.Rules)
}

func TestReplay_MatchesRecordedRun(t *testing.T) {
	tape := &domain.Tape{Arena: "test"}
	r, stop := startRunner(t, RunnerOptions{Tape: tape})

	require.True(t, r.Submit(domain.Input{Forward: true, TurnLeft: true, Fire: 1}))
	require.True(t, r.Press(3, 2))
	require.Eventually(t, func() bool {
		return r.Latest().Tick > 30
	}, 2*time.Second, time.Millisecond)
	require.ErrorIs(t, stop(), context.Canceled)

	recorded := r.Latest()
	replayed := Replay(createTestState(), NewConfig(), tape)

	// FPS зависит от реальных часов записи и в ленту не попадает
	recorded.FPS, replayed.FPS = 0, 0
	recorded.Status, replayed.Status = "", ""
	assert.Equal(t, recorded, replayed)
}

func TestReplay_RepeatsResets(t *testing.T) {
	tape := &domain.Tape{Arena: "test"}
	r, stop := startRunner(t, RunnerOptions{Tape: tape})

	// 1. Убиваем врага
	require.True(t, r.Press(4, 0))
	require.Eventually(t, func() bool {
		return r.Latest().EnemyCount() == 0
	}, 2*time.Second, time.Millisecond)

	// 2. Сброс и еще несколько тиков на свежем мире
	require.True(t, r.Control(domain.ActionReset))
	require.Eventually(t, func() bool {
		s := r.Latest()
		return s.EnemyCount() == 1 && s.Tick > 3
	}, 2*time.Second, time.Millisecond)
	require.ErrorIs(t, stop(), context.Canceled)

	resets := 0
	for _, fr := range tape.Frames {
		if fr.Reset {
			resets++
		}
	}
	require.Equal(t, 1, resets)

	recorded := r.Latest()
	replayed := Replay(createTestState(), NewConfig(), tape)

	recorded.FPS, replayed.FPS = 0, 0
	recorded.Status, replayed.Status = "", ""
	assert.Equal(t, recorded, replayed)
	assert.Equal(t, 1, replayed.EnemyCount())
	assert.Equal(t, domain.PlayerStartAmmo, replayed.Player.Ammo)
}

func TestReplay_WarnsOnRulesMismatch(t *testing.T) {
	hook := test.NewLocal(logger.Log)
	defer hook.Reset()

	tape := &domain.Tape{Arena: "test", Rules: domain.DefaultRules().Fingerprint()}
	tape.Record(1, domain.Input{Fire: 1})

	cfg := NewConfig()
	cfg.Rules.ShotDamage = 50
	snap := Replay(createTestState(), cfg, tape)
	assert.Equal(t, domain.PlayerStartAmmo-1, snap.Player.Ammo)

	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned, "different rules must be reported")

	// Совпадающие правила и неизвестный отпечаток не предупреждают
	for _, rules := range []uint64{NewConfig().Rules.Fingerprint(), 0} {
		hook.Reset()
		tape.Rules = rules
		Replay(createTestState(), NewConfig(), tape)
		for _, e := range hook.AllEntries() {
			assert.NotEqual(t, logrus.WarnLevel, e.Level)
		}
	}
}
