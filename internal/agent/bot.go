// Package agent - автопилот игрока для headless-режима.
package agent

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// Bot представляет собой "Игрока-компьютера".
// Он видит тот же снимок, что и зрители, и на его основе выдает снимок ввода:
// поворачивается к ближайшему врагу, подходит ближе и стреляет, когда прицел на цели.
//
// Bot не трогает состояние симуляции: только читает Snapshot.
type Bot struct {
	// AimTolerance - допустимое отклонение прицела (радианы) для выстрела
	AimTolerance float64
	// TurnDeadZone - меньшие отклонения не доворачиваются
	TurnDeadZone float64
	// Engage - дистанция, ближе которой бот не подходит
	Engage float64
	// FireEvery - пауза между выстрелами в тиках
	FireEvery int

	cooldown int
	target   domain.EntityID
	log      *logrus.Entry
}

func NewBot() *Bot {
	return &Bot{
		AimTolerance: 0.05,
		TurnDeadZone: 0.03,
		Engage:       3,
		FireEvery:    10,
		log:          logger.Log.WithField("component", "bot"),
	}
}

// Next реализует engine.Pilot
func (b *Bot) Next(snap domain.Snapshot) domain.Input {
	var in domain.Input
	if b.cooldown > 0 {
		b.cooldown--
	}

	// 1. Ищем цель
	enemy, ok := nearestEnemy(snap)
	if !ok {
		// Врагов нет - медленно осматриваемся
		in.TurnRight = true
		return in
	}
	if enemy.ID != b.target {
		b.target = enemy.ID
		b.log.WithFields(logrus.Fields{
			"target": enemy.ID.String(),
			"dist":   snap.Player.Pos.DistanceTo(enemy.Pos),
		}).Debug("New target")
	}

	// 2. Доворачиваем прицел
	diff := AngleDiff(snap.Player.Angle, snap.Player.Pos.AngleTo(enemy.Pos))
	switch {
	case diff > b.TurnDeadZone:
		in.TurnRight = true
	case diff < -b.TurnDeadZone:
		in.TurnLeft = true
	}

	aligned := math.Abs(diff) <= b.AimTolerance

	// 3. Сближаемся, пока далеко
	if aligned && snap.Player.Pos.DistanceTo(enemy.Pos) > b.Engage {
		in.Forward = true
	}

	// 4. Огонь
	if aligned && snap.Player.Ammo > 0 && b.cooldown == 0 {
		in.Fire = 1
		b.cooldown = b.FireEvery
	}

	return in
}

// AngleDiff - кратчайший поворот от from к to в (-π, π].
// Положительный - по часовой (TurnRight увеличивает угол).
func AngleDiff(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d <= -math.Pi:
		d += 2 * math.Pi
	}
	return d
}

func nearestEnemy(snap domain.Snapshot) (domain.Enemy, bool) {
	var (
		best  domain.Enemy
		found bool
		min   = math.Inf(1)
	)
	for _, e := range snap.Enemies {
		d := snap.Player.Pos.DistanceTo(e.Pos)
		if d < min {
			best, min, found = e, d, true
		}
	}
	return best, found
}
