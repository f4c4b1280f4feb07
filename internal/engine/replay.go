package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// Replay проигрывает ленту на свежем состоянии, подставляя записанные Δt вместо часов.
// Маркеры сброса повторяют сбросы записи. Advance детерминирован, поэтому итог
// совпадает с записанной партией, если правила те же.
func Replay(st *domain.State, cfg Config, tape *domain.Tape) domain.Snapshot {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"arena":     tape.Arena,
	})
	if want := cfg.Rules.Fingerprint(); tape.Rules != 0 && tape.Rules != want {
		log.WithFields(logrus.Fields{
			"tape_rules":   tape.Rules,
			"config_rules": want,
		}).Warn("Tape was recorded with different rules, replay will diverge")
	}

	loop := NewLoop(st, cfg, nil, nil)
	loop.Start()

	kills, resets := 0, 0
	for _, fr := range tape.Frames {
		if fr.Reset {
			loop.Reset()
			resets++
			continue
		}
		res := loop.Step(fr.Input, fr.Delta)
		kills += res.Report.Kills()
	}

	snap := loop.Snapshot()
	log.WithFields(logrus.Fields{
		"frames":  len(tape.Frames),
		"resets":  resets,
		"kills":   kills,
		"enemies": snap.EnemyCount(),
	}).Info("Replay finished")
	return snap
}
