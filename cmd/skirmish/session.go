package main

import (
	"log/slog"

	"github.com/lixenwraith/skirmish/config"
	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/game"
)

// sessionOptions carry what differs between headless and terminal runs
type sessionOptions struct {
	log         *slog.Logger
	clock       engine.Clock
	metrics     engine.MetricSet
	effects     game.Effects
	autopilot   bool
	autoRestart bool
	afterTick   func(tick uint64)
}

// session is one arena and the loop driving it
type session struct {
	ctx   *engine.GameContext
	world *game.World
	loop  *engine.Loop
}

func newSession(s config.Settings, opts sessionOptions) (*session, error) {
	ctx, err := engine.NewGameContext(s, engine.ContextOptions{
		Logger:  opts.log,
		Clock:   opts.clock,
		Metrics: opts.metrics,
	})
	if err != nil {
		return nil, err
	}

	sess := &session{ctx: ctx}
	sess.world, err = game.NewWorld(ctx, game.Options{
		Effects:     opts.effects,
		Autopilot:   opts.autopilot,
		AutoRestart: opts.autoRestart,
		OnQuit:      func() { sess.loop.Stop() },
	})
	if err != nil {
		return nil, err
	}
	sess.loop = engine.NewLoop(ctx, sess.world, sess.world, engine.LoopOptions{AfterTick: opts.afterTick})
	return sess, nil
}
