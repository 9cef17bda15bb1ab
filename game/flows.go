package game

import (
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/flow"
	"github.com/lixenwraith/skirmish/task"
)

// Game flows run on the world site. Each is a fresh task; binding one replaces
// whatever flow was running

func (w *World) transition() task.Task {
	return flow.Wait(w.clock, w.ctx.Settings.Combat.Transition, task.Update)
}

// startGame clears combat state and spawns the hero; control handlers and
// directors come up once it exists, so nothing can aggro before the reset
func (w *World) startGame() task.Task {
	return flow.Sequence(
		func() task.Task {
			return flow.Do(func() {
				w.over = false
				w.spawns = 0
				w.ctx.Slots.Reset()
				w.ctx.Combat.Reset()
				pos := w.spawnPoint()
				event.Send(w.bus, func(m *event.SpawnHero) {
					m.Position = pos
					m.Spawned = w.heroSpawned
				})
			})
		},
		w.transition,
		func() task.Task {
			return flow.Do(func() {
				w.log.Info("game started", "session", w.ctx.Session)
			})
		},
	)
}

func (w *World) heroSpawned(core.Entity) {
	w.addHeroHandlers()
	w.startDirectors()
}

// endGame tears the arena down: every monster is killed and recycled, then the hero
func (w *World) endGame() task.Task {
	return flow.Sequence(
		func() task.Task {
			return flow.Do(func() {
				w.removeHeroHandlers()
				w.stopDirectors()
			})
		},
		w.transition,
		func() task.Task {
			return flow.Do(func() {
				for m := range w.Monsters() {
					w.ctx.Combat.MonsterDead(m.id)
					id := m.id
					event.Send(w.bus, func(msg *event.RecycleMonster) { msg.Monster = id })
				}
				event.Send[event.RecycleHero](w.bus, nil)
			})
		},
		// Recycle messages are dispatched before the next game step
		func() task.Task { return flow.Yield(task.Update) },
		func() task.Task {
			return flow.Do(func() {
				w.ctx.Slots.Reset()
				w.ctx.Combat.Reset()
			})
		},
	)
}

// restartGame ends the run, unfreezes the clock and starts a new run
func (w *World) restartGame() task.Task {
	return flow.Sequence(
		w.endGame,
		func() task.Task { return flow.Do(w.ctx.Clock.Resume) },
		w.startGame,
	)
}

// quitGame gives effects a moment to play out, then stops the host loop
func (w *World) quitGame() task.Task {
	return flow.Sequence(
		func() task.Task { return flow.Do(w.ctx.Clock.Resume) },
		w.transition,
		func() task.Task {
			return flow.Do(func() {
				w.log.Info("quit", "kills", w.ctx.Combat.KillCount())
				if w.opts.OnQuit != nil {
					w.opts.OnQuit()
				}
			})
		},
	)
}

// playerDied drops hero control, plays the hero's death and shows game over
func (w *World) playerDied() task.Task {
	return task.Func(func(yield func(task.Signal) bool) {
		w.removeHeroHandlers()
		w.stopDirectors()

		finished := false
		if h := w.hero; h != nil {
			h.site.SetTask(w.heroDeath(func() { finished = true }))
		} else {
			finished = true
		}
		if !task.Run(yield, flow.WaitUntil(func() bool { return finished }, task.Update)) {
			return
		}

		w.over = true
		w.log.Info("game over", "kills", w.ctx.Combat.KillCount(), "spawned", w.spawns)
		if !w.opts.AutoRestart {
			return
		}
		if !task.Run(yield, w.transition()) {
			return
		}
		event.Send[event.RestartGame](w.bus, nil)
	})
}

// === Directors ===

func (w *World) startDirectors() {
	w.spawner.site.SetTask(w.spawnLoop())
	if w.opts.Autopilot {
		w.pilot.site.SetTask(w.pilotLoop())
	}
}

func (w *World) stopDirectors() {
	w.spawner.site.Cancel()
	w.pilot.site.Cancel()
}

// spawnLoop keeps up to MaxConcurrent monsters alive, one per interval, until
// Total monsters have been spawned
func (w *World) spawnLoop() task.Task {
	s := w.ctx.Settings.Spawns

	return task.Func(func(yield func(task.Signal) bool) {
		if s.MaxConcurrent == 0 {
			return
		}
		room := func() bool { return w.LiveMonsters() < s.MaxConcurrent }
		var spawned func(core.Entity)
		if s.WalkToHero {
			spawned = w.creepOnSpawn
		}
		for s.Total == 0 || w.spawns < s.Total {
			if !task.Run(yield, flow.WaitUntil(room, task.Update)) {
				return
			}
			if pos, ok := w.spawnPosition(); ok {
				w.spawnMonster(pos, spawned)
			} else {
				w.log.Debug("no spawn position found")
			}
			if !task.Run(yield, flow.ExecuteOrSkip(flow.Wait(w.clock, s.Interval, task.Update), task.Update)) {
				return
			}
		}
		w.log.Debug("spawner finished", "spawned", w.spawns)
	})
}

// pilotLoop plays the hero: whenever it stands idle, click the best monster
func (w *World) pilotLoop() task.Task {
	heroIdle := func() bool {
		h := w.hero
		return h != nil && h.Alive() && !h.site.Busy()
	}

	return task.Func(func(yield func(task.Signal) bool) {
		for {
			if !task.Run(yield, flow.WaitUntil(heroIdle, task.Update)) {
				return
			}
			if t := w.nearestMonster(w.hero.pos); t != nil {
				id := t.id
				event.Send(w.bus, func(m *event.MouseClickMonster) { m.Monster = id })
			}
			if !yield(task.Update) {
				return
			}
		}
	})
}
