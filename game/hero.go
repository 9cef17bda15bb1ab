package game

import (
	"errors"

	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/flow"
	"github.com/lixenwraith/skirmish/task"
)

// Hero control handlers exist only while a hero is alive, so orders issued
// between runs fall through as unhandled messages

func (w *World) addHeroHandlers() {
	err := errors.Join(
		event.AddHandler(w.bus, w.onRunTo),
		event.AddHandler(w.bus, w.onAttack),
	)
	if err != nil {
		w.log.Warn("hero handlers", "error", err)
	}
}

func (w *World) removeHeroHandlers() {
	if event.HasHandler[event.RunTo](w.bus) {
		_ = event.RemoveHandler[event.RunTo](w.bus)
	}
	if event.HasHandler[event.Attack](w.bus) {
		_ = event.RemoveHandler[event.Attack](w.bus)
	}
}

func (w *World) onRunTo(msg *event.RunTo) {
	h := w.byID[msg.Hero]
	if h == nil || h != w.hero || !h.Alive() {
		return
	}
	// msg is recycled when the handler returns
	dest, stop, done := msg.Destination, msg.DistanceFromGoal, msg.Done
	h.site.SetTask(task.Func(func(yield func(task.Signal) bool) {
		if !task.Run(yield, w.runTo(h, dest, stop)) {
			return
		}
		if done != nil {
			done()
		}
	}))
}

func (w *World) onAttack(msg *event.Attack) {
	h := w.byID[msg.Hero]
	if h == nil || h != w.hero || !h.Alive() {
		return
	}
	h.site.SetTask(w.autoAttack(h, msg.Target, msg.Done))
}

// autoAttack closes in on target and swings until it dies, then moves on to
// the nearest monster still fighting the hero. done runs once nothing is left
func (w *World) autoAttack(h *Character, target core.Entity, done func()) task.Task {
	distance, _ := w.ctx.Slots.Distances()

	return task.Func(func(yield func(task.Signal) bool) {
		t := w.monster(target)
		for t != nil {
			if !t.Alive() {
				t = w.nextTarget(h)
				continue
			}
			approach := flow.ExecuteWhile(w.runToCharacter(h, t, distance), t.Alive)
			if !task.Run(yield, approach) {
				return
			}
			inRange := func() bool { return w.ctx.Slots.InRange(h.distTo(t)) }
			swing := flow.ExecuteWhile(w.attackUntilDead(h, t), inRange)
			if !task.Run(yield, flow.ExecuteOrSkip(swing, task.Update)) {
				return
			}
		}
		if done != nil {
			done()
		}
	})
}

// nextTarget picks the closest live monster that has aggroed the hero
func (w *World) nextTarget(h *Character) *Character {
	var best *Character
	for _, id := range w.ctx.Combat.Aggroed() {
		m := w.monster(id)
		if m == nil || !m.Alive() {
			continue
		}
		if best == nil || h.distTo(m) < h.distTo(best) {
			best = m
		}
	}
	return best
}

// heroDeath plays the death for its duration and reports the end
func (w *World) heroDeath(done func()) task.Task {
	return flow.Sequence(
		func() task.Task { return flow.Wait(w.clock, w.ctx.Settings.Combat.HeroDeath, task.Update) },
		func() task.Task { return flow.Do(done) },
	)
}
