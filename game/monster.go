package game

import (
	"math"

	"github.com/lixenwraith/skirmish/combat"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/flow"
	"github.com/lixenwraith/skirmish/task"
	"github.com/lixenwraith/skirmish/vmath"
)

// aiMain is a monster's whole life before death: lurk until the hero comes
// close or something hurts it, then hold a slot around the hero and swing from
// melee slots until the hero is dead. The slot is released however it ends
func (w *World) aiMain(m *Character) task.Task {
	return task.Func(func(yield func(task.Signal) bool) {
		defer w.releaseSlot(m)

		detect := func() bool { return w.detectsHero(m) }
		if !task.Run(yield, flow.WaitUntil(detect, task.Update)) {
			return
		}

		hero := w.hero
		event.Send(w.bus, func(msg *event.MonsterAggro) {
			msg.Monster = m.id
			msg.Target = hero.id
		})

		for hero.Alive() && w.hero == hero {
			engage := task.Func(func(yield func(task.Signal) bool) {
				if !task.Run(yield, w.runToHero(m, hero)) {
					return
				}
				if !m.slot.Melee() {
					w.regroup(m, hero)
					return
				}
				inRange := func() bool { return w.ctx.Slots.InRange(m.distTo(hero)) }
				task.Run(yield, flow.ExecuteWhile(w.attackHero(m, hero), inRange))
			})
			if !task.Run(yield, flow.ExecuteOrSkip(engage, task.Update)) {
				return
			}
		}
	})
}

// detectsHero reports whether m notices the live hero: close enough, or hurt
func (w *World) detectsHero(m *Character) bool {
	h := w.hero
	return h != nil && h.Alive() && (m.forceAggro || m.distTo(h) <= w.ctx.Settings.Monster.AggroDistance)
}

// creepToHero walks m toward the hero at walk speed until it notices the hero,
// then hands over to aiMain. Without a hero m stays where it is
func (w *World) creepToHero(m *Character) task.Task {
	walk := w.ctx.Settings.Monster.WalkSpeed
	heroPos := func() vmath.Vec3 {
		if h := w.hero; h != nil && h.Alive() {
			return h.pos
		}
		return m.pos
	}
	unaware := func() bool { return !w.detectsHero(m) }

	return flow.Sequence(
		func() task.Task { return flow.ExecuteWhile(w.moveTo(m, heroPos, 0, walk), unaware) },
		func() task.Task { return w.aiMain(m) },
	)
}

// runToHero keeps m heading for its slot around the hero. A new slot is
// reserved on every pass; the run is abandoned as soon as the hero has moved
// far enough that the slot no longer stands where it was reserved
func (w *World) runToHero(m, hero *Character) task.Task {
	repath := w.ctx.Settings.Combat.RepathDistance

	return task.Func(func(yield func(task.Signal) bool) {
		for hero.Alive() && w.slotDistance(m, hero) > repath {
			w.releaseSlot(m)
			slot, err := w.ctx.Slots.ReserveClosest(hero.pos, m.pos)
			if err != nil {
				// Everything taken; try again next tick
				if !yield(task.Update) {
					return
				}
				continue
			}
			m.slot = slot

			target := w.ctx.Slots.ComputePosition(hero.pos, slot.Index)
			start := hero.pos
			heroStill := func() bool { return vmath.V3Dist(hero.pos, start) < repath }
			run := flow.ExecuteWhile(w.runTo(m, target, 0), heroStill)
			if !task.Run(yield, flow.ExecuteOrSkip(run, task.Update)) {
				return
			}
		}
	})
}

// attackHero faces and swings at the hero until the hero dies
func (w *World) attackHero(m, hero *Character) task.Task {
	return w.attackUntilDead(m, hero)
}

// regroup trades a holding slot for a melee slot once one opens up
func (w *World) regroup(m, hero *Character) {
	prev := m.slot
	w.releaseSlot(m)
	slot, err := w.ctx.Slots.ReserveClosest(hero.pos, m.pos)
	if err != nil {
		return
	}
	m.slot = slot
	if slot.Melee() && !prev.Melee() {
		w.log.Debug("monster moves to melee", "monster", m.id, "slot", slot.Index)
	}
}

// slotDistance returns how far m stands from its slot, infinite without one
func (w *World) slotDistance(m, hero *Character) float64 {
	if !m.slot.Valid() {
		return math.Inf(1)
	}
	return vmath.V3Dist(m.pos, w.ctx.Slots.ComputePosition(hero.pos, m.slot.Index))
}

func (w *World) releaseSlot(m *Character) {
	w.ctx.Slots.Release(m.slot.Index)
	m.slot = combat.NoSlot
}

// monsterDeath lies in state for the death duration, then asks to be recycled
func (w *World) monsterDeath(m *Character) task.Task {
	return flow.Sequence(
		func() task.Task { return flow.Wait(w.clock, w.ctx.Settings.Combat.MonsterDeath, task.Update) },
		func() task.Task {
			return flow.Do(func() {
				event.Send(w.bus, func(msg *event.RecycleMonster) { msg.Monster = m.id })
			})
		},
	)
}
