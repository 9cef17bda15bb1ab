package game

import (
	"time"

	"github.com/lixenwraith/skirmish/combat"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/flow"
	"github.com/lixenwraith/skirmish/task"
)

// attackClip stands in for the attack animation. It advances on AnimatorMove,
// fires Hit once the wind-up has elapsed and AttackEnd after the recovery.
// At most one hook fires per step
func (w *World) attackClip(c *Character) task.Task {
	windup := w.ctx.Settings.Combat.AttackWindup
	end := windup + w.ctx.Settings.Combat.AttackRecovery

	return task.Func(func(yield func(task.Signal) bool) {
		c.attacking = true
		defer func() { c.attacking = false }()

		var elapsed time.Duration
		hit := false
		for yield(task.AnimatorMove) {
			elapsed += w.clock.DeltaTime()
			switch {
			case !hit && elapsed >= windup:
				hit = true
				c.Hit.Fire()
			case hit && elapsed >= end:
				c.AttackEnd.Fire()
				return
			}
		}
	})
}

// attackOnce swings at target: wait for Hit, deal damage, wait for AttackEnd
// The clip runs alongside and only drives the hooks
func (w *World) attackOnce(a, target *Character) task.Task {
	strike := flow.Sequence(
		func() task.Task { return task.WaitFor(&a.Hit, task.AnimatorMove) },
		func() task.Task { return flow.Do(func() { w.strike(a, target) }) },
		func() task.Task { return task.WaitFor(&a.AttackEnd, task.AnimatorMove) },
	)
	return flow.Sequence(
		func() task.Task {
			return flow.Do(func() {
				a.face(target.pos)
				w.effect(event.EffectSwing, a.pos)
			})
		},
		func() task.Task { return flow.Concurrent(strike, w.attackClip(a)) },
	)
}

// strike pushes the damage of one landed hit
func (w *World) strike(a, target *Character) {
	if !a.Alive() || !target.Alive() {
		return
	}
	dmg := combat.ComputeDamage(a.stats, target.stats)
	event.Send(w.bus, func(m *event.ApplyDamage) {
		m.Source = a.id
		m.Target = target.id
		m.Damage = dmg
	})
}

// attackUntilDead swings at target for as long as it lives
func (w *World) attackUntilDead(a, target *Character) task.Task {
	return flow.RepeatWhile(func() task.Task { return w.attackOnce(a, target) }, target.Alive)
}
