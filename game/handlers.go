package game

import (
	"errors"

	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/vmath"
)

// registerHandlers installs the handlers that live as long as the world
func (w *World) registerHandlers() error {
	return errors.Join(
		// Input
		event.AddHandler(w.bus, w.onClickNavmesh),
		event.AddHandler(w.bus, w.onClickMonster),
		event.AddHandler(w.bus, w.onClickNothing),

		// Character
		event.AddHandler(w.bus, w.onMonsterAggro),
		event.AddHandler(w.bus, w.onApplyDamage),
		event.AddHandler(w.bus, w.onDie),

		// Objects
		event.AddHandler(w.bus, w.onSpawnHero),
		event.AddHandler(w.bus, w.onSpawnMonster),
		event.AddHandler(w.bus, w.onRecycleMonster),
		event.AddHandler(w.bus, w.onRecycleHero),

		// Game
		event.AddHandler(w.bus, w.onCombatStarted),
		event.AddHandler(w.bus, w.onCombatEnded),
		event.AddHandler(w.bus, w.onPauseGame),
		event.AddHandler(w.bus, w.onUnpauseGame),
		event.AddHandler(w.bus, w.onRestartGame),
		event.AddHandler(w.bus, w.onQuitGame),

		// Effects
		event.AddHandler(w.bus, w.onPlayEffect),
	)
}

// === Input ===

func (w *World) onClickNavmesh(msg *event.MouseClickNavmesh) {
	w.effect(event.EffectClick, msg.Destination)
	if w.hero == nil {
		return
	}
	hero, dest := w.hero.id, msg.Destination
	event.Send(w.bus, func(m *event.RunTo) {
		m.Hero = hero
		m.Destination = dest
	})
}

func (w *World) onClickMonster(msg *event.MouseClickMonster) {
	if w.hero == nil || w.monster(msg.Monster) == nil {
		return
	}
	hero, target := w.hero.id, msg.Monster
	event.Send(w.bus, func(m *event.Attack) {
		m.Hero = hero
		m.Target = target
	})
}

func (w *World) onClickNothing(*event.MouseClickNothing) {
	w.log.Debug("click hit nothing")
}

// === Character ===

func (w *World) onMonsterAggro(msg *event.MonsterAggro) {
	if w.monster(msg.Monster) == nil {
		return
	}
	w.ctx.Combat.MonsterAggro(msg.Monster)
}

func (w *World) onApplyDamage(msg *event.ApplyDamage) {
	t := w.byID[msg.Target]
	if t == nil || !t.Alive() {
		return
	}
	t.stats.HP -= msg.Damage
	if t.kind == KindMonster {
		t.forceAggro = true
	}
	w.effect(event.EffectHit, t.pos)
	w.log.Debug("damage", "source", msg.Source, "target", t.id, "damage", msg.Damage, "hp", t.stats.HP)

	if !t.Alive() {
		target, killer := t.id, msg.Source
		event.Send(w.bus, func(m *event.Die) {
			m.Character = target
			m.Killer = killer
		})
	}
}

func (w *World) onDie(msg *event.Die) {
	c := w.byID[msg.Character]
	if c == nil {
		return
	}
	c.attacking = false
	c.moving = false
	w.effect(event.EffectDeath, c.pos)

	switch c.kind {
	case KindMonster:
		w.ctx.Combat.MonsterDead(c.id)
		c.site.SetTask(w.monsterDeath(c))
		w.log.Info("monster died", "monster", c.id, "killer", msg.Killer, "kills", w.ctx.Combat.KillCount())
	case KindHero:
		w.log.Info("hero died", "killer", msg.Killer)
		w.site.SetTask(w.playerDied())
	}
}

// === Objects ===

func (w *World) onSpawnHero(msg *event.SpawnHero) {
	if w.hero != nil {
		w.log.Warn("hero already spawned", "hero", w.hero.id)
		return
	}
	s := w.ctx.Settings.Hero
	h := newCharacter(w.ctx.Entities.Next(), KindHero, s.Stats, s.RunSpeed, msg.Position, msg.Heading)
	w.add(h)
	w.hero = h
	w.log.Info("hero spawned", "hero", h.id, "pos", h.pos)
	if msg.Spawned != nil {
		msg.Spawned(h.id)
	}
}

func (w *World) onSpawnMonster(msg *event.SpawnMonster) {
	s := w.ctx.Settings.Monster
	m := newCharacter(w.ctx.Entities.Next(), KindMonster, s.Stats, s.RunSpeed, msg.Position, msg.Heading)
	w.add(m)
	w.spawns++
	m.site.SetTask(w.aiMain(m))
	w.log.Debug("monster spawned", "monster", m.id, "pos", m.pos)
	if msg.Spawned != nil {
		msg.Spawned(m.id)
	}
}

func (w *World) onRecycleMonster(msg *event.RecycleMonster) {
	m := w.monster(msg.Monster)
	if m == nil {
		return
	}
	w.remove(m.id)
	w.ctx.Combat.Forget(m.id)
	w.releaseSlot(m)
}

func (w *World) onRecycleHero(*event.RecycleHero) {
	if w.hero == nil {
		return
	}
	w.remove(w.hero.id)
	w.hero = nil
}

// === Game ===

func (w *World) onCombatStarted(*event.CombatStarted) {
	w.effect(event.EffectCombatStart, w.heroPos())
}

func (w *World) onCombatEnded(*event.CombatEnded) {
	w.effect(event.EffectCombatEnd, w.heroPos())
}

// Pausing only freezes the clock; every site keeps advancing with a zero delta
func (w *World) onPauseGame(*event.PauseGame) {
	w.ctx.Clock.Pause()
	w.log.Info("game paused")
}

func (w *World) onUnpauseGame(*event.UnpauseGame) {
	w.ctx.Clock.Resume()
	w.log.Info("game resumed")
}

func (w *World) onRestartGame(*event.RestartGame) {
	w.site.SetTask(w.restartGame())
}

func (w *World) onQuitGame(*event.QuitGame) {
	w.site.SetTask(w.quitGame())
}

// === Effects ===

func (w *World) onPlayEffect(msg *event.PlayEffect) {
	w.opts.Effects.Play(msg.Effect, msg.Position)
}

func (w *World) heroPos() vmath.Vec3 {
	if w.hero == nil {
		return vmath.Zero
	}
	return w.hero.pos
}

// SlotPosition returns where c's reserved slot stands around the hero
func (w *World) SlotPosition(c *Character) (vmath.Vec3, bool) {
	if w.hero == nil || !c.slot.Valid() {
		return vmath.Vec3{}, false
	}
	return w.ctx.Slots.ComputePosition(w.hero.pos, c.slot.Index), true
}
