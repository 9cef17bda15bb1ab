package game

import (
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/vmath"
)

// pickRadius is how close a click must land to a monster to select it
const pickRadius = 0.75

// Click turns a point on the ground into the matching click message:
// a live monster under the cursor, walkable ground, or nothing
func (w *World) Click(pos vmath.Vec3) {
	var picked *Character
	best := pickRadius * pickRadius
	for m := range w.Monsters() {
		if !m.Alive() {
			continue
		}
		if d := vmath.V3DistSq(m.pos, pos); d <= best {
			picked, best = m, d
		}
	}

	switch {
	case picked != nil:
		id := picked.id
		event.Send(w.bus, func(m *event.MouseClickMonster) { m.Monster = id })
	case w.ctx.Grid.Walkable(pos):
		event.Send(w.bus, func(m *event.MouseClickNavmesh) { m.Destination = pos })
	default:
		event.Send[event.MouseClickNothing](w.bus, nil)
	}
}

// Pause, Unpause, Restart and Quit queue the matching game message

func (w *World) Pause()   { event.Send[event.PauseGame](w.bus, nil) }
func (w *World) Unpause() { event.Send[event.UnpauseGame](w.bus, nil) }
func (w *World) Restart() { event.Send[event.RestartGame](w.bus, nil) }
func (w *World) Quit()    { event.Send[event.QuitGame](w.bus, nil) }

// Paused reports whether the game clock is frozen
func (w *World) Paused() bool { return w.ctx.Clock.IsPaused() }

// SpawnMonster queues a monster at pos facing the hero
func (w *World) SpawnMonster(pos vmath.Vec3) {
	w.spawnMonster(pos, nil)
}

// spawnMonster queues a monster; spawned runs once it exists
func (w *World) spawnMonster(pos vmath.Vec3, spawned func(core.Entity)) {
	heading := 0.0
	if w.hero != nil {
		heading = headingTo(pos, w.hero.pos)
	}
	event.Send(w.bus, func(m *event.SpawnMonster) {
		m.Position = pos
		m.Heading = heading
		m.Spawned = spawned
	})
}

// creepOnSpawn swaps a fresh monster's lurking behaviour for creepToHero
func (w *World) creepOnSpawn(id core.Entity) {
	if m := w.monster(id); m != nil {
		m.site.SetTask(w.creepToHero(m))
	}
}
