// Package game is the arena: a hero, waves of monsters, and the behaviours
// that drive them, all expressed as tasks advanced by the engine loop
//
// Behaviours never call each other directly. Input, spawning, damage and death
// travel over the message bus; each character's current behaviour is the task
// bound to its site, and the game flow (start, restart, player died, quit)
// runs on the world's own site.
package game

import (
	"fmt"
	"iter"
	"log/slog"
	"math"

	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/flow"
	"github.com/lixenwraith/skirmish/task"
	"github.com/lixenwraith/skirmish/vmath"
)

// Options configures a World
type Options struct {
	Effects     Effects // nil discards effects
	Autopilot   bool    // Hero attacks the nearest monster whenever idle
	AutoRestart bool    // Restart after the game-over screen instead of waiting for input
	OnQuit      func()  // Called by the quit flow, usually Loop.Stop
}

// director is a site-only actor for arena-wide behaviours
type director struct {
	id   core.Entity
	name string
	site *task.Site
	log  *slog.Logger
}

func (d *director) Entity() core.Entity { return d.id }
func (d *director) Site() *task.Site    { return d.site }

func (d *director) Recover(err error) {
	d.log.Warn("director stopped after fault", "director", d.name, "error", err)
	d.site.Cancel()
}

// World owns every character and implements both the game-level actor and
// the roster consumed by engine.Loop
type World struct {
	ctx   *engine.GameContext
	bus   *event.Bus
	log   *slog.Logger
	opts  Options
	clock flow.Clock

	site *task.Site // Game flow

	spawner *director
	pilot   *director

	cast   []*Character // Spawn order
	byID   map[core.Entity]*Character
	hero   *Character
	over   bool
	spawns int
}

// NewWorld registers the game's message handlers on ctx.Bus
func NewWorld(ctx *engine.GameContext, opts Options) (*World, error) {
	if opts.Effects == nil {
		opts.Effects = nopEffects{}
	}
	log := ctx.Log.With("component", "game")
	w := &World{
		ctx:   ctx,
		bus:   ctx.Bus,
		log:   log,
		opts:  opts,
		clock: ctx,
		site:  task.NewSite(),
		byID:  make(map[core.Entity]*Character),
	}
	w.spawner = &director{id: ctx.Entities.Next(), name: "spawner", site: task.NewSite(), log: log}
	w.pilot = &director{id: ctx.Entities.Next(), name: "pilot", site: task.NewSite(), log: log}

	if err := w.registerHandlers(); err != nil {
		return nil, fmt.Errorf("register game handlers: %w", err)
	}
	return w, nil
}

// Entity implements engine.Actor; the game site is owned by no entity
func (w *World) Entity() core.Entity { return 0 }

// Site implements engine.Actor
func (w *World) Site() *task.Site { return w.site }

// Recover drops a faulted game flow
func (w *World) Recover(err error) {
	w.log.Error("game flow aborted", "error", err)
	w.site.Cancel()
}

// Actors implements engine.Roster: directors first, then characters in spawn order
func (w *World) Actors(buf []engine.Actor) []engine.Actor {
	buf = append(buf, w.spawner, w.pilot)
	for _, c := range w.cast {
		buf = append(buf, c)
	}
	return buf
}

// Start binds the start flow to the game site
func (w *World) Start() {
	w.site.SetTask(w.startGame())
}

// Context returns the services the world runs on
func (w *World) Context() *engine.GameContext { return w.ctx }

// Hero returns the live hero, or nil between runs
func (w *World) Hero() *Character { return w.hero }

// Character looks up a character by entity
func (w *World) Character(id core.Entity) *Character { return w.byID[id] }

// All yields every character in spawn order
func (w *World) All() iter.Seq[*Character] {
	return func(yield func(*Character) bool) {
		for _, c := range w.cast {
			if !yield(c) {
				return
			}
		}
	}
}

// Monsters yields live and dying monsters
func (w *World) Monsters() iter.Seq[*Character] {
	return func(yield func(*Character) bool) {
		for _, c := range w.cast {
			if c.kind == KindMonster && !yield(c) {
				return
			}
		}
	}
}

// LiveMonsters counts monsters with HP left
func (w *World) LiveMonsters() int {
	n := 0
	for m := range w.Monsters() {
		if m.Alive() {
			n++
		}
	}
	return n
}

// GameOver reports whether the hero died in the current run
func (w *World) GameOver() bool { return w.over }

// Kills returns the kill count of the current run
func (w *World) Kills() int { return w.ctx.Combat.KillCount() }

// Spawned returns the number of monsters spawned in the current run
func (w *World) Spawned() int { return w.spawns }

func (w *World) monster(id core.Entity) *Character {
	if c := w.byID[id]; c != nil && c.kind == KindMonster {
		return c
	}
	return nil
}

func (w *World) add(c *Character) {
	w.cast = append(w.cast, c)
	w.byID[c.id] = c
}

// remove cancels c's behaviour and drops it from the roster
func (w *World) remove(id core.Entity) *Character {
	c := w.byID[id]
	if c == nil {
		return nil
	}
	c.site.Cancel()
	delete(w.byID, id)
	for i, o := range w.cast {
		if o == c {
			w.cast = append(w.cast[:i], w.cast[i+1:]...)
			break
		}
	}
	return c
}

// nearestMonster returns the closest live monster to pos, preferring aggroed ones
func (w *World) nearestMonster(pos vmath.Vec3) *Character {
	var best *Character
	bestDist := math.Inf(1)
	bestAggro := false
	for m := range w.Monsters() {
		if !m.Alive() {
			continue
		}
		aggro := w.ctx.Combat.IsAggroed(m.id)
		d := vmath.V3DistSq(m.pos, pos)
		if (aggro && !bestAggro) || (aggro == bestAggro && d < bestDist) {
			best, bestDist, bestAggro = m, d, aggro
		}
	}
	return best
}

// spawnPoint returns a walkable point near the arena centre
func (w *World) spawnPoint() vmath.Vec3 {
	maxX, maxZ := w.ctx.Grid.Bounds()
	center := vmath.V3(maxX/2, 0, maxZ/2)
	if p, ok := w.ctx.Grid.Sample(center, math.Max(maxX, maxZ)); ok {
		return p
	}
	return center
}

// spawnPosition picks a random walkable cell away from the hero with a path to it
func (w *World) spawnPosition() (vmath.Vec3, bool) {
	const attempts = 32
	g := w.ctx.Grid
	minDist := w.ctx.Settings.Combat.Rings.Outer.Radius
	for range attempts {
		x, y := w.ctx.Rand.Intn(g.Width), w.ctx.Rand.Intn(g.Height)
		if g.Blocked(x, y) {
			continue
		}
		p := g.CellCenter(x, y)
		if h := w.hero; h != nil && (vmath.V3Dist(p, h.pos) < minDist || !w.ctx.Paths.Reachable(p, h.pos)) {
			continue
		}
		return p, true
	}
	return vmath.Vec3{}, false
}
