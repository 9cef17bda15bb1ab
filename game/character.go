package game

import (
	"github.com/lixenwraith/skirmish/combat"
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/task"
	"github.com/lixenwraith/skirmish/vmath"
)

// Kind tells heroes from monsters
type Kind uint8

const (
	KindHero Kind = iota + 1
	KindMonster
)

func (k Kind) String() string {
	switch k {
	case KindHero:
		return "hero"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// Character is a hero or monster standing in the arena
// Every behaviour runs as a task on its site; state is only touched from those
// tasks and from bus handlers, both on the loop goroutine
type Character struct {
	id    core.Entity
	kind  Kind
	stats combat.Stats
	maxHP float64

	pos     vmath.Vec3
	heading float64 // Degrees on the XZ plane
	speed   float64 // Run speed, units per second

	site *task.Site

	// Animation events fired by the attack clip
	Hit       task.Hook
	AttackEnd task.Hook

	attacking  bool
	moving     bool
	forceAggro bool
	slot       combat.Slot
}

func newCharacter(id core.Entity, kind Kind, stats combat.Stats, speed float64, pos vmath.Vec3, heading float64) *Character {
	return &Character{
		id:      id,
		kind:    kind,
		stats:   stats,
		maxHP:   stats.HP,
		pos:     pos,
		heading: heading,
		speed:   speed,
		site:    task.NewSite(),
		slot:    combat.NoSlot,
	}
}

// Entity implements engine.Actor
func (c *Character) Entity() core.Entity { return c.id }

// Site implements engine.Actor
func (c *Character) Site() *task.Site { return c.site }

// Recover rebinds a faulted character to standing idle
func (c *Character) Recover(error) {
	c.attacking = false
	c.moving = false
	if c.kind == KindHero {
		c.site.Cancel()
		return
	}
	c.site.SetTask(idle())
}

func (c *Character) Kind() Kind           { return c.kind }
func (c *Character) Position() vmath.Vec3 { return c.pos }
func (c *Character) Heading() float64     { return c.heading }
func (c *Character) Stats() combat.Stats  { return c.stats }
func (c *Character) MaxHP() float64       { return c.maxHP }
func (c *Character) Slot() combat.Slot    { return c.slot }
func (c *Character) Attacking() bool      { return c.attacking }
func (c *Character) Moving() bool         { return c.moving }
func (c *Character) HP() float64          { return c.stats.HP }
func (c *Character) Alive() bool          { return c.stats.HP > 0 }
func (c *Character) Aggroed() bool        { return c.forceAggro }

func (c *Character) distTo(o *Character) float64 { return vmath.V3Dist(c.pos, o.pos) }

// face turns toward p; a zero offset keeps the current heading
func (c *Character) face(p vmath.Vec3) {
	d := vmath.V3Sub(p, c.pos)
	if d.X == 0 && d.Z == 0 {
		return
	}
	c.heading = vmath.HeadingXZ(d)
}

// idle stands in place forever
func idle() task.Task {
	return task.Func(func(yield func(task.Signal) bool) {
		for yield(task.Update) {
		}
	})
}

func headingTo(from, to vmath.Vec3) float64 {
	return vmath.HeadingXZ(vmath.V3Sub(to, from))
}
