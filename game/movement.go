package game

import (
	"math"

	"github.com/lixenwraith/skirmish/task"
	"github.com/lixenwraith/skirmish/vmath"
)

// arriveEpsilon absorbs float error when comparing against a stop distance
const arriveEpsilon = 1e-6

// moveTo runs c toward a possibly moving destination at speed until it is
// within stop of it. Each step follows the cached flow field, so obstacles are
// walked around; a destination off the grid is approached in a straight line
func (w *World) moveTo(c *Character, dest func() vmath.Vec3, stop, speed float64) task.Task {
	return task.Func(func(yield func(task.Signal) bool) {
		c.moving = true
		defer func() { c.moving = false }()

		for {
			target := dest()
			remaining := vmath.V3Dist(c.pos, target) - stop
			if remaining <= arriveEpsilon {
				return
			}
			if step := math.Min(speed*w.clock.DeltaTime().Seconds(), remaining); step > 0 {
				wp := w.ctx.Paths.Steer(c.pos, target)
				c.face(wp)
				c.pos = vmath.V3MoveTowards(c.pos, wp, step)
			}
			if !yield(task.Update) {
				return
			}
		}
	})
}

// runTo moves c to a fixed destination at run speed
func (w *World) runTo(c *Character, dest vmath.Vec3, stop float64) task.Task {
	return w.moveTo(c, func() vmath.Vec3 { return dest }, stop, c.speed)
}

// runToCharacter follows target at run speed until within distance of it
func (w *World) runToCharacter(c, target *Character, distance float64) task.Task {
	return w.moveTo(c, target.Position, distance, c.speed)
}
