package navigation

import (
	"github.com/lixenwraith/skirmish/vmath"
)

// FieldCache keeps recently used flow fields keyed by target cell
// Fields are recomputed lazily when the grid version changes
type FieldCache struct {
	grid   *Grid
	limit  int
	fields map[int]*FlowField
	order  []int // Least recently used first

	Computes int // Total Compute calls, for diagnostics
}

// NewFieldCache creates a cache holding at most limit fields
func NewFieldCache(grid *Grid, limit int) *FieldCache {
	if limit < 1 {
		limit = 1
	}
	return &FieldCache{
		grid:   grid,
		limit:  limit,
		fields: make(map[int]*FlowField, limit),
	}
}

// Field returns an up-to-date flow field toward the cell containing dest
func (c *FieldCache) Field(dest vmath.Vec3) (*FlowField, bool) {
	x, y, ok := c.grid.CellOf(dest)
	if !ok || c.grid.Blocked(x, y) {
		return nil, false
	}
	key := y*c.grid.Width + x

	if f, ok := c.fields[key]; ok {
		c.touch(key)
		if f.Stale() {
			f.Compute(x, y)
			c.Computes++
		}
		return f, true
	}

	var f *FlowField
	if len(c.order) >= c.limit {
		evict := c.order[0]
		c.order = c.order[1:]
		f = c.fields[evict]
		delete(c.fields, evict)
	} else {
		f = NewFlowField(c.grid)
	}
	f.Compute(x, y)
	c.Computes++
	c.fields[key] = f
	c.order = append(c.order, key)
	return f, true
}

// Steer returns the next waypoint from pos toward dest
// Falls back to dest when no path field exists for it
func (c *FieldCache) Steer(pos, dest vmath.Vec3) vmath.Vec3 {
	f, ok := c.Field(dest)
	if !ok {
		return dest
	}
	return f.Waypoint(pos, dest)
}

// Reachable reports whether dest can be reached from pos
func (c *FieldCache) Reachable(pos, dest vmath.Vec3) bool {
	f, ok := c.Field(dest)
	if !ok {
		return false
	}
	x, y, ok := c.grid.CellOf(pos)
	return ok && f.Cost(x, y) >= 0
}

func (c *FieldCache) touch(key int) {
	for i, k := range c.order {
		if k == key {
			copy(c.order[i:], c.order[i+1:])
			c.order[len(c.order)-1] = key
			return
		}
	}
}
