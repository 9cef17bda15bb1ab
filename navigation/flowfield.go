package navigation

import (
	"github.com/lixenwraith/skirmish/vmath"
)

// Direction indices on the grid, clockwise from north (-y)
const (
	DirNone   int8 = -1 // Blocked or unreachable
	DirTarget int8 = -2 // Target cell
	DirCount  int8 = 8
)

// dirSteps is indexed by direction: N, NE, E, SE, S, SW, W, NW
var dirSteps = [DirCount][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Edge weights approximate Euclidean distance: cardinal 10, diagonal 14
const (
	costStraight    = 10
	costDiagonal    = 14
	costUnreachable = 1<<30 - 1
)

func stepCost(d int8) int {
	if d%2 == 1 {
		return costDiagonal
	}
	return costStraight
}

type frontierItem struct {
	cell int
	cost int
}

// frontier is a binary min-heap on cost
type frontier []frontierItem

func (h *frontier) push(it frontierItem) {
	*h = append(*h, it)
	i := len(*h) - 1
	for i > 0 {
		p := (i - 1) / 2
		if (*h)[p].cost <= (*h)[i].cost {
			break
		}
		(*h)[p], (*h)[i] = (*h)[i], (*h)[p]
		i = p
	}
}

func (h *frontier) pop() frontierItem {
	old := *h
	top := old[0]
	last := len(old) - 1
	old[0] = old[last]
	*h = old[:last]

	i := 0
	for {
		l := 2*i + 1
		if l >= len(*h) {
			break
		}
		m := l
		if r := l + 1; r < len(*h) && (*h)[r].cost < (*h)[l].cost {
			m = r
		}
		if (*h)[i].cost <= (*h)[m].cost {
			break
		}
		(*h)[i], (*h)[m] = (*h)[m], (*h)[i]
		i = m
	}
	return top
}

// FlowField holds, per cell, the neighbour to step to on the shortest path to a target cell
type FlowField struct {
	grid    *Grid
	dirs    []int8
	costs   []int
	targetX int
	targetY int
	version uint64
	queue   frontier
}

// NewFlowField allocates a field sized for grid
func NewFlowField(grid *Grid) *FlowField {
	n := grid.Width * grid.Height
	return &FlowField{
		grid:    grid,
		dirs:    make([]int8, n),
		costs:   make([]int, n),
		targetX: -1,
		targetY: -1,
		queue:   make(frontier, 0, n/4),
	}
}

// cornerCut reports whether a diagonal step from (x, y) would clip a blocked corner
func (f *FlowField) cornerCut(x, y int, d int8) bool {
	s := dirSteps[d]
	if s[0] == 0 || s[1] == 0 {
		return false
	}
	return f.grid.Blocked(x+s[0], y) || f.grid.Blocked(x, y+s[1])
}

// Compute runs Dijkstra outward from the target, then points each cell at its cheapest neighbour
func (f *FlowField) Compute(targetX, targetY int) bool {
	g := f.grid
	for i := range f.dirs {
		f.dirs[i] = DirNone
		f.costs[i] = costUnreachable
	}
	f.targetX, f.targetY = targetX, targetY
	f.version = g.Version()
	if g.Blocked(targetX, targetY) {
		return false
	}

	w := g.Width
	start := targetY*w + targetX
	f.costs[start] = 0
	f.queue = f.queue[:0]
	f.queue.push(frontierItem{cell: start})

	for len(f.queue) > 0 {
		it := f.queue.pop()
		if it.cost > f.costs[it.cell] {
			continue
		}
		cx, cy := it.cell%w, it.cell/w
		for d := int8(0); d < DirCount; d++ {
			nx, ny := cx+dirSteps[d][0], cy+dirSteps[d][1]
			if g.Blocked(nx, ny) || f.cornerCut(cx, cy, d) {
				continue
			}
			n := ny*w + nx
			if c := it.cost + stepCost(d); c < f.costs[n] {
				f.costs[n] = c
				f.queue.push(frontierItem{cell: n, cost: c})
			}
		}
	}

	f.dirs[start] = DirTarget
	for y := 0; y < g.Height; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			c := f.costs[i]
			if c == 0 || c >= costUnreachable {
				continue
			}
			best, bestCost := DirNone, c
			for d := int8(0); d < DirCount; d++ {
				nx, ny := x+dirSteps[d][0], y+dirSteps[d][1]
				if !g.inBounds(nx, ny) || f.cornerCut(x, y, d) {
					continue
				}
				if nc := f.costs[ny*w+nx]; nc < bestCost {
					best, bestCost = d, nc
				}
			}
			f.dirs[i] = best
		}
	}
	return true
}

// Stale reports whether the grid changed since the last Compute
func (f *FlowField) Stale() bool {
	return f.version != f.grid.Version()
}

// Target returns the cell this field leads to
func (f *FlowField) Target() (x, y int) {
	return f.targetX, f.targetY
}

// Direction returns the step direction at a cell
func (f *FlowField) Direction(x, y int) int8 {
	if !f.grid.inBounds(x, y) {
		return DirNone
	}
	return f.dirs[y*f.grid.Width+x]
}

// Cost returns the weighted path cost to the target, -1 when unreachable
func (f *FlowField) Cost(x, y int) int {
	if !f.grid.inBounds(x, y) {
		return -1
	}
	c := f.costs[y*f.grid.Width+x]
	if c >= costUnreachable {
		return -1
	}
	return c
}

// Waypoint returns the next point to head for from pos on the way to dest
// Inside the target cell, or from a cell the field does not cover, the destination itself is returned
func (f *FlowField) Waypoint(pos, dest vmath.Vec3) vmath.Vec3 {
	x, y, ok := f.grid.CellOf(pos)
	if !ok {
		return dest
	}
	d := f.Direction(x, y)
	if d < 0 {
		return dest
	}
	return f.grid.CellCenter(x+dirSteps[d][0], y+dirSteps[d][1])
}
