// Package navigation provides the walkable arena grid and flow-field steering
//
// The grid answers traversability queries for the combat allocator and builds
// flow fields that actors follow toward a destination cell.
package navigation

import (
	"math"

	"github.com/lixenwraith/skirmish/vmath"
)

// Grid is a rectangular walkability map on the XZ plane
// Cell (x, y) covers world X in [x*CellSize, (x+1)*CellSize) and Z likewise for y
type Grid struct {
	Width, Height int
	CellSize      float64
	SampleDist    float64 // Max distance from a walkable cell for a point to count as traversable

	blocked []bool
	version uint64 // Bumped on every walkability change
}

// NewGrid creates an all-walkable grid
func NewGrid(width, height int, cellSize, sampleDist float64) *Grid {
	return &Grid{
		Width:      width,
		Height:     height,
		CellSize:   cellSize,
		SampleDist: sampleDist,
		blocked:    make([]bool, width*height),
	}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Blocked reports whether a cell blocks movement; out-of-bounds cells are blocked
func (g *Grid) Blocked(x, y int) bool {
	if !g.inBounds(x, y) {
		return true
	}
	return g.blocked[y*g.Width+x]
}

// SetBlocked changes a cell's walkability
func (g *Grid) SetBlocked(x, y int, blocked bool) {
	if !g.inBounds(x, y) {
		return
	}
	i := y*g.Width + x
	if g.blocked[i] != blocked {
		g.blocked[i] = blocked
		g.version++
	}
}

// BlockRect blocks every cell in [x0, x1] x [y0, y1]
func (g *Grid) BlockRect(x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.SetBlocked(x, y, true)
		}
	}
}

// Version changes whenever walkability changes; flow fields compare it to detect staleness
func (g *Grid) Version() uint64 {
	return g.version
}

// CellOf returns the cell containing pos
func (g *Grid) CellOf(pos vmath.Vec3) (x, y int, ok bool) {
	x = int(math.Floor(pos.X / g.CellSize))
	y = int(math.Floor(pos.Z / g.CellSize))
	return x, y, g.inBounds(x, y)
}

// CellCenter returns the world position of a cell's center
func (g *Grid) CellCenter(x, y int) vmath.Vec3 {
	return vmath.Vec3{
		X: (float64(x) + 0.5) * g.CellSize,
		Z: (float64(y) + 0.5) * g.CellSize,
	}
}

// Bounds returns the world-space extent of the grid
func (g *Grid) Bounds() (maxX, maxZ float64) {
	return float64(g.Width) * g.CellSize, float64(g.Height) * g.CellSize
}

// Walkable reports whether pos lies in a walkable cell
func (g *Grid) Walkable(pos vmath.Vec3) bool {
	x, y, ok := g.CellOf(pos)
	return ok && !g.blocked[y*g.Width+x]
}

// Traversable reports whether a walkable cell lies within SampleDist of pos
// Used as the slot allocator's oracle
func (g *Grid) Traversable(pos vmath.Vec3) bool {
	_, ok := g.Sample(pos, g.SampleDist)
	return ok
}

// Sample returns the nearest walkable point within maxDist of pos
func (g *Grid) Sample(pos vmath.Vec3, maxDist float64) (vmath.Vec3, bool) {
	if g.Walkable(pos) {
		return pos, true
	}
	if maxDist <= 0 {
		return vmath.Vec3{}, false
	}

	x0 := int(math.Floor((pos.X - maxDist) / g.CellSize))
	x1 := int(math.Floor((pos.X + maxDist) / g.CellSize))
	y0 := int(math.Floor((pos.Z - maxDist) / g.CellSize))
	y1 := int(math.Floor((pos.Z + maxDist) / g.CellSize))

	best := vmath.Vec3{}
	bestDist := math.Inf(1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if g.Blocked(x, y) {
				continue
			}
			p := g.closestInCell(x, y, pos)
			if d := vmath.V3DistSq(p, pos); d < bestDist {
				bestDist = d
				best = p
			}
		}
	}
	if bestDist > maxDist*maxDist {
		return vmath.Vec3{}, false
	}
	return best, true
}

// closestInCell clamps pos into the cell rectangle, nudged inside so the result maps back to the cell
func (g *Grid) closestInCell(x, y int, pos vmath.Vec3) vmath.Vec3 {
	const inset = 1e-6
	minX, minZ := float64(x)*g.CellSize, float64(y)*g.CellSize
	maxX, maxZ := minX+g.CellSize-inset, minZ+g.CellSize-inset
	return vmath.Vec3{
		X: math.Max(minX, math.Min(maxX, pos.X)),
		Y: pos.Y,
		Z: math.Max(minZ, math.Min(maxZ, pos.Z)),
	}
}
