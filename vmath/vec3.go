// Package vmath provides float64 vector math for arena positions
// The arena lies on the XZ plane; Y is kept for height and always zero in play
package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Zero is the origin
var Zero = Vec3{}

func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

func V3Dist(a, b Vec3) float64 {
	return V3Mag(V3Sub(a, b))
}

func V3DistSq(a, b Vec3) float64 {
	return V3MagSq(V3Sub(a, b))
}

// V3MoveTowards steps from current toward target by at most maxDelta without overshoot
func V3MoveTowards(current, target Vec3, maxDelta float64) Vec3 {
	d := V3Sub(target, current)
	dist := V3Mag(d)
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return V3Add(current, V3Scale(d, maxDelta/dist))
}

// V3ApproxEqual compares component-wise within eps
func V3ApproxEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
