package vmath

import "math"

const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// Repeat wraps t into [0, length)
func Repeat(t, length float64) float64 {
	r := math.Mod(t, length)
	if r < 0 {
		r += length
	}
	if r >= length {
		r = 0
	}
	return r
}

// HeadingXZ returns the angle of v on the XZ plane in degrees, in [0, 360)
// Measured from +X toward +Z
func HeadingXZ(v Vec3) float64 {
	return Repeat(math.Atan2(v.Z, v.X)*Rad2Deg, 360)
}

// PolarXZ returns the point at radius and angle (degrees) around center on the XZ plane
func PolarXZ(center Vec3, radius, degrees float64) Vec3 {
	rad := degrees * Deg2Rad
	return Vec3{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y,
		Z: center.Z + radius*math.Sin(rad),
	}
}
