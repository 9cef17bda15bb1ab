package combat

import (
	"math"

	"github.com/lixenwraith/skirmish/parameter"
)

// Stats are a character's combat attributes
type Stats struct {
	HP    float64 `yaml:"hp"`
	AP    float64 `yaml:"ap"`    // Attack power
	Armor float64 `yaml:"armor"` // Flat damage reduction
}

// ComputeDamage returns max(0, attacker.AP - target.Armor)
func ComputeDamage(attacker, target Stats) float64 {
	return math.Max(0, attacker.AP-target.Armor)
}

// Distances returns the desired engagement distance and its allowed variance
func (a *Allocator) Distances() (distance, variance float64) {
	return a.cfg.Inner.Radius, parameter.CombatRangeVariance
}

// MaxAngle returns the half-width in degrees of one inner slot
func (a *Allocator) MaxAngle() float64 {
	return a.cfg.Inner.AngleStep * 0.5
}

// InRange reports whether dist is close enough to swing at the target
func (a *Allocator) InRange(dist float64) bool {
	d, v := a.Distances()
	return dist <= d+v
}
