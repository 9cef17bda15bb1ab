package parameter

import "time"

// Combat Slot Rings
const (
	// CombatAngleStepInner is the angle in degrees between melee ring slots
	CombatAngleStepInner = 45.0

	// CombatRadiusInner is the melee ring distance from the target
	CombatRadiusInner = 1.5

	// CombatAngleStepOuter is the angle in degrees between holding ring slots
	CombatAngleStepOuter = 22.5

	// CombatRadiusOuter is the holding ring distance from the target
	CombatRadiusOuter = 3.5

	// CombatNavSampleDistance is how far a slot may be from walkable ground and still count
	CombatNavSampleDistance = 0.5

	// CombatRangeVariance is added to the melee radius when checking attack range
	CombatRangeVariance = 0.5
)

// Combat Timing
const (
	// CombatAttackWindup is the time from attack start to the hit frame
	CombatAttackWindup = 400 * time.Millisecond

	// CombatAttackRecovery is the time from the hit frame to the end of the attack clip
	CombatAttackRecovery = 500 * time.Millisecond

	// CombatDeathDuration is how long a dead monster stays before it is recycled
	CombatDeathDuration = 5 * time.Second

	// CombatHeroDeathDuration is the hero death clip length
	CombatHeroDeathDuration = 2 * time.Second

	// CombatRepathDistance is how far the target may move before a runner repaths
	CombatRepathDistance = 0.25

	// CombatTransitionDuration is the fade time used by game start, end and quit flows
	CombatTransitionDuration = 250 * time.Millisecond
)
