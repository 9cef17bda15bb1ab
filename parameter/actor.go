package parameter

import "time"

// Hero Defaults
const (
	// HeroHP is hero starting hit points
	HeroHP = 100.0

	// HeroAP is hero attack power
	HeroAP = 12.0

	// HeroArmor is subtracted from incoming damage
	HeroArmor = 2.0

	// HeroRunSpeed is hero movement speed in units per second
	HeroRunSpeed = 4.0
)

// Monster Defaults
const (
	// MonsterHP is monster starting hit points
	MonsterHP = 30.0

	// MonsterAP is monster attack power
	MonsterAP = 5.0

	// MonsterArmor is subtracted from incoming damage
	MonsterArmor = 1.0

	// MonsterWalkSpeed is used while creeping toward the hero before noticing it
	MonsterWalkSpeed = 1.0

	// MonsterRunSpeed is used while running to a combat slot
	MonsterRunSpeed = 2.0

	// MonsterAggroDistance is the hero distance at which a monster engages
	MonsterAggroDistance = 5.0

	// MonsterMaxConcurrentSpawns caps live monsters per wave
	MonsterMaxConcurrentSpawns = 5
)

// Arena Defaults
const (
	// ArenaWidth is the walkable grid width in cells
	ArenaWidth = 40

	// ArenaHeight is the walkable grid height in cells
	ArenaHeight = 24

	// ArenaCellSize is the world size of one grid cell
	ArenaCellSize = 1.0
)

// Spawner
const (
	// SpawnInterval is the delay between monster spawns
	SpawnInterval = 3 * time.Second
)
