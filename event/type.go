package event

import (
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/vmath"
)

// Message catalogue
// Every message is a plain struct handed out by Acquire and zeroed on recycle.
// Actors are referenced by entity id so no message keeps an actor alive

// === Input ===

// MouseClickNavmesh is a click on walkable ground
// Trigger: input layer | Consumer: game (hero control)
type MouseClickNavmesh struct {
	Destination vmath.Vec3
}

// MouseClickMonster is a click on a monster
// Trigger: input layer | Consumer: game (hero control)
type MouseClickMonster struct {
	Monster core.Entity
}

// MouseClickNothing is a click that hit neither ground nor monster
// Trigger: input layer | Consumer: game (cursor feedback)
type MouseClickNothing struct{}

// === Character ===

// RunTo orders the hero to a destination
// Trigger: MouseClickNavmesh handler | Consumer: hero control
type RunTo struct {
	Hero             core.Entity
	Destination      vmath.Vec3
	DistanceFromGoal float64
	Done             func() // Called once the hero arrives
}

// Attack orders the hero to attack a target until it dies
// Trigger: MouseClickMonster handler | Consumer: hero control
type Attack struct {
	Hero   core.Entity
	Target core.Entity
	Done   func()
}

// MonsterAggro marks a monster as engaged with a target
// Trigger: monster AI | Consumer: combat tracker
type MonsterAggro struct {
	Monster core.Entity
	Target  core.Entity
}

// ApplyDamage deals damage from source to target
// Trigger: attack Hit hook | Consumer: game (stats)
type ApplyDamage struct {
	Source core.Entity
	Target core.Entity
	Damage float64
}

// Die announces that a character reached zero HP
// Trigger: ApplyDamage handler | Consumer: game (death flows)
type Die struct {
	Character core.Entity
	Killer    core.Entity
}

// === Objects ===

// SpawnHero creates the hero
// Trigger: game start flow | Consumer: object manager
type SpawnHero struct {
	Position vmath.Vec3
	Heading  float64 // Degrees on the XZ plane
	Spawned  func(core.Entity)
}

// SpawnMonster creates a monster
// Trigger: spawner | Consumer: object manager
type SpawnMonster struct {
	Position vmath.Vec3
	Heading  float64
	Spawned  func(core.Entity)
}

// RecycleMonster removes a dead monster from the arena
// Trigger: monster death task | Consumer: object manager
type RecycleMonster struct {
	Monster core.Entity
}

// RecycleHero removes the hero from the arena
// Trigger: restart and player-died flows | Consumer: object manager
type RecycleHero struct{}

// === Game ===

// CombatStarted is pushed when the first monster aggroes
// Trigger: combat tracker | Consumer: game (music, ui)
type CombatStarted struct{}

// CombatEnded is pushed when the last aggroed monster dies
// Trigger: combat tracker | Consumer: game (music, ui)
type CombatEnded struct{}

// PauseGame freezes the game clock
type PauseGame struct{}

// UnpauseGame resumes the game clock
type UnpauseGame struct{}

// RestartGame tears the arena down and starts a new run
type RestartGame struct{}

// QuitGame stops the host loop
type QuitGame struct{}

// === Effects ===

// EffectKind selects an external audio/visual effect
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectSwing
	EffectHit
	EffectDeath
	EffectCombatStart
	EffectCombatEnd
	EffectClick
)

var effectNames = [...]string{
	EffectNone:        "none",
	EffectSwing:       "swing",
	EffectHit:         "hit",
	EffectDeath:       "death",
	EffectCombatStart: "combat_start",
	EffectCombatEnd:   "combat_end",
	EffectClick:       "click",
}

func (k EffectKind) String() string {
	if int(k) < len(effectNames) {
		return effectNames[k]
	}
	return "unknown"
}

// PlayEffect asks the effect sink to play an external effect
// Trigger: game handlers | Consumer: audio or log sink
type PlayEffect struct {
	Effect   EffectKind
	Position vmath.Vec3
}

// RegisterCatalogue registers every game message so ids are stable across runs
// Call once on a fresh bus before any handler or producer touches it
func RegisterCatalogue(b *Bus) {
	Register[MouseClickNavmesh](b, "mouse_click_navmesh")
	Register[MouseClickMonster](b, "mouse_click_monster")
	Register[MouseClickNothing](b, "mouse_click_nothing")
	Register[RunTo](b, "run_to")
	Register[Attack](b, "attack")
	Register[MonsterAggro](b, "monster_aggro")
	Register[ApplyDamage](b, "apply_damage")
	Register[Die](b, "die")
	Register[SpawnHero](b, "spawn_hero")
	Register[SpawnMonster](b, "spawn_monster")
	Register[RecycleMonster](b, "recycle_monster")
	Register[RecycleHero](b, "recycle_hero")
	Register[CombatStarted](b, "combat_started")
	Register[CombatEnded](b, "combat_ended")
	Register[PauseGame](b, "pause_game")
	Register[UnpauseGame](b, "unpause_game")
	Register[RestartGame](b, "restart_game")
	Register[QuitGame](b, "quit_game")
	Register[PlayEffect](b, "play_effect")
}
