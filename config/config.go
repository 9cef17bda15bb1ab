// Package config loads arena settings from YAML
//
// A settings file only needs the keys it changes; everything else keeps the
// compiled-in defaults from the parameter package.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/skirmish/audio"
	"github.com/lixenwraith/skirmish/combat"
	"github.com/lixenwraith/skirmish/parameter"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid settings")

// TickSettings controls the host loop
type TickSettings struct {
	Interval time.Duration `yaml:"interval"`  // Simulation step
	MaxDelta time.Duration `yaml:"max_delta"` // Clamp for real-time deltas after stalls
}

// CombatSettings holds slot ring geometry and combat timings
type CombatSettings struct {
	Rings          combat.Config `yaml:"rings"`
	NavSample      float64       `yaml:"nav_sample_distance"`
	AttackWindup   time.Duration `yaml:"attack_windup"`
	AttackRecovery time.Duration `yaml:"attack_recovery"`
	MonsterDeath   time.Duration `yaml:"monster_death"`
	HeroDeath      time.Duration `yaml:"hero_death"`
	RepathDistance float64       `yaml:"repath_distance"`
	Transition     time.Duration `yaml:"transition"`
}

// BusSettings tunes the message bus
type BusSettings struct {
	PoolPrime int `yaml:"pool_prime"`
}

// Rect is an inclusive block of grid cells
type Rect struct {
	X0 int `yaml:"x0"`
	Y0 int `yaml:"y0"`
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
}

// ArenaSettings describes the walkable grid
type ArenaSettings struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	CellSize  float64 `yaml:"cell_size"`
	Obstacles []Rect  `yaml:"obstacles,omitempty"`
}

// HeroSettings are the hero template
type HeroSettings struct {
	Stats    combat.Stats `yaml:"stats"`
	RunSpeed float64      `yaml:"run_speed"`
}

// MonsterSettings are the monster template
type MonsterSettings struct {
	Stats         combat.Stats `yaml:"stats"`
	WalkSpeed     float64      `yaml:"walk_speed"`
	RunSpeed      float64      `yaml:"run_speed"`
	AggroDistance float64      `yaml:"aggro_distance"`
}

// SpawnSettings drive the monster spawner
type SpawnSettings struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	Interval      time.Duration `yaml:"interval"`
	Total         int           `yaml:"total"` // 0 spawns forever
	Seed          uint64        `yaml:"seed"`
	WalkToHero    bool          `yaml:"walk_to_hero"` // Spawned monsters creep toward the hero at walk speed
}

// LogSettings select verbosity and destination
type LogSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file,omitempty"`
}

// Settings is the full settings document
type Settings struct {
	Tick    TickSettings    `yaml:"tick"`
	Combat  CombatSettings  `yaml:"combat"`
	Bus     BusSettings     `yaml:"bus"`
	Arena   ArenaSettings   `yaml:"arena"`
	Hero    HeroSettings    `yaml:"hero"`
	Monster MonsterSettings `yaml:"monster"`
	Spawns  SpawnSettings   `yaml:"spawns"`
	Log     LogSettings     `yaml:"log"`
	Audio   audio.Config    `yaml:"audio"`
}

// Defaults returns settings built from the parameter package
func Defaults() Settings {
	return Settings{
		Tick: TickSettings{
			Interval: parameter.GameUpdateInterval,
			MaxDelta: parameter.MaxTickDelta,
		},
		Combat: CombatSettings{
			Rings:          combat.DefaultConfig(),
			NavSample:      parameter.CombatNavSampleDistance,
			AttackWindup:   parameter.CombatAttackWindup,
			AttackRecovery: parameter.CombatAttackRecovery,
			MonsterDeath:   parameter.CombatDeathDuration,
			HeroDeath:      parameter.CombatHeroDeathDuration,
			RepathDistance: parameter.CombatRepathDistance,
			Transition:     parameter.CombatTransitionDuration,
		},
		Bus: BusSettings{PoolPrime: parameter.MessagePoolPrime},
		Arena: ArenaSettings{
			Width:    parameter.ArenaWidth,
			Height:   parameter.ArenaHeight,
			CellSize: parameter.ArenaCellSize,
		},
		Hero: HeroSettings{
			Stats:    combat.Stats{HP: parameter.HeroHP, AP: parameter.HeroAP, Armor: parameter.HeroArmor},
			RunSpeed: parameter.HeroRunSpeed,
		},
		Monster: MonsterSettings{
			Stats:         combat.Stats{HP: parameter.MonsterHP, AP: parameter.MonsterAP, Armor: parameter.MonsterArmor},
			WalkSpeed:     parameter.MonsterWalkSpeed,
			RunSpeed:      parameter.MonsterRunSpeed,
			AggroDistance: parameter.MonsterAggroDistance,
		},
		Spawns: SpawnSettings{
			MaxConcurrent: parameter.MonsterMaxConcurrentSpawns,
			Interval:      parameter.SpawnInterval,
			Seed:          1,
		},
		Log:   LogSettings{Level: "info"},
		Audio: audio.DefaultConfig(),
	}
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (Settings, error) {
	if path == "" {
		s := Defaults()
		return s, s.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a YAML document over the defaults and validates the result
func Decode(r io.Reader) (Settings, error) {
	s := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Encode writes s as YAML
func (s Settings) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

// Validate rejects settings the simulation cannot run with
func (s Settings) Validate() error {
	if err := s.Combat.Rings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	checks := []struct {
		ok  bool
		msg string
	}{
		{s.Tick.Interval > 0, "tick.interval must be positive"},
		{s.Tick.MaxDelta >= s.Tick.Interval, "tick.max_delta must be at least tick.interval"},
		{s.Combat.NavSample >= 0, "combat.nav_sample_distance must not be negative"},
		{s.Combat.AttackWindup > 0, "combat.attack_windup must be positive"},
		{s.Combat.AttackRecovery > 0, "combat.attack_recovery must be positive"},
		{s.Bus.PoolPrime > 0, "bus.pool_prime must be positive"},
		{s.Arena.Width > 0 && s.Arena.Height > 0, "arena dimensions must be positive"},
		{s.Arena.CellSize > 0, "arena.cell_size must be positive"},
		{s.Hero.Stats.HP > 0, "hero.stats.hp must be positive"},
		{s.Hero.RunSpeed > 0, "hero.run_speed must be positive"},
		{s.Monster.Stats.HP > 0, "monster.stats.hp must be positive"},
		{s.Monster.RunSpeed > 0 && s.Monster.WalkSpeed > 0, "monster speeds must be positive"},
		{s.Spawns.MaxConcurrent >= 0, "spawns.max_concurrent must not be negative"},
		{s.Spawns.Total >= 0, "spawns.total must not be negative"},
		{s.Audio.Volume >= 0 && s.Audio.Volume <= 1, "audio.volume must be within 0..1"},
		{s.Audio.SampleRate > 0, "audio.sample_rate must be positive"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, c.msg)
		}
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, s.Log.Level)
	}
	return nil
}
