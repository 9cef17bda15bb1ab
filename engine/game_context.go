package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/skirmish/combat"
	"github.com/lixenwraith/skirmish/config"
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/navigation"
	"github.com/lixenwraith/skirmish/vmath"
)

// pathCacheSize bounds cached flow fields; one per live destination is plenty
const pathCacheSize = 16

// GameContext owns every shared service of one arena session
// Built once and passed explicitly; nothing here is package-global
type GameContext struct {
	Session  uuid.UUID
	Log      *slog.Logger
	Settings config.Settings

	Bus    *event.Bus
	Slots  *combat.Allocator
	Combat *combat.Tracker
	Grid   *navigation.Grid
	Paths  *navigation.FieldCache
	Clock  Clock
	Rand   *vmath.FastRand

	Entities core.EntityAllocator
	Metrics  Metrics
}

// ContextOptions supplies optional collaborators; zero values pick defaults
type ContextOptions struct {
	Logger  *slog.Logger
	Clock   Clock // Defaults to a FixedClock at the tick interval
	Metrics MetricSet
	Session uuid.UUID // Defaults to a fresh random id
}

// NewGameContext builds the arena services from settings
func NewGameContext(s config.Settings, opts ContextOptions) (*GameContext, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if opts.Session == uuid.Nil {
		opts.Session = uuid.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	log := opts.Logger.With("session", opts.Session.String())

	if opts.Clock == nil {
		opts.Clock = NewFixedClock(s.Tick.Interval)
	}
	if opts.Metrics.Engine == nil {
		opts.Metrics.Engine = NopMetrics()
	}

	grid := navigation.NewGrid(s.Arena.Width, s.Arena.Height, s.Arena.CellSize, s.Combat.NavSample)
	for _, r := range s.Arena.Obstacles {
		grid.BlockRect(r.X0, r.Y0, r.X1, r.Y1)
	}

	bus := event.NewBus(event.Options{
		Logger:    log,
		Metrics:   opts.Metrics.Bus,
		PoolPrime: s.Bus.PoolPrime,
	})
	event.RegisterCatalogue(bus)
	log.Debug("message catalogue registered", "messages", bus.Names())

	slots, err := combat.NewAllocator(s.Combat.Rings, combat.AllocatorOptions{
		Logger:  log,
		Oracle:  grid,
		Metrics: opts.Metrics.Slots,
	})
	if err != nil {
		return nil, fmt.Errorf("slot allocator: %w", err)
	}

	return &GameContext{
		Session:  opts.Session,
		Log:      log,
		Settings: s,
		Bus:      bus,
		Slots:    slots,
		Combat:   combat.NewTracker(bus, log),
		Grid:     grid,
		Paths:    navigation.NewFieldCache(grid, pathCacheSize),
		Clock:    opts.Clock,
		Rand:     vmath.NewFastRand(s.Spawns.Seed),
		Metrics:  opts.Metrics.Engine,
	}, nil
}

// DeltaTime exposes the clock so tasks can wait on it
func (ctx *GameContext) DeltaTime() time.Duration {
	return ctx.Clock.DeltaTime()
}
