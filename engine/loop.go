package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/task"
)

// Actor is anything owning a task site the loop must advance
type Actor interface {
	Entity() core.Entity
	Site() *task.Site
	// Recover rebinds the site after its task faulted
	Recover(err error)
}

// Roster lists the actors to advance this tick
// Implementations append to buf and return it so the loop can reuse storage
type Roster interface {
	Actors(buf []Actor) []Actor
}

// LoopOptions configures a Loop
type LoopOptions struct {
	AfterTick func(tick uint64) // Runs after every tick, e.g. to render
}

// Loop drives the phases of one tick in a fixed order: Update, bus Dispatch,
// LateUpdate, AnimatorMove. Each phase steps the game actor, then the roster
type Loop struct {
	ctx    *GameContext
	game   Actor
	roster Roster
	opts   LoopOptions
	log    *slog.Logger

	buf     []Actor
	ticks   uint64
	stopped atomic.Bool
}

// NewLoop creates a loop for the game-level actor and the roster of arena actors
func NewLoop(ctx *GameContext, game Actor, roster Roster, opts LoopOptions) *Loop {
	return &Loop{
		ctx:    ctx,
		game:   game,
		roster: roster,
		opts:   opts,
		log:    ctx.Log.With("component", "loop"),
	}
}

// Tick runs one full tick
func (l *Loop) Tick() {
	timer := l.ctx.Metrics.TickDuration()
	defer timer.ObserveDuration()

	l.ctx.Clock.Step()

	l.advance(l.game, task.Update)

	l.buf = l.roster.Actors(l.buf[:0])
	l.ctx.Metrics.Actors(len(l.buf))
	for _, a := range l.buf {
		l.advance(a, task.Update)
	}

	l.ctx.Bus.Dispatch()

	l.advance(l.game, task.LateUpdate)
	for _, a := range l.buf {
		l.advance(a, task.LateUpdate)
	}
	l.advance(l.game, task.AnimatorMove)
	for _, a := range l.buf {
		l.advance(a, task.AnimatorMove)
	}

	// Drop references so recycled actors can be collected
	clear(l.buf)

	l.ticks++
	l.ctx.Metrics.TickCompleted()
	if l.opts.AfterTick != nil {
		l.opts.AfterTick(l.ticks)
	}
}

func (l *Loop) advance(a Actor, phase task.Signal) {
	err := a.Site().Advance(phase)
	if err == nil {
		return
	}
	var fault *task.FaultError
	if errors.As(err, &fault) {
		l.log.Error("task fault", "entity", a.Entity(), "phase", phase, "panic", fault.Value)
		l.log.Debug("task fault stack", "entity", a.Entity(), "stack", string(fault.Stack))
	} else {
		l.log.Error("task error", "entity", a.Entity(), "phase", phase, "error", err)
	}
	l.ctx.Metrics.TaskFault(ownerKind(a))
	a.Recover(err)
}

func ownerKind(a Actor) string {
	if a.Entity() == 0 {
		return "game"
	}
	return "actor"
}

// Ticks returns the number of completed ticks
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Stop makes Run return after the current tick
// Safe to call from handlers and from other goroutines
func (l *Loop) Stop() {
	l.stopped.Store(true)
}

// Stopped reports whether Stop was called
func (l *Loop) Stopped() bool {
	return l.stopped.Load()
}

// Run ticks as fast as possible until ticks have run (0 means unbounded),
// Stop is called, or ctx is done
func (l *Loop) Run(ctx context.Context, ticks uint64) error {
	for n := uint64(0); ticks == 0 || n < ticks; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.stopped.Load() {
			return nil
		}
		l.Tick()
	}
	return nil
}

// RunRealtime ticks once per interval until Stop is called or ctx is done
func (l *Loop) RunRealtime(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.stopped.Load() {
				return nil
			}
			l.Tick()
		}
	}
}
