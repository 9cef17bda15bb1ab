package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skirmish/config"
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/task"
)

func TestFixedClock(t *testing.T) {
	c := NewFixedClock(50 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, c.Step())
	c.Pause()
	assert.Zero(t, c.Step())
	assert.Zero(t, c.DeltaTime())
	c.Resume()
	c.Step()
	assert.Equal(t, 100*time.Millisecond, c.Elapsed())
}

// stubActor records the phases it was stepped on through its task
type stubActor struct {
	id        core.Entity
	site      *task.Site
	log       *[]string
	recovered error
}

func (a *stubActor) Entity() core.Entity { return a.id }
func (a *stubActor) Site() *task.Site    { return a.site }
func (a *stubActor) Recover(err error) {
	a.recovered = err
	a.site.SetTask(task.Func(func(func(task.Signal) bool) {}))
}

func (a *stubActor) record(name string, sigs ...task.Signal) {
	a.site.SetTask(task.Func(func(yield func(task.Signal) bool) {
		for {
			for _, s := range sigs {
				if !yield(s) {
					return
				}
				*a.log = append(*a.log, name+":"+s.String())
			}
		}
	}))
}

type stubRoster []Actor

func (r stubRoster) Actors(buf []Actor) []Actor { return append(buf, r...) }

func newContext(t *testing.T) *GameContext {
	t.Helper()
	ctx, err := NewGameContext(config.Defaults(), ContextOptions{Session: uuid.MustParse("00000000-0000-0000-0000-000000000001")})
	require.NoError(t, err)
	return ctx
}

func TestGameContextWiring(t *testing.T) {
	ctx := newContext(t)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", ctx.Session.String())
	assert.Equal(t, 24, ctx.Slots.Capacity())
	assert.Equal(t, event.ID(19), event.IDOf[event.PlayEffect](ctx.Bus))
	assert.True(t, ctx.Grid.Traversable(ctx.Grid.CellCenter(0, 0)))
	assert.Equal(t, 1, int(ctx.Entities.Next()))
}

func TestGameContextRejectsInvalidSettings(t *testing.T) {
	s := config.Defaults()
	s.Bus.PoolPrime = 0
	_, err := NewGameContext(s, ContextOptions{})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoopPhaseOrder(t *testing.T) {
	ctx := newContext(t)
	var log []string

	game := &stubActor{site: task.NewSite(), log: &log}
	game.record("game", task.Update)
	a := &stubActor{id: 1, site: task.NewSite(), log: &log}
	a.record("a", task.Update, task.LateUpdate, task.AnimatorMove)

	require.NoError(t, event.AddHandler(ctx.Bus, func(*event.PauseGame) { log = append(log, "dispatch") }))
	event.Send[event.PauseGame](ctx.Bus, nil)

	loop := NewLoop(ctx, game, stubRoster{a}, LoopOptions{})
	loop.Tick()
	loop.Tick()

	// Each entry is logged when the task resumes past its yield
	assert.Equal(t, []string{
		"dispatch",
		"game:update",
		"a:update",
		"a:late_update",
		"a:animator_move",
	}, log)
	assert.Equal(t, uint64(2), loop.Ticks())
}

func TestLoopAdvancesGameInEveryPhase(t *testing.T) {
	ctx := newContext(t)
	var log []string

	game := &stubActor{site: task.NewSite(), log: &log}
	game.record("game", task.Update, task.LateUpdate, task.AnimatorMove)
	a := &stubActor{id: 1, site: task.NewSite(), log: &log}
	a.record("a", task.Update, task.LateUpdate, task.AnimatorMove)

	loop := NewLoop(ctx, game, stubRoster{a}, LoopOptions{})
	loop.Tick()
	loop.Tick()

	assert.Equal(t, []string{
		"game:update",
		"a:update",
		"game:late_update",
		"a:late_update",
		"game:animator_move",
		"a:animator_move",
	}, log)
	// One step on the first tick, then one per phase
	assert.Equal(t, uint64(4), game.site.Steps())
}

func TestLoopRecoversFaultedActor(t *testing.T) {
	ctx := newContext(t)
	game := &stubActor{site: task.NewSite()}
	bad := &stubActor{id: 7, site: task.NewSite()}
	bad.site.SetTask(task.Func(func(yield func(task.Signal) bool) {
		panic("boom")
	}))

	loop := NewLoop(ctx, game, stubRoster{bad}, LoopOptions{})
	loop.Tick()

	var fault *task.FaultError
	require.ErrorAs(t, bad.recovered, &fault)
	assert.Equal(t, "boom", fault.Value)
	assert.True(t, bad.site.Busy(), "actor rebound to its recovery task")
}

func TestLoopRunStopsOnCancelAndStop(t *testing.T) {
	ctx := newContext(t)
	game := &stubActor{site: task.NewSite()}

	ticks := 0
	loop := NewLoop(ctx, game, stubRoster{}, LoopOptions{AfterTick: func(uint64) { ticks++ }})
	require.NoError(t, loop.Run(context.Background(), 5))
	assert.Equal(t, 5, ticks)
	assert.Equal(t, 250*time.Millisecond, ctx.Clock.Elapsed())

	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, loop.Run(cctx, 5), context.Canceled)
	assert.Equal(t, 5, ticks)

	loop.Stop()
	require.NoError(t, loop.Run(context.Background(), 0))
	assert.True(t, loop.Stopped())
	assert.Equal(t, 5, ticks)
}

func TestLoopRealtimeHonoursContext(t *testing.T) {
	ctx := newContext(t)
	loop := NewLoop(ctx, &stubActor{site: task.NewSite()}, stubRoster{}, LoopOptions{})
	cctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, loop.RunRealtime(cctx, time.Millisecond), context.DeadlineExceeded)
	assert.Positive(t, loop.Ticks())
}
