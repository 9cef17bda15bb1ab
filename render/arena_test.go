package render

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skirmish/config"
	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/event"
	"github.com/lixenwraith/skirmish/game"
	"github.com/lixenwraith/skirmish/vmath"
)

type fixture struct {
	screen tcell.SimulationScreen
	world  *game.World
	loop   *engine.Loop
	view   *ArenaView
	quit   bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := config.Defaults()
	s.Spawns.MaxConcurrent = 0
	s.Arena.Obstacles = []config.Rect{{X0: 0, Y0: 0, X1: 1, Y1: 0}}

	ctx, err := engine.NewGameContext(s, engine.ContextOptions{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	f := &fixture{}
	f.world, err = game.NewWorld(ctx, game.Options{
		Effects: game.EffectsFunc(func(event.EffectKind, vmath.Vec3) {}),
		OnQuit:  func() { f.quit = true },
	})
	require.NoError(t, err)

	f.screen = tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, f.screen.Init())
	t.Cleanup(f.screen.Fini)
	f.screen.SetSize(100, 30)

	f.view = NewArenaView(f.screen, f.world)
	f.loop = engine.NewLoop(ctx, f.world, f.world, engine.LoopOptions{AfterTick: f.view.Frame})
	f.world.Start()
	f.tick(1)
	return f
}

func (f *fixture) tick(n int) {
	for range n {
		f.loop.Tick()
	}
}

func (f *fixture) rune(x, y int) rune {
	r, _, _, _ := f.screen.GetContent(x, y)
	return r
}

func (f *fixture) row(y int) string {
	w, _ := f.screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(f.rune(x, y))
	}
	return b.String()
}

func TestDrawPlacesHeroAndObstacles(t *testing.T) {
	f := newFixture(t)

	// Hero stands at (20, 12): two columns per cell, one status row
	assert.Equal(t, '@', f.rune(40, 13))
	assert.Equal(t, '█', f.rune(0, 1))
	assert.Equal(t, '█', f.rune(3, 1))
	assert.Equal(t, '·', f.rune(4, 1))
	assert.Contains(t, f.row(0), "HP 100/100")
	assert.Contains(t, f.row(0), "kills 0")
	assert.Contains(t, f.row(29), "q: quit")
}

func TestScreenWorldMapping(t *testing.T) {
	f := newFixture(t)

	pos, ok := f.view.ScreenToWorld(51, 13)
	require.True(t, ok)
	assert.Equal(t, vmath.V3(25.5, 0, 12.5), pos)

	sx, sy, ok := f.view.WorldToScreen(pos)
	require.True(t, ok)
	assert.Equal(t, 50, sx)
	assert.Equal(t, 13, sy)

	_, ok = f.view.ScreenToWorld(10, 0)
	assert.False(t, ok, "status row is not arena")
	_, ok = f.view.ScreenToWorld(80, 5)
	assert.False(t, ok, "right of the grid")
}

func TestMouseClickMovesHero(t *testing.T) {
	f := newFixture(t)
	hero := f.world.Hero()

	f.view.HandleEvent(tcell.NewEventMouse(50, 13, tcell.Button1, tcell.ModNone))
	// Held button is not a second click
	f.view.HandleEvent(tcell.NewEventMouse(52, 13, tcell.Button1, tcell.ModNone))
	f.view.HandleEvent(tcell.NewEventMouse(52, 13, tcell.ButtonNone, tcell.ModNone))

	f.tick(120)
	assert.True(t, vmath.V3ApproxEqual(vmath.V3(25.5, 0, 12.5), hero.Position(), 1e-6), "got %+v", hero.Position())
	assert.Equal(t, '@', f.rune(50, 13))
}

func TestKeysControlWorld(t *testing.T) {
	f := newFixture(t)

	f.view.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	f.tick(1)
	assert.True(t, f.world.Paused())
	assert.Contains(t, f.row(0), "PAUSED")

	f.view.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	f.tick(1)
	assert.False(t, f.world.Paused())

	f.view.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	f.tick(10)
	assert.True(t, f.quit)
}

func TestFrameDrainsQueuedEvents(t *testing.T) {
	f := newFixture(t)

	f.view.events <- tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)
	f.view.Frame(0)
	require.NoError(t, f.loop.Run(context.Background(), 1))
	assert.True(t, f.world.Paused())
	assert.Empty(t, f.view.events)
}
