// Package render draws the arena into a terminal
//
// The view never touches the world from the input goroutine: raw terminal
// events are queued and applied from Frame, which the host loop calls after
// each tick on the simulation goroutine.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/game"
	"github.com/lixenwraith/skirmish/vmath"
)

const (
	cellWidth   = 2 // Terminal columns per grid cell, keeps cells roughly square
	statusRows  = 1
	eventBuffer = 100
)

// ArenaView renders one world and turns terminal input into world commands
type ArenaView struct {
	screen tcell.Screen
	world  *game.World

	originX, originY int
	buttons          tcell.ButtonMask
	events           chan tcell.Event
}

// NewArenaView creates a view over an initialized screen
func NewArenaView(screen tcell.Screen, w *game.World) *ArenaView {
	return &ArenaView{
		screen:  screen,
		world:   w,
		originY: statusRows,
		events:  make(chan tcell.Event, eventBuffer),
	}
}

// Listen polls terminal events until the screen is finalized
func (v *ArenaView) Listen() {
	core.Go(func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			v.events <- ev
		}
	})
}

// Frame applies queued input and redraws; meant for LoopOptions.AfterTick
func (v *ArenaView) Frame(uint64) {
	for {
		select {
		case ev := <-v.events:
			v.HandleEvent(ev)
		default:
			v.Draw()
			v.screen.Show()
			return
		}
	}
}

// HandleEvent maps one terminal event onto the world
func (v *ArenaView) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ev)
	case *tcell.EventMouse:
		pressed := ev.Buttons() &^ v.buttons
		v.buttons = ev.Buttons()
		if pressed&tcell.Button1 == 0 {
			return
		}
		if pos, ok := v.ScreenToWorld(ev.Position()); ok {
			v.world.Click(pos)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

func (v *ArenaView) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.world.Quit()
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'p', ' ':
		if v.world.Paused() {
			v.world.Unpause()
		} else {
			v.world.Pause()
		}
	case 'r':
		v.world.Restart()
	case 'q':
		v.world.Quit()
	}
}

// ScreenToWorld returns the centre of the grid cell under a screen cell
func (v *ArenaView) ScreenToWorld(sx, sy int) (vmath.Vec3, bool) {
	grid := v.world.Context().Grid
	if sx < v.originX || sy < v.originY {
		return vmath.Vec3{}, false
	}
	gx, gy := (sx-v.originX)/cellWidth, sy-v.originY
	if gx >= grid.Width || gy >= grid.Height {
		return vmath.Vec3{}, false
	}
	return grid.CellCenter(gx, gy), true
}

// WorldToScreen returns the screen cell showing pos
func (v *ArenaView) WorldToScreen(pos vmath.Vec3) (sx, sy int, ok bool) {
	gx, gy, ok := v.world.Context().Grid.CellOf(pos)
	if !ok {
		return 0, 0, false
	}
	return v.originX + gx*cellWidth, v.originY + gy, true
}

// Draw paints the whole frame without showing it
func (v *ArenaView) Draw() {
	bg := tcell.StyleDefault.Background(RgbBackground)
	v.screen.SetStyle(bg)
	v.screen.Clear()

	v.drawGrid(bg)
	v.drawSlots(bg)
	for m := range v.world.Monsters() {
		v.drawMonster(m, bg)
	}
	v.drawHero(bg)
	v.drawStatus()
}

func (v *ArenaView) drawGrid(bg tcell.Style) {
	grid := v.world.Context().Grid
	floor := bg.Foreground(RgbFloor)
	wall := bg.Foreground(RgbObstacle)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			sx, sy := v.originX+x*cellWidth, v.originY+y
			if grid.Blocked(x, y) {
				v.screen.SetContent(sx, sy, '█', nil, wall)
				v.screen.SetContent(sx+1, sy, '█', nil, wall)
			} else {
				v.screen.SetContent(sx, sy, '·', nil, floor)
			}
		}
	}
}

// drawSlots marks the slot each monster is heading for
func (v *ArenaView) drawSlots(bg tcell.Style) {
	for m := range v.world.Monsters() {
		pos, ok := v.world.SlotPosition(m)
		if !ok {
			continue
		}
		sx, sy, ok := v.WorldToScreen(pos)
		if !ok {
			continue
		}
		if m.Slot().Melee() {
			v.screen.SetContent(sx, sy, '+', nil, bg.Foreground(RgbSlotMelee))
		} else {
			v.screen.SetContent(sx, sy, '×', nil, bg.Foreground(RgbSlotOuter))
		}
	}
}

func (v *ArenaView) drawMonster(m *game.Character, bg tcell.Style) {
	sx, sy, ok := v.WorldToScreen(m.Position())
	if !ok {
		return
	}
	ch, style := 'm', bg.Foreground(RgbMonster)
	switch {
	case !m.Alive():
		ch, style = '%', bg.Foreground(RgbDying)
	case m.Attacking():
		ch, style = 'M', bg.Foreground(RgbAttacking).Bold(true)
	case m.Aggroed():
		style = bg.Foreground(RgbAggroed)
	}
	v.screen.SetContent(sx, sy, ch, nil, style)
}

func (v *ArenaView) drawHero(bg tcell.Style) {
	h := v.world.Hero()
	if h == nil {
		return
	}
	sx, sy, ok := v.WorldToScreen(h.Position())
	if !ok {
		return
	}
	style := bg.Foreground(RgbHero).Bold(true)
	if !h.Alive() {
		style = bg.Foreground(RgbHeroDead)
	}
	v.screen.SetContent(sx, sy, '@', nil, style)
}

func (v *ArenaView) drawStatus() {
	w, h := v.screen.Size()
	status := tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStatusBg)
	label := ""
	switch {
	case v.world.GameOver():
		status = status.Background(RgbGameOverBg)
		label = " GAME OVER "
	case v.world.Paused():
		status = status.Background(RgbPausedBg)
		label = " PAUSED "
	}

	x := drawText(v.screen, 0, 0, w, status, label)
	if hero := v.world.Hero(); hero != nil {
		text := fmt.Sprintf(" HP %3.0f/%3.0f ", max(hero.HP(), 0), hero.MaxHP())
		x = drawText(v.screen, x, 0, w, status.Foreground(HealthColor(hero.HP()/hero.MaxHP())).Background(RgbBackground), text)
	}
	text := fmt.Sprintf(" kills %d  monsters %d  spawned %d ", v.world.Kills(), v.world.LiveMonsters(), v.world.Spawned())
	drawText(v.screen, x, 0, w, status, text)

	help := "click: move/attack  p: pause  r: restart  q: quit"
	drawText(v.screen, 0, h-1, w, tcell.StyleDefault.Foreground(RgbHelpText).Background(RgbBackground), help)
}

// drawText writes s from x and returns the column after it
func drawText(s tcell.Screen, x, y, maxX int, style tcell.Style, text string) int {
	for _, r := range text {
		if x >= maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
