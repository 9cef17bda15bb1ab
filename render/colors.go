package render

import "github.com/gdamore/tcell/v2"

// Arena palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbFloor      = tcell.NewRGBColor(60, 62, 80)    // Dim floor dots
	RgbObstacle   = tcell.NewRGBColor(120, 110, 90)  // Stone
	RgbHero       = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbHeroDead   = tcell.NewRGBColor(120, 60, 0)    // Burnt orange
	RgbMonster    = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbAggroed    = tcell.NewRGBColor(255, 120, 120) // Bright red
	RgbAttacking  = tcell.NewRGBColor(255, 255, 0)   // Bright yellow mid-swing
	RgbDying      = tcell.NewRGBColor(100, 40, 40)   // Dark red
	RgbSlotMelee  = tcell.NewRGBColor(0, 139, 139)   // Dark cyan
	RgbSlotOuter  = tcell.NewRGBColor(60, 100, 200)  // Dark blue

	RgbStatusText  = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbStatusBg    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbPausedBg    = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbGameOverBg  = tcell.NewRGBColor(200, 50, 50)   // Red
	RgbHelpText    = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbHealthFull  = tcell.NewRGBColor(50, 255, 50)   // Bright green
	RgbHealthEmpty = tcell.NewRGBColor(180, 50, 50)   // Dark red
)

// HealthColor blends from red to green as frac goes from 0 to 1
func HealthColor(frac float64) tcell.Color {
	frac = min(max(frac, 0), 1)
	r0, g0, b0 := RgbHealthEmpty.RGB()
	r1, g1, b1 := RgbHealthFull.RGB()
	lerp := func(a, b int32) int32 { return a + int32(float64(b-a)*frac) }
	return tcell.NewRGBColor(lerp(r0, r1), lerp(g0, g1), lerp(b0, b1))
}
