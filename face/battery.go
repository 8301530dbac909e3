package face

import (
	"watchface/pebble/gfx"
	"watchface/pebble/ui"
)

// BarWidth is floor(percent/100 * width) with percent clamped to [0, 100].
func BarWidth(percent, width int) int {
	if width <= 0 {
		return 0
	}
	percent = min(max(percent, 0), 100)
	return percent * width / 100
}

// drawBatteryBar paints the indicator: a full-width top rule, the charge bar
// two pixels below it and a full-width bottom rule four pixels below the top.
func drawBatteryBar(percent int, bounds gfx.Rect, ctx *gfx.Context) {
	w := bounds.Size.W

	ctx.SetFillColor(gfx.ColorClear)
	ctx.FillRect(bounds)

	ctx.SetFillColor(gfx.ColorBlack)
	ctx.FillRect(gfx.R(0, 0, w, 1))
	ctx.FillRect(gfx.R(0, 2, BarWidth(percent, w), 1))
	ctx.FillRect(gfx.R(0, 4, w, 1))
}

func (f *Face) batteryUpdateProc(l *ui.Layer, ctx *gfx.Context) {
	drawBatteryBar(f.batteryLevel, l.Bounds(), ctx)
}
