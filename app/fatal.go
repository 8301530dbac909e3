package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"watchface/hal"
	"watchface/pebble/fonts"
	"watchface/pebble/gfx"

	"tinygo.org/x/tinyfont"
)

// showFatal logs msg (and stack, if any) and paints it on the display in the
// system font. The watch has no way to recover from a boot-time resource
// failure, so this screen is the last thing it shows.
func showFatal(h hal.HAL, msg string, stack []byte) {
	lines := []string{"Watchface fatal:"}
	lines = append(lines, msg)
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.TrimSpace(line))
		}
	}

	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}

	fb.ClearRGB(255, 255, 255)

	font := fonts.System()
	lineHeight := int16(font.GetYAdvance())
	ascent := int16(gfx.FontAscent(font))
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 || lineHeight <= 0 {
		_ = fb.Present()
		return
	}

	d := gfx.NewFramebufferDisplay(fb)
	maxH := int16(fb.Height())
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+lineHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 0, y+ascent, chunk, gfx.ColorBlack)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	if err := fb.Present(); err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("watchface: present fatal screen: %v", err))
		}
	}
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
