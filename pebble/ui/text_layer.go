package ui

import (
	"watchface/pebble/gfx"

	"tinygo.org/x/tinyfont"
)

// TextLayer is a layer that draws a string. The string is referenced, not
// copied into a fixed buffer, so callers may pass freshly formatted text.
type TextLayer struct {
	layer *Layer

	text  string
	font  tinyfont.Fonter
	fg    gfx.Color
	bg    gfx.Color
	align gfx.Alignment
}

// NewTextLayer creates a text layer with black text on a white background,
// left aligned, using the system font.
func NewTextLayer(frame gfx.Rect) (*TextLayer, error) {
	l, err := NewLayer(frame)
	if err != nil {
		return nil, err
	}
	t := &TextLayer{
		layer: l,
		fg:    gfx.ColorBlack,
		bg:    gfx.ColorWhite,
		align: gfx.AlignLeft,
	}
	l.SetUpdateProc(t.draw)
	return t, nil
}

// Layer exposes the underlying layer for attaching to a parent.
func (t *TextLayer) Layer() *Layer { return t.layer }

func (t *TextLayer) Destroy() error { return t.layer.Destroy() }

func (t *TextLayer) Text() string { return t.text }

func (t *TextLayer) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.layer.MarkDirty()
}

// SetFont sets the face used for drawing. A nil face falls back to the
// system font at draw time.
func (t *TextLayer) SetFont(f tinyfont.Fonter) {
	t.font = f
	t.layer.MarkDirty()
}

func (t *TextLayer) SetTextColor(c gfx.Color) {
	t.fg = c
	t.layer.MarkDirty()
}

func (t *TextLayer) SetBackgroundColor(c gfx.Color) {
	t.bg = c
	t.layer.MarkDirty()
}

func (t *TextLayer) SetTextAlignment(a gfx.Alignment) {
	t.align = a
	t.layer.MarkDirty()
}

func (t *TextLayer) draw(l *Layer, ctx *gfx.Context) {
	bounds := l.Bounds()
	ctx.SetFillColor(t.bg)
	ctx.FillRect(bounds)

	font := t.font
	if font == nil {
		font = systemFont
	}
	ctx.SetTextColor(t.fg)
	ctx.DrawText(t.text, font, bounds, t.align)
}
