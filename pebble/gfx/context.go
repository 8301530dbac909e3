package gfx

import (
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

type rectFiller interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Context draws into a display on behalf of one layer. Coordinates passed to
// its methods are relative to the layer origin and everything is clipped to
// the layer frame.
type Context struct {
	d      drivers.Displayer
	origin Point
	clip   Rect

	fill Color
	text Color

	err error
}

// NewContext returns a context whose origin and clip are the given screen rect.
func NewContext(d drivers.Displayer, frame Rect) *Context {
	c := &Context{d: d, fill: ColorBlack, text: ColorBlack}
	c.Reset(frame, frame)
	return c
}

// Reset retargets the context to a layer at origin, clipped to clip (both in
// screen coordinates). Colors are reset to black.
func (c *Context) Reset(frame, clip Rect) {
	c.origin = frame.Origin
	c.clip = clip.Intersect(c.screen())
	c.fill = ColorBlack
	c.text = ColorBlack
}

func (c *Context) screen() Rect {
	if c.d == nil {
		return Rect{}
	}
	w, h := c.d.Size()
	return R(0, 0, int(w), int(h))
}

// TakeErr returns the first driver error since the last call and clears it.
func (c *Context) TakeErr() error {
	err := c.err
	c.err = nil
	return err
}

func (c *Context) SetFillColor(col Color) { c.fill = col }
func (c *Context) SetTextColor(col Color) { c.text = col }

// FillRect fills r with the current fill color. A clear fill is a no-op.
func (c *Context) FillRect(r Rect) {
	if IsClear(c.fill) || c.d == nil {
		return
	}
	r = r.Offset(c.origin).Intersect(c.clip)
	if r.Empty() {
		return
	}
	if f, ok := c.d.(rectFiller); ok {
		if err := f.FillRectangle(int16(r.Origin.X), int16(r.Origin.Y), int16(r.Size.W), int16(r.Size.H), c.fill); err != nil && c.err == nil {
			c.err = err
		}
		return
	}
	for y := r.Origin.Y; y < r.MaxY(); y++ {
		for x := r.Origin.X; x < r.MaxX(); x++ {
			c.d.SetPixel(int16(x), int16(y), c.fill)
		}
	}
}

// DrawText draws text inside box using the current text color. Lines are split
// on '\n'; each line is aligned on its own and glyphs are clipped to box.
func (c *Context) DrawText(text string, font tinyfont.Fonter, box Rect, align Alignment) {
	if font == nil || IsClear(c.text) || c.d == nil || text == "" {
		return
	}
	screenBox := box.Offset(c.origin)
	clip := screenBox.Intersect(c.clip)
	if clip.Empty() {
		return
	}
	dst := clipDisplay{d: c.d, clip: clip}

	lineHeight := int(font.GetYAdvance())
	ascent := FontAscent(font)
	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		x := screenBox.Origin.X + alignOffset(font, line, box.Size.W, align)
		y := screenBox.Origin.Y + i*lineHeight + ascent
		tinyfont.WriteLine(dst, font, int16(x), int16(y), line, c.text)
	}
}

// FontAscent is the distance from the top of a line to the baseline, measured
// on a capital letter.
func FontAscent(font tinyfont.Fonter) int {
	if font == nil {
		return 0
	}
	g := font.GetGlyph('M')
	if g == nil {
		return int(font.GetYAdvance())
	}
	if off := -int(g.Info().YOffset); off > 0 {
		return off
	}
	return int(font.GetYAdvance())
}

// TextWidth returns the advance width of a single line.
func TextWidth(font tinyfont.Fonter, line string) int {
	if font == nil {
		return 0
	}
	_, outbox := tinyfont.LineWidth(font, line)
	return int(outbox)
}

func alignOffset(font tinyfont.Fonter, line string, boxW int, align Alignment) int {
	switch align {
	case AlignCenter:
		return (boxW - TextWidth(font, line)) / 2
	case AlignRight:
		return boxW - TextWidth(font, line)
	default:
		return 0
	}
}

// clipDisplay drops pixels outside clip so glyphs never spill out of a layer.
type clipDisplay struct {
	d    drivers.Displayer
	clip Rect
}

func (c clipDisplay) Size() (x, y int16) { return c.d.Size() }

func (c clipDisplay) SetPixel(x, y int16, col color.RGBA) {
	if !c.clip.Contains(int(x), int(y)) {
		return
	}
	c.d.SetPixel(x, y, col)
}

func (c clipDisplay) Display() error { return nil }
