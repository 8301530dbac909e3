// Package gfx is the drawing layer of the watch toolkit: integer geometry,
// colors, and a Context that layers draw through.
package gfx

import "image/color"

// Point is a position in pixels.
type Point struct {
	X, Y int
}

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

// Rect is an origin plus a size. Rects with a non-positive dimension are empty.
type Rect struct {
	Origin Point
	Size   Size
}

// R is shorthand for Rect{Point{x, y}, Size{w, h}}.
func R(x, y, w, h int) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

func (r Rect) Empty() bool { return r.Size.W <= 0 || r.Size.H <= 0 }

func (r Rect) MaxX() int { return r.Origin.X + r.Size.W }
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.H }

// Offset moves r by p.
func (r Rect) Offset(p Point) Rect {
	r.Origin.X += p.X
	r.Origin.Y += p.Y
	return r
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.Origin.X, o.Origin.X)
	y0 := max(r.Origin.Y, o.Origin.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x0 >= x1 || y0 >= y1 {
		return Rect{}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

// Contains reports whether the pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Origin.X && x < r.MaxX() && y >= r.Origin.Y && y < r.MaxY()
}

// Color is an RGBA color. Alpha 0 means transparent: fills and text in a
// clear color draw nothing.
type Color = color.RGBA

var (
	ColorClear = Color{}
	ColorBlack = Color{R: 0, G: 0, B: 0, A: 0xFF}
	ColorWhite = Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// IsClear reports whether c draws nothing.
func IsClear(c Color) bool { return c.A == 0 }

// Alignment positions a text line horizontally inside its box.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)
