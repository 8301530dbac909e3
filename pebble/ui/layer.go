// Package ui implements the window stack and layer tree that watch apps build
// their screens from.
//
// A Window owns a root Layer sized to the display. Apps attach child layers
// in the window's load handler and destroy them in its unload handler. Layers
// draw through an update proc during the stack's render pass; nothing is
// drawn outside of that pass.
package ui

import (
	"errors"
	"fmt"
	"sync/atomic"

	"watchface/pebble/gfx"
)

var (
	ErrDestroyed    = errors.New("ui: already destroyed")
	ErrInvalidFrame = errors.New("ui: invalid frame")
	ErrHasParent    = errors.New("ui: layer already has a parent")
)

var liveLayers atomic.Int64

// LiveLayers returns the number of layers created and not yet destroyed.
// Window root layers are included.
func LiveLayers() int { return int(liveLayers.Load()) }

// UpdateProc draws a layer. ctx is already translated to the layer origin
// and clipped to its frame.
type UpdateProc func(l *Layer, ctx *gfx.Context)

// Layer is a rectangular region of a window that can hold children and
// receive draw calls.
type Layer struct {
	frame    gfx.Rect
	parent   *Layer
	children []*Layer
	update   UpdateProc
	hidden   bool

	// window is set on root layers only.
	window    *Window
	destroyed bool
}

// NewLayer creates a detached layer with the given frame (in parent coordinates).
func NewLayer(frame gfx.Rect) (*Layer, error) {
	if frame.Size.W < 0 || frame.Size.H < 0 {
		return nil, fmt.Errorf("new layer %+v: %w", frame, ErrInvalidFrame)
	}
	liveLayers.Add(1)
	return &Layer{frame: frame}, nil
}

// Destroy detaches the layer from its parent and releases it. Children are
// detached but not destroyed; their owners release them.
func (l *Layer) Destroy() error {
	if l == nil || l.destroyed {
		return ErrDestroyed
	}
	l.RemoveFromParent()
	for _, c := range l.children {
		c.parent = nil
	}
	l.children = nil
	l.update = nil
	l.destroyed = true
	liveLayers.Add(-1)
	return nil
}

func (l *Layer) Destroyed() bool { return l.destroyed }

// Frame is the layer rect in its parent's coordinates.
func (l *Layer) Frame() gfx.Rect { return l.frame }

// Bounds is the layer rect in its own coordinates (origin 0,0).
func (l *Layer) Bounds() gfx.Rect {
	return gfx.Rect{Size: l.frame.Size}
}

func (l *Layer) SetFrame(frame gfx.Rect) {
	l.frame = frame
	l.MarkDirty()
}

func (l *Layer) SetUpdateProc(p UpdateProc) {
	l.update = p
	l.MarkDirty()
}

func (l *Layer) SetHidden(hidden bool) {
	if l.hidden == hidden {
		return
	}
	l.hidden = hidden
	l.MarkDirty()
}

func (l *Layer) Hidden() bool { return l.hidden }

func (l *Layer) Parent() *Layer { return l.parent }

func (l *Layer) Children() []*Layer { return l.children }

// AddChild appends child on top of the existing children.
func (l *Layer) AddChild(child *Layer) error {
	if l.destroyed || child == nil || child.destroyed {
		return ErrDestroyed
	}
	if child.parent != nil {
		return ErrHasParent
	}
	child.parent = l
	l.children = append(l.children, child)
	l.MarkDirty()
	return nil
}

func (l *Layer) RemoveFromParent() {
	p := l.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == l {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	l.parent = nil
	p.MarkDirty()
}

// Window returns the window this layer is attached to, if any.
func (l *Layer) Window() *Window {
	for n := l; n != nil; n = n.parent {
		if n.window != nil {
			return n.window
		}
	}
	return nil
}

// MarkDirty schedules a redraw of the window the layer belongs to. Detached
// layers are drawn when they get attached, so there is nothing to record.
func (l *Layer) MarkDirty() {
	if w := l.Window(); w != nil {
		w.dirty = true
	}
}

// draw renders l and its subtree. origin and clip are in screen coordinates
// of l's parent.
func (l *Layer) draw(ctx *gfx.Context, parentOrigin gfx.Point, parentClip gfx.Rect) {
	if l.hidden || l.destroyed {
		return
	}
	frame := l.frame.Offset(parentOrigin)
	clip := frame.Intersect(parentClip)
	if clip.Empty() {
		return
	}
	if l.update != nil {
		ctx.Reset(frame, clip)
		l.update(l, ctx)
	}
	for _, c := range l.children {
		c.draw(ctx, frame.Origin, clip)
	}
}
