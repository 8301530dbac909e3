package ui

import (
	"watchface/pebble/fonts"
	"watchface/pebble/gfx"
)

var systemFont = fonts.System()

// WindowHandlers are called as the window enters and leaves the stack.
// Load runs once, the first time the window is pushed; Unload runs when it
// is removed.
type WindowHandlers struct {
	Load   func(w *Window)
	Unload func(w *Window)
}

// Window is a full-screen surface with a root layer.
type Window struct {
	root     *Layer
	bg       gfx.Color
	handlers WindowHandlers

	stack     *Stack
	loaded    bool
	dirty     bool
	destroyed bool
}

// NewWindow creates a window with a white background. Its root layer gets the
// display size when the window is pushed.
func NewWindow() (*Window, error) {
	root, err := NewLayer(gfx.Rect{})
	if err != nil {
		return nil, err
	}
	w := &Window{root: root, bg: gfx.ColorWhite}
	root.window = w
	return w, nil
}

func (w *Window) RootLayer() *Layer { return w.root }

func (w *Window) SetBackgroundColor(c gfx.Color) {
	w.bg = c
	w.dirty = true
}

func (w *Window) SetHandlers(h WindowHandlers) { w.handlers = h }

// Loaded reports whether the load handler has run and unload has not.
func (w *Window) Loaded() bool { return w.loaded }

// OnStack reports whether the window is currently pushed.
func (w *Window) OnStack() bool { return w.stack != nil }

// Destroy removes the window from its stack (running the unload handler) and
// releases the root layer.
func (w *Window) Destroy() error {
	if w == nil || w.destroyed {
		return ErrDestroyed
	}
	if w.stack != nil {
		if err := w.stack.Remove(w); err != nil {
			return err
		}
	}
	w.destroyed = true
	w.root.window = nil
	return w.root.Destroy()
}
