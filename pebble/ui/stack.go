package ui

import (
	"errors"
	"fmt"

	"watchface/hal"
	"watchface/pebble/gfx"
)

var (
	ErrNoFramebuffer = errors.New("ui: no RGB565 framebuffer")
	ErrOnStack       = errors.New("ui: window already on a stack")
	ErrNotOnStack    = errors.New("ui: window not on this stack")
)

// Stack is the window stack of one display. Only the top window is drawn.
type Stack struct {
	fb      hal.Framebuffer
	display *gfx.FramebufferDisplay
	ctx     *gfx.Context

	windows  []*Window
	rendered *Window
}

// NewStack binds a stack to the display's framebuffer.
func NewStack(disp hal.Display) (*Stack, error) {
	if disp == nil {
		return nil, ErrNoFramebuffer
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Width() <= 0 || fb.Height() <= 0 {
		return nil, ErrNoFramebuffer
	}
	d := gfx.NewFramebufferDisplay(fb)
	return &Stack{
		fb:      fb,
		display: d,
		ctx:     gfx.NewContext(d, gfx.R(0, 0, fb.Width(), fb.Height())),
	}, nil
}

// Size is the display size; root layers of pushed windows get this frame.
func (s *Stack) Size() gfx.Size {
	return gfx.Size{W: s.fb.Width(), H: s.fb.Height()}
}

// Push puts w on top of the stack. The load handler runs synchronously if the
// window is not loaded yet.
func (s *Stack) Push(w *Window) error {
	if w == nil || w.destroyed {
		return ErrDestroyed
	}
	if w.stack != nil {
		return ErrOnStack
	}
	w.root.frame = gfx.Rect{Size: s.Size()}
	w.stack = s
	s.windows = append(s.windows, w)
	w.dirty = true
	if !w.loaded {
		w.loaded = true
		if w.handlers.Load != nil {
			w.handlers.Load(w)
		}
	}
	return nil
}

// Pop removes the top window.
func (s *Stack) Pop() (*Window, error) {
	top := s.Top()
	if top == nil {
		return nil, ErrNotOnStack
	}
	return top, s.Remove(top)
}

// Remove takes w off the stack and runs its unload handler.
func (s *Stack) Remove(w *Window) error {
	idx := -1
	for i, sw := range s.windows {
		if sw == w {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotOnStack
	}
	s.windows = append(s.windows[:idx], s.windows[idx+1:]...)
	w.stack = nil
	if s.rendered == w {
		s.rendered = nil
	}
	if w.loaded {
		w.loaded = false
		if w.handlers.Unload != nil {
			w.handlers.Unload(w)
		}
	}
	if top := s.Top(); top != nil {
		top.dirty = true
	}
	return nil
}

func (s *Stack) Top() *Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// Dirty reports whether the next Render will draw.
func (s *Stack) Dirty() bool {
	top := s.Top()
	return top != nil && (top.dirty || top != s.rendered)
}

// Render redraws the top window if anything on it changed and presents the
// framebuffer. It reports whether a frame was drawn.
func (s *Stack) Render() (bool, error) {
	if !s.Dirty() {
		return false, nil
	}
	top := s.Top()

	bg := top.bg
	s.fb.ClearRGB(bg.R, bg.G, bg.B)
	screen := gfx.Rect{Size: s.Size()}
	top.root.draw(s.ctx, gfx.Point{}, screen)

	top.dirty = false
	s.rendered = top
	if err := s.ctx.TakeErr(); err != nil {
		return true, fmt.Errorf("draw: %w", err)
	}
	return true, s.display.Display()
}
