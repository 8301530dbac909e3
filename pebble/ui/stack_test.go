package ui

import (
	"errors"
	"testing"

	"watchface/hal"
	"watchface/pebble/gfx"
)

type display struct{ fb hal.Framebuffer }

func (d display) Framebuffer() hal.Framebuffer { return d.fb }

func newTestStack(t *testing.T) (*hal.RAMFramebuffer, *Stack) {
	t.Helper()
	fb := hal.NewRAMFramebuffer(30, 20)
	s, err := NewStack(display{fb: fb})
	if err != nil {
		t.Fatalf("NewStack: %v", err)
	}
	return fb, s
}

func TestNewStackNeedsFramebuffer(t *testing.T) {
	if _, err := NewStack(nil); !errors.Is(err, ErrNoFramebuffer) {
		t.Fatalf("NewStack(nil) = %v, want ErrNoFramebuffer", err)
	}
	if _, err := NewStack(display{}); !errors.Is(err, ErrNoFramebuffer) {
		t.Fatalf("NewStack(no fb) = %v, want ErrNoFramebuffer", err)
	}
}

func TestPushLoadsOnceAndRemoveUnloads(t *testing.T) {
	_, s := newTestStack(t)
	w, err := NewWindow()
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	defer w.Destroy()

	var events []string
	w.SetHandlers(WindowHandlers{
		Load: func(w *Window) {
			events = append(events, "load")
			if got := w.RootLayer().Frame(); got != gfx.R(0, 0, 30, 20) {
				t.Fatalf("root frame in load = %+v, want display size", got)
			}
		},
		Unload: func(*Window) { events = append(events, "unload") },
	})

	if err := s.Push(w); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := s.Push(w); !errors.Is(err, ErrOnStack) {
		t.Fatalf("second Push = %v, want ErrOnStack", err)
	}
	if !w.Loaded() || !w.OnStack() || s.Top() != w {
		t.Fatal("expected window loaded on top")
	}

	popped, err := s.Pop()
	if err != nil || popped != w {
		t.Fatalf("Pop = %p, %v", popped, err)
	}
	if w.Loaded() || w.OnStack() {
		t.Fatal("expected window unloaded and off the stack")
	}
	if err := s.Remove(w); !errors.Is(err, ErrNotOnStack) {
		t.Fatalf("Remove = %v, want ErrNotOnStack", err)
	}
	if _, err := s.Pop(); !errors.Is(err, ErrNotOnStack) {
		t.Fatalf("Pop on empty stack = %v, want ErrNotOnStack", err)
	}
	if len(events) != 2 || events[0] != "load" || events[1] != "unload" {
		t.Fatalf("events = %v, want [load unload]", events)
	}
}

func TestWindowDestroyUnloads(t *testing.T) {
	_, s := newTestStack(t)
	before := LiveLayers()

	w, err := NewWindow()
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	var child *Layer
	w.SetHandlers(WindowHandlers{
		Load: func(w *Window) {
			child, _ = NewLayer(gfx.R(1, 1, 5, 5))
			w.RootLayer().AddChild(child)
		},
		Unload: func(*Window) { child.Destroy() },
	})
	if err := s.Push(w); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if got := LiveLayers() - before; got != 2 {
		t.Fatalf("live layers = %d, want 2", got)
	}

	if err := w.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if got := LiveLayers(); got != before {
		t.Fatalf("LiveLayers = %d, want %d", got, before)
	}
	if s.Top() != nil {
		t.Fatal("expected empty stack")
	}
	if err := w.Destroy(); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("second Destroy = %v, want ErrDestroyed", err)
	}
	if err := s.Push(w); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("Push destroyed = %v, want ErrDestroyed", err)
	}
}

func TestLayerTree(t *testing.T) {
	parent, _ := NewLayer(gfx.R(0, 0, 10, 10))
	child, _ := NewLayer(gfx.R(1, 1, 2, 2))
	defer parent.Destroy()
	defer child.Destroy()

	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := parent.AddChild(child); !errors.Is(err, ErrHasParent) {
		t.Fatalf("second AddChild = %v, want ErrHasParent", err)
	}
	if child.Parent() != parent || len(parent.Children()) != 1 {
		t.Fatal("expected child attached")
	}
	child.RemoveFromParent()
	if child.Parent() != nil || len(parent.Children()) != 0 {
		t.Fatal("expected child detached")
	}
	if got := child.Bounds(); got != gfx.R(0, 0, 2, 2) {
		t.Fatalf("Bounds = %+v, want origin 0,0", got)
	}
	if _, err := NewLayer(gfx.R(0, 0, -1, 4)); !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("NewLayer negative = %v, want ErrInvalidFrame", err)
	}
}

func TestRenderOnlyWhenDirty(t *testing.T) {
	fb, s := newTestStack(t)
	w, _ := NewWindow()
	defer w.Destroy()

	var bar *Layer
	draws := 0
	w.SetHandlers(WindowHandlers{
		Load: func(w *Window) {
			bar, _ = NewLayer(gfx.R(5, 5, 10, 2))
			bar.SetUpdateProc(func(l *Layer, ctx *gfx.Context) {
				draws++
				ctx.SetFillColor(gfx.ColorBlack)
				ctx.FillRect(l.Bounds())
			})
			w.RootLayer().AddChild(bar)
		},
		Unload: func(*Window) { bar.Destroy() },
	})
	if err := s.Push(w); err != nil {
		t.Fatalf("Push: %v", err)
	}

	drawn, err := s.Render()
	if err != nil || !drawn {
		t.Fatalf("first Render = %v, %v, want drawn", drawn, err)
	}
	if p, _ := hal.PixelAt(fb, 5, 5); p != 0 {
		t.Fatalf("pixel (5,5) = %#04x, want black", p)
	}
	if p, _ := hal.PixelAt(fb, 4, 5); p != 0xFFFF {
		t.Fatalf("pixel (4,5) = %#04x, want white background", p)
	}
	if fb.Presents() != 1 {
		t.Fatalf("Presents = %d, want 1", fb.Presents())
	}

	if drawn, _ := s.Render(); drawn {
		t.Fatal("Render drew a clean window")
	}

	bar.MarkDirty()
	if !s.Dirty() {
		t.Fatal("expected dirty after MarkDirty")
	}
	if drawn, _ := s.Render(); !drawn || draws != 2 {
		t.Fatalf("Render after MarkDirty drawn=%v draws=%d, want true and 2", drawn, draws)
	}

	bar.SetHidden(true)
	s.Render()
	if p, _ := hal.PixelAt(fb, 5, 5); p != 0xFFFF {
		t.Fatalf("hidden layer pixel = %#04x, want white", p)
	}
}

func TestTextLayer(t *testing.T) {
	fb, s := newTestStack(t)
	w, _ := NewWindow()
	defer w.Destroy()

	var text *TextLayer
	w.SetHandlers(WindowHandlers{
		Load: func(w *Window) {
			text, _ = NewTextLayer(gfx.R(0, 0, 30, 20))
			text.SetBackgroundColor(gfx.ColorBlack)
			text.SetTextColor(gfx.ColorWhite)
			text.SetText("Hi")
			w.RootLayer().AddChild(text.Layer())
		},
		Unload: func(*Window) { text.Destroy() },
	})
	if err := s.Push(w); err != nil {
		t.Fatalf("Push: %v", err)
	}
	s.Render()

	if text.Text() != "Hi" {
		t.Fatalf("Text = %q, want %q", text.Text(), "Hi")
	}
	white := 0
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if p, _ := hal.PixelAt(fb, x, y); p == 0xFFFF {
				white++
			}
		}
	}
	if white == 0 {
		t.Fatal("expected glyph pixels from the system font")
	}

	text.SetText("Hi")
	if s.Dirty() {
		t.Fatal("SetText with the same string marked the window dirty")
	}
	text.SetText("Yo")
	if !s.Dirty() {
		t.Fatal("SetText with a new string did not mark the window dirty")
	}
}
