package event

import (
	"errors"
	"testing"
)

type funcSource func()

func (f funcSource) Poll() { f() }

type fakeRenderer struct {
	dirty bool
	err   error
	calls int
}

func (r *fakeRenderer) Render() (bool, error) {
	r.calls++
	if r.err != nil {
		return false, r.err
	}
	drawn := r.dirty
	r.dirty = false
	return drawn, nil
}

type fakeTime struct{ ch chan uint64 }

func (t fakeTime) Ticks() <-chan uint64 { return t.ch }

func TestStepPollsThenRenders(t *testing.T) {
	r := &fakeRenderer{}
	l := New(nil, r)

	var order []string
	l.AddSource(funcSource(func() { order = append(order, "a") }))
	l.AddSource(funcSource(func() {
		order = append(order, "b")
		r.dirty = true
	}))

	var frames []uint64
	l.OnRender(func(frame uint64) { frames = append(frames, frame) })

	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("poll order = %v, want [a b]", order)
	}
	if r.calls != 1 || l.Frames() != 1 {
		t.Fatalf("render calls = %d frames = %d, want 1 and 1", r.calls, l.Frames())
	}
	if len(frames) != 1 || frames[0] != 1 {
		t.Fatalf("OnRender frames = %v, want [1]", frames)
	}
}

func TestStepSkipsCleanFrames(t *testing.T) {
	r := &fakeRenderer{}
	l := New(nil, r)

	calls := 0
	l.OnRender(func(uint64) { calls++ })
	for i := 0; i < 3; i++ {
		if err := l.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if calls != 0 || l.Frames() != 0 {
		t.Fatalf("OnRender calls = %d frames = %d, want 0", calls, l.Frames())
	}
}

func TestStepDrainsTicks(t *testing.T) {
	ch := make(chan uint64, 4)
	l := New(fakeTime{ch: ch}, nil)

	ch <- 5
	ch <- 9
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := l.NowTick(); got != 9 {
		t.Fatalf("NowTick = %d, want 9", got)
	}
	if len(ch) != 0 {
		t.Fatalf("ticks left in channel: %d", len(ch))
	}
}

func TestStepReentrant(t *testing.T) {
	l := New(nil, nil)

	var inner error
	l.AddSource(funcSource(func() { inner = l.Step() }))
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !errors.Is(inner, ErrReentrant) {
		t.Fatalf("nested Step = %v, want ErrReentrant", inner)
	}
}

func TestHandlerPanicStopsLoop(t *testing.T) {
	l := New(nil, nil)
	l.AddSource(funcSource(func() { panic("boom") }))

	err := l.Step()
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Step = %v, want *PanicError", err)
	}
	if pe.Info.Value != "boom" || len(pe.Info.Stack) == 0 {
		t.Fatalf("panic info = %v (stack %d bytes)", pe.Info.Value, len(pe.Info.Stack))
	}
	if !l.Stopped() {
		t.Fatal("expected loop stopped")
	}
	if err := l.Step(); !errors.Is(err, ErrStopped) {
		t.Fatalf("Step after panic = %v, want ErrStopped", err)
	}
}

func TestRenderError(t *testing.T) {
	boom := errors.New("present failed")
	r := &fakeRenderer{err: boom}
	l := New(nil, r)

	if err := l.Step(); !errors.Is(err, boom) {
		t.Fatalf("Step = %v, want %v", err, boom)
	}
}
