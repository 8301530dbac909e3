// Package event is the app event loop: a single-threaded, cooperative
// dispatcher that turns HAL input into handler calls and then renders.
package event

import (
	"errors"
	"fmt"
	"runtime/debug"

	"watchface/hal"
)

var (
	// ErrReentrant is returned when Step is called from inside a handler.
	ErrReentrant = errors.New("event: reentrant step")
	// ErrStopped is returned by Step after a handler panicked.
	ErrStopped = errors.New("event: loop stopped")
)

// Source is polled once per step. Poll drains whatever the source has
// buffered and calls its subscribers synchronously.
type Source interface {
	Poll()
}

// Renderer draws whatever the handlers invalidated.
type Renderer interface {
	Render() (bool, error)
}

// PanicInfo describes a handler panic recovered by the loop.
type PanicInfo struct {
	Value any
	Stack []byte
}

// PanicError wraps a recovered handler panic.
type PanicError struct {
	Info PanicInfo
}

func (e *PanicError) Error() string { return fmt.Sprintf("event: handler panic: %v", e.Info.Value) }

// Loop owns dispatch. All handlers run on the goroutine that calls Step.
type Loop struct {
	ticks    <-chan uint64
	sources  []Source
	renderer Renderer

	now      uint64
	frames   uint64
	inStep   bool
	stopped  bool
	onRender []func(frame uint64)
}

// New creates a loop paced by t. t may be nil (tests drive Step directly).
func New(t hal.Time, r Renderer) *Loop {
	l := &Loop{renderer: r}
	if t != nil {
		l.ticks = t.Ticks()
	}
	return l
}

// AddSource registers a source. Sources are polled in registration order.
func (l *Loop) AddSource(s Source) {
	l.sources = append(l.sources, s)
}

// OnRender registers fn to run after each drawn frame.
func (l *Loop) OnRender(fn func(frame uint64)) {
	l.onRender = append(l.onRender, fn)
}

// NowTick returns the latest HAL tick observed.
func (l *Loop) NowTick() uint64 { return l.now }

// Frames returns the number of frames rendered so far.
func (l *Loop) Frames() uint64 { return l.frames }

// Stopped reports whether a handler panic stopped the loop.
func (l *Loop) Stopped() bool { return l.stopped }

// Step drains HAL ticks, polls every source once and renders. A panic in a
// handler stops the loop and is returned as *PanicError.
func (l *Loop) Step() (err error) {
	if l.stopped {
		return ErrStopped
	}
	if l.inStep {
		return ErrReentrant
	}
	l.inStep = true
	defer func() {
		l.inStep = false
		if r := recover(); r != nil {
			l.stopped = true
			err = &PanicError{Info: PanicInfo{Value: r, Stack: debug.Stack()}}
		}
	}()

	l.drainTicks()
	for _, s := range l.sources {
		s.Poll()
	}

	if l.renderer == nil {
		return nil
	}
	drawn, err := l.renderer.Render()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if drawn {
		l.frames++
		for _, fn := range l.onRender {
			fn(l.frames)
		}
	}
	return nil
}

func (l *Loop) drainTicks() {
	if l.ticks == nil {
		return
	}
	for {
		select {
		case seq := <-l.ticks:
			if seq > l.now {
				l.now = seq
			}
		default:
			return
		}
	}
}
