package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"watchface/face"
	"watchface/hal"
	"watchface/internal/buildinfo"
	"watchface/pebble/battery"
	"watchface/pebble/event"
	"watchface/pebble/fonts"
	"watchface/pebble/tick"
	"watchface/pebble/ui"
)

// Config tunes the watchface system. The zero value is the stock watchface.
type Config struct {
	// Ordinals selects the date suffix rule ("last-digit" or "english").
	Ordinals string
	// Clock overrides the wall clock (tests, demos).
	Clock tick.Clock
	// Report, when set, receives one JSON line per rendered frame.
	Report io.Writer
}

var errClosed = errors.New("app: closed")

// System is the running watchface: the event loop, the toolkit services and
// the face they drive.
type System struct {
	h hal.HAL

	stack *ui.Stack
	ticks *tick.Service
	bat   *battery.Service
	loop  *event.Loop
	face  *face.Face

	initErr error
	fatal   bool
	closed  bool
}

// New initializes the stock watchface.
func New(h hal.HAL) *System {
	return NewWithConfig(h, Config{})
}

// NewWithConfig initializes the watchface. A failed initialization is not
// returned here: the diagnostic is drawn and logged, and Step reports it.
func NewWithConfig(h hal.HAL, cfg Config) *System {
	s := &System{h: h}
	if err := s.init(cfg); err != nil {
		s.initErr = err
		s.fail(err)
	}
	return s
}

// Run starts the watchface and drives it forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	s := New(h)
	t := time.NewTicker(time.Second / 30)
	defer t.Stop()
	for range t.C {
		if err := s.Step(); err != nil {
			select {}
		}
	}
}

func (s *System) init(cfg Config) error {
	suffix, err := face.ParseSuffixer(cfg.Ordinals)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	stack, err := ui.NewStack(s.h.Display())
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	s.stack = stack
	s.ticks = tick.New(cfg.Clock)
	s.bat = battery.New(s.h.Battery())

	s.loop = event.New(s.h.Time(), stack)
	s.loop.AddSource(s.ticks)
	s.loop.AddSource(s.bat)

	s.face = face.New(face.Deps{
		Stack:   stack,
		Ticks:   s.ticks,
		Battery: s.bat,
		Logger:  s.h.Logger(),
		Suffix:  suffix,
	})
	if err := s.face.Init(); err != nil {
		return fmt.Errorf("face: %w", err)
	}

	if cfg.Report != nil {
		r := newReporter(cfg.Report, s.face)
		s.loop.OnRender(r.frame)
	}
	s.logf("watchface %s: %dx%d, ordinals=%s", buildinfo.Short(), stack.Size().W, stack.Size().H, ordinalsName(cfg.Ordinals))
	return nil
}

// Face exposes the running face, nil if initialization failed.
func (s *System) Face() *face.Face { return s.face }

// Step runs one pass of the event loop. Any error is fatal: it is logged and
// drawn, and every later Step returns an error too.
func (s *System) Step() error {
	if s.closed {
		return errClosed
	}
	if s.initErr != nil {
		return s.initErr
	}
	if err := s.loop.Step(); err != nil {
		if !s.fatal {
			s.fail(err)
		}
		return err
	}
	return nil
}

// Close unloads the face. Subscriptions are dropped before any resource is
// released.
func (s *System) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.face == nil {
		return nil
	}
	err := s.face.Deinit()
	if n, f := ui.LiveLayers(), fonts.Loaded(); n != 0 || f != 0 {
		s.logf("watchface: leaked resources after unload: layers=%d fonts=%d", n, f)
	}
	return err
}

func (s *System) fail(err error) {
	s.fatal = true
	var pe *event.PanicError
	if errors.As(err, &pe) {
		showFatal(s.h, err.Error(), pe.Info.Stack)
		return
	}
	showFatal(s.h, err.Error(), nil)
}

func (s *System) logf(format string, args ...any) {
	if l := s.h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}

func ordinalsName(name string) string {
	if name == "" {
		return face.OrdinalsLastDigit
	}
	return name
}
