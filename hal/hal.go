package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrBatteryUnavailable is returned by Battery.Peek when no charge reading exists.
var ErrBatteryUnavailable = errors.New("battery unavailable")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined (1ms on every current target).
// Wall-clock time is read separately; ticks only pace the event loop.
type Time interface {
	Ticks() <-chan uint64
}

// BatterySample is one reading of the power subsystem.
type BatterySample struct {
	Percent  uint8
	Charging bool
	Plugged  bool
}

// Battery reports the charge state.
//
// Peek is synchronous. Changes delivers a sample whenever the platform notices
// a new reading; sends are best-effort and may drop samples when the consumer
// lags, so consumers should treat each sample as the latest state.
type Battery interface {
	Peek() (BatterySample, error)
	Changes() <-chan BatterySample
}

// HAL provides the only contact point between the watch and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Time() Time
	Battery() Battery
}

// App is what the runners drive: Step once per frame on a single goroutine,
// then Close once when the runner stops.
type App interface {
	Step() error
	Close() error
}
