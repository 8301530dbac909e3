//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	BatterySourceUPower = "upower"
	BatterySourceSim    = "sim"
)

// HostConfig describes the desktop stand-in for the watch.
type HostConfig struct {
	Width  int
	Height int
	// Scale is the window magnification; ignored in headless mode.
	Scale int

	BatterySource string
	SimInterval   time.Duration
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Width <= 0 {
		c.Width = 144
	}
	if c.Height <= 0 {
		c.Height = 168
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.BatterySource == "" {
		c.BatterySource = BatterySourceUPower
	}
	if c.SimInterval <= 0 {
		c.SimInterval = time.Minute
	}
	return c
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	t      *hostTime
	bat    Battery
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	cfg = cfg.withDefaults()
	// stdout carries -report output.
	logger := &hostLogger{w: os.Stderr}
	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		t:      newHostTime(),
		bat:    newHostBattery(cfg, logger),
	}
}

func newHostBattery(cfg HostConfig, logger Logger) Battery {
	if cfg.BatterySource == BatterySourceSim {
		return newSimBattery(100, cfg.SimInterval)
	}
	b, err := newUPowerBattery()
	if err != nil {
		logger.WriteLineString(fmt.Sprintf("battery: upower unavailable: %v (using simulated battery)", err))
		return newSimBattery(100, cfg.SimInterval)
	}
	return b
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Battery() Battery { return h.bat }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
