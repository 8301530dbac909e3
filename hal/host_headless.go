//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	// Frames stops the runner after N frames (0 = run until ctx is done).
	Frames uint64
}

// RunHeadless runs the watch without opening a window.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, host HostConfig, newApp func(HAL) App) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}

	h := New(host).(*hostHAL)
	defer closeBattery(h.bat)
	app := newApp(h)
	defer func() {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			h.t.advance(now)
			if err := app.Step(); err != nil {
				return err
			}
			frame++
			if cfg.Frames > 0 && frame >= cfg.Frames {
				return nil
			}
		}
	}
}
