//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"watchface/app"
	"watchface/hal"
	"watchface/internal/buildinfo"
	"watchface/internal/config"
)

func main() {
	var headless hal.HeadlessConfig
	var configPath string
	var report bool
	var version bool
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 30, "Frame rate in headless mode.")
	flag.Uint64Var(&headless.Frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "", "Config file (default ~/.config/watchface/config.toml).")
	flag.BoolVar(&report, "report", false, "Write one JSON line per rendered frame to stdout.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	host := hal.HostConfig{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Scale:         cfg.Scale,
		BatterySource: cfg.BatterySource,
		SimInterval:   cfg.SimInterval,
	}
	appCfg := app.Config{Ordinals: cfg.Ordinals}
	if report {
		appCfg.Report = os.Stdout
	}
	newApp := func(h hal.HAL) hal.App {
		return app.NewWithConfig(h, appCfg)
	}

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, headless, host, newApp); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(host, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
