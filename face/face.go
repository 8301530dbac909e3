// Package face is the watchface: the time and date text layers, the battery
// bar, and the window lifecycle that creates and releases them.
package face

import (
	"errors"
	"fmt"
	"time"

	"watchface/hal"
	"watchface/pebble/battery"
	"watchface/pebble/fonts"
	"watchface/pebble/gfx"
	"watchface/pebble/tick"
	"watchface/pebble/ui"
)

var ErrAlreadyLoaded = errors.New("face: already initialized")

// Deps are the toolkit services the face runs against.
type Deps struct {
	Stack   *ui.Stack
	Ticks   *tick.Service
	Battery *battery.Service
	Logger  hal.Logger
	// Suffix picks the date ordinal rule; nil means LastDigitSuffix.
	Suffix Suffixer
	// TimeFont and DateFont default to ResourceHour24 and ResourceMin16.
	TimeFont fonts.ResourceID
	DateFont fonts.ResourceID
}

// Face owns every resource of the watchface. All methods and callbacks run on
// the event loop goroutine.
type Face struct {
	deps Deps

	window    *ui.Window
	timeLayer *ui.TextLayer
	dateLayer *ui.TextLayer
	barLayer  *ui.Layer
	timeFont  *fonts.Font
	dateFont  *fonts.Font

	batteryLevel int

	timeBuf [timeBufLen]byte
	dateBuf [dateBufLen]byte

	loadErr error

	// released, if set, is called after each resource unload frees.
	released func(what string)
}

func New(deps Deps) *Face {
	if deps.Suffix == nil {
		deps.Suffix = LastDigitSuffix
	}
	if deps.TimeFont == 0 {
		deps.TimeFont = fonts.ResourceHour24
	}
	if deps.DateFont == 0 {
		deps.DateFont = fonts.ResourceMin16
	}
	return &Face{deps: deps}
}

// Init creates the window, pushes it (which builds the layers), draws the
// current time and subscribes to tick and battery notifications.
func (f *Face) Init() error {
	if f.window != nil {
		return ErrAlreadyLoaded
	}
	w, err := ui.NewWindow()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	f.window = w

	w.SetBackgroundColor(gfx.ColorWhite)
	w.SetHandlers(ui.WindowHandlers{
		Load:   f.load,
		Unload: f.unload,
	})
	if err := f.deps.Stack.Push(w); err != nil {
		f.teardown()
		return fmt.Errorf("push window: %w", err)
	}
	if f.loadErr != nil {
		err := f.loadErr
		f.loadErr = nil
		f.teardown()
		return err
	}

	f.updateTime(f.deps.Ticks.Now())
	f.deps.Ticks.Subscribe(tick.SecondUnit, f.onTick)
	f.deps.Battery.Subscribe(f.onBattery)

	state, err := f.deps.Battery.Peek()
	if err != nil {
		f.logf("face: battery peek: %v", err)
	}
	f.onBattery(state)
	return nil
}

// Deinit unsubscribes first so no callback can reach a released resource,
// then destroys the window, which unloads the layers and fonts.
func (f *Face) Deinit() error {
	f.deps.Ticks.Unsubscribe()
	f.deps.Battery.Unsubscribe()
	if f.window == nil {
		return nil
	}
	err := f.window.Destroy()
	f.window = nil
	return err
}

// Window returns the face window, nil before Init and after Deinit.
func (f *Face) Window() *ui.Window { return f.window }

// TimeText and DateText return what the text layers currently show.
func (f *Face) TimeText() string {
	if f.timeLayer == nil {
		return ""
	}
	return f.timeLayer.Text()
}

func (f *Face) DateText() string {
	if f.dateLayer == nil {
		return ""
	}
	return f.dateLayer.Text()
}

func (f *Face) BatteryLevel() int { return f.batteryLevel }

func (f *Face) load(w *ui.Window) {
	root := w.RootLayer()
	bounds := root.Bounds()
	width, height := bounds.Size.W, bounds.Size.H

	var err error
	f.timeLayer, err = ui.NewTextLayer(gfx.R(0, height/2-40, width, 48))
	if err != nil {
		f.fail(fmt.Errorf("create time layer: %w", err))
		return
	}
	f.dateLayer, err = ui.NewTextLayer(gfx.R(0, height/2+20, width, 20))
	if err != nil {
		f.fail(fmt.Errorf("create date layer: %w", err))
		return
	}

	setupText(f.timeLayer, "0")
	setupText(f.dateLayer, "00")

	f.timeFont, err = fonts.Load(f.deps.TimeFont)
	if err != nil {
		f.fail(err)
		return
	}
	f.dateFont, err = fonts.Load(f.deps.DateFont)
	if err != nil {
		f.fail(err)
		return
	}
	f.timeLayer.SetFont(f.timeFont.Face())
	f.dateLayer.SetFont(f.dateFont.Face())

	if err := root.AddChild(f.timeLayer.Layer()); err != nil {
		f.fail(err)
		return
	}
	if err := root.AddChild(f.dateLayer.Layer()); err != nil {
		f.fail(err)
		return
	}

	f.barLayer, err = ui.NewLayer(gfx.R(width/3, height-20, width/3, 5))
	if err != nil {
		f.fail(fmt.Errorf("create battery layer: %w", err))
		return
	}
	f.barLayer.SetUpdateProc(f.batteryUpdateProc)
	if err := root.AddChild(f.barLayer); err != nil {
		f.fail(err)
	}
}

func setupText(t *ui.TextLayer, placeholder string) {
	t.SetBackgroundColor(gfx.ColorClear)
	t.SetTextColor(gfx.ColorBlack)
	t.SetText(placeholder)
	t.SetTextAlignment(gfx.AlignCenter)
}

// unload releases the text layers, then the fonts they referenced, then the
// battery layer. Anything a failed load never created is skipped.
func (f *Face) unload(*ui.Window) {
	f.destroyText("time layer", f.timeLayer)
	f.destroyText("date layer", f.dateLayer)
	f.timeLayer, f.dateLayer = nil, nil

	f.unloadFont("time font", f.timeFont)
	f.unloadFont("date font", f.dateFont)
	f.timeFont, f.dateFont = nil, nil

	if f.barLayer != nil {
		if err := f.barLayer.Destroy(); err != nil {
			f.logf("face: destroy battery layer: %v", err)
		}
		f.barLayer = nil
		f.release("battery layer")
	}
}

func (f *Face) destroyText(what string, t *ui.TextLayer) {
	if t == nil {
		return
	}
	if err := t.Destroy(); err != nil {
		f.logf("face: destroy %s: %v", what, err)
	}
	f.release(what)
}

func (f *Face) unloadFont(what string, font *fonts.Font) {
	if font == nil {
		return
	}
	if err := fonts.Unload(font); err != nil {
		f.logf("face: %s: %v", what, err)
	}
	f.release(what)
}

func (f *Face) release(what string) {
	if f.released != nil {
		f.released(what)
	}
}

// fail records the first load failure; Init reports it.
func (f *Face) fail(err error) {
	if f.loadErr == nil {
		f.loadErr = fmt.Errorf("load window: %w", err)
	}
}

// teardown destroys a partially initialized face.
func (f *Face) teardown() {
	if f.window != nil {
		if err := f.window.Destroy(); err != nil {
			f.logf("face: destroy window: %v", err)
		}
		f.window = nil
	}
}

func (f *Face) onTick(now time.Time, _ tick.TimeUnits) {
	f.updateTime(now)
}

func (f *Face) updateTime(now time.Time) {
	if f.timeLayer == nil || f.dateLayer == nil {
		return
	}
	ts := AppendTime(f.timeBuf[:0], now)
	ds := AppendDate(f.dateBuf[:0], now, f.deps.Suffix)
	f.timeLayer.SetText(string(ts))
	f.dateLayer.SetText(string(ds))
}

func (f *Face) onBattery(state battery.ChargeState) {
	f.batteryLevel = int(state.ChargePercent)
	if f.barLayer != nil {
		f.barLayer.MarkDirty()
	}
}

func (f *Face) logf(format string, args ...any) {
	if f.deps.Logger == nil {
		return
	}
	f.deps.Logger.WriteLineString(fmt.Sprintf(format, args...))
}
