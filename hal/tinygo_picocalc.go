//go:build tinygo && baremetal && picocalc

package hal

import (
	"machine"
	"time"
)

const (
	watchWidth  = 144
	watchHeight = 168
)

type picoCalcHAL struct {
	logger *uartLogger
	fb     Framebuffer
	t      *tinyGoTime
	bat    Battery
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// The watch screen is drawn centered on the 320x320 panel. Battery state
// comes from the keyboard controller.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	var fb Framebuffer
	if panel, err := newPanelFramebuffer(watchWidth, watchHeight); err == nil {
		fb = panel
	} else {
		logger.WriteLineString("display: " + err.Error())
		fb = NewRAMFramebuffer(watchWidth, watchHeight)
	}

	var bat Battery
	if b, err := newPicoCalcBattery(5 * time.Second); err == nil {
		bat = b
	} else {
		logger.WriteLineString("battery: " + err.Error())
		bat = missingBattery{}
	}

	return &picoCalcHAL{
		logger: logger,
		fb:     fb,
		t:      newTinyGoTime(),
		bat:    bat,
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Time() Time       { return h.t }
func (h *picoCalcHAL) Battery() Battery { return h.bat }

type missingBattery struct{}

func (missingBattery) Peek() (BatterySample, error)  { return BatterySample{}, ErrBatteryUnavailable }
func (missingBattery) Changes() <-chan BatterySample { return nil }

// panelFramebuffer renders into RAM and blits the whole buffer to a window
// in the middle of the panel on Present.
type panelFramebuffer struct {
	*RAMFramebuffer
	lcd    *ili9488
	x0, y0 int
}

func newPanelFramebuffer(w, h int) (*panelFramebuffer, error) {
	lcd, err := initILI9488()
	if err != nil {
		return nil, err
	}
	lcd.fill(0x0000)
	return &panelFramebuffer{
		RAMFramebuffer: NewRAMFramebuffer(w, h),
		lcd:            lcd,
		x0:             (ili9488Width - w) / 2,
		y0:             (ili9488Height - h) / 2,
	}, nil
}

func (f *panelFramebuffer) Present() error {
	return f.lcd.blitRGB565LittleEndian(f.Buffer(), f.x0, f.y0, f.Width(), f.Height())
}
