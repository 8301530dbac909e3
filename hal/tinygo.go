//go:build tinygo && baremetal && !picocalc

package hal

import (
	"machine"
	"sync"
	"time"
)

type tinyGoHAL struct {
	logger *uartLogger
	fb     Framebuffer
	t      *tinyGoTime
	bat    *adcBattery
}

// New returns a HAL for a bare Pico board with no panel attached.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Battery: VSYS/3 on ADC3 (GP29).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		fb:     NewRAMFramebuffer(144, 168),
		t:      newTinyGoTime(),
		bat:    newADCBattery(machine.ADC3, 10*time.Second),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Battery() Battery { return h.bat }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

const (
	vsysEmptyMillivolts = 3000
	vsysFullMillivolts  = 4200
)

// adcBattery polls the VSYS divider and maps a Li-ion discharge range linearly
// onto 0-100%.
type adcBattery struct {
	adc machine.ADC

	mu   sync.Mutex
	last BatterySample
	ch   chan BatterySample
}

func newADCBattery(pin machine.Pin, every time.Duration) *adcBattery {
	machine.InitADC()
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})

	b := &adcBattery{adc: adc, ch: make(chan BatterySample, 2)}
	b.last = b.read()
	go b.poll(every)
	return b
}

func (b *adcBattery) Peek() (BatterySample, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, nil
}

func (b *adcBattery) Changes() <-chan BatterySample { return b.ch }

func (b *adcBattery) poll(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		s := b.read()
		b.mu.Lock()
		changed := s != b.last
		b.last = s
		b.mu.Unlock()
		if !changed {
			continue
		}
		select {
		case b.ch <- s:
		default:
		}
	}
}

func (b *adcBattery) read() BatterySample {
	// 16-bit reading of VSYS/3 against a 3.3V reference.
	mv := int(b.adc.Get()) * 3300 * 3 / 65535
	return BatterySample{Percent: percentFromMillivolts(mv)}
}

func percentFromMillivolts(mv int) uint8 {
	if mv <= vsysEmptyMillivolts {
		return 0
	}
	if mv >= vsysFullMillivolts {
		return 100
	}
	return uint8((mv - vsysEmptyMillivolts) * 100 / (vsysFullMillivolts - vsysEmptyMillivolts))
}
