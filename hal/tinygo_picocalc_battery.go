//go:build tinygo && baremetal && picocalc

package hal

import (
	"fmt"
	"machine"
	"sync"
	"time"
)

// The keyboard controller on the PicoCalc also reports the battery.
const (
	picoCalcCtrlAddr uint16 = 0x1F
	picoCalcRegBat   byte   = 0x0B

	picoCalcBatCharging = 0x80
)

type picoCalcBattery struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte

	mu   sync.Mutex
	last BatterySample
	ch   chan BatterySample
}

func newPicoCalcBattery(every time.Duration) (*picoCalcBattery, error) {
	write := [1]byte{picoCalcRegBat}

	// Prefer I2C1 (stock PicoCalc wiring), but some TinyGo targets expose only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			b := &picoCalcBattery{i2c: bus, write: write, ch: make(chan BatterySample, 2)}

			// The controller can be slow to answer right after power-on.
			const probeTries = 50
			for i := 0; i < probeTries; i++ {
				if s, ok := b.readSample(); ok {
					b.last = s
					go b.poll(every)
					return b, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	return nil, fmt.Errorf("keyboard controller: I2C unavailable")
}

func (b *picoCalcBattery) Peek() (BatterySample, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, nil
}

func (b *picoCalcBattery) Changes() <-chan BatterySample { return b.ch }

func (b *picoCalcBattery) poll(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		s, ok := b.readSample()
		if !ok {
			continue
		}
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

// readSample reads the battery register: the second byte carries the charge
// percentage in its low seven bits and the charging flag in the top bit.
func (b *picoCalcBattery) readSample() (BatterySample, bool) {
	if err := b.i2c.Tx(picoCalcCtrlAddr, b.write[:], b.read[:]); err != nil {
		return BatterySample{}, false
	}
	v := b.read[1]
	percent := v &^ picoCalcBatCharging
	if percent > 100 {
		percent = 100
	}
	charging := v&picoCalcBatCharging != 0
	return BatterySample{Percent: percent, Charging: charging, Plugged: charging}, true
}
