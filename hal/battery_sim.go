package hal

import (
	"io"
	"sync"
	"time"
)

// simBattery drains one percent per interval and starts "charging" back to
// full once it reaches zero, so a long-running host session exercises the
// whole indicator range.
type simBattery struct {
	mu       sync.Mutex
	percent  uint8
	charging bool

	ch   chan BatterySample
	done chan struct{}
	once sync.Once
}

// newSimBattery starts a simulated battery. interval <= 0 disables draining.
func newSimBattery(start uint8, interval time.Duration) *simBattery {
	if start > 100 {
		start = 100
	}
	b := &simBattery{
		percent: start,
		ch:      make(chan BatterySample, 4),
		done:    make(chan struct{}),
	}
	if interval > 0 {
		go b.run(interval)
	}
	return b
}

func (b *simBattery) Peek() (BatterySample, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sampleLocked(), nil
}

func (b *simBattery) Changes() <-chan BatterySample { return b.ch }

func (b *simBattery) Close() error {
	b.once.Do(func() { close(b.done) })
	return nil
}

func (b *simBattery) run(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			b.publish(b.advance())
		}
	}
}

func (b *simBattery) advance() BatterySample {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.charging && b.percent >= 100:
		b.charging = false
		b.percent--
	case b.charging:
		b.percent++
	case b.percent == 0:
		b.charging = true
	default:
		b.percent--
	}
	return b.sampleLocked()
}

func (b *simBattery) sampleLocked() BatterySample {
	return BatterySample{Percent: b.percent, Charging: b.charging, Plugged: b.charging}
}

func (b *simBattery) publish(s BatterySample) {
	select {
	case b.ch <- s:
	default:
	}
}

func closeBattery(b Battery) {
	if c, ok := b.(io.Closer); ok {
		_ = c.Close()
	}
}
