//go:build tinygo

package hal

import "time"

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

// tinyGoTime publishes the milliseconds elapsed since boot every period. The
// sequence is derived from the monotonic clock, so a slow consumer sees the
// true elapsed time rather than a count of delivered ticks.
type tinyGoTime struct {
	ch    chan uint64
	start time.Time
}

func newTinyGoTime() *tinyGoTime {
	return newTinyGoTimeEvery(10 * time.Millisecond)
}

func newTinyGoTimeEvery(period time.Duration) *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 1), start: time.Now()}
	go t.run(period)
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

func (t *tinyGoTime) run(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for now := range ticker.C {
		seq := uint64(now.Sub(t.start) / time.Millisecond)
		select {
		case t.ch <- seq:
		default:
			// Replace a stale value with the newest one.
			select {
			case <-t.ch:
			default:
			}
			select {
			case t.ch <- seq:
			default:
			}
		}
	}
}
