//go:build !tinygo

package hal

import "time"

const hostTickDur = time.Millisecond

// hostTime converts runner frames into a 1ms tick stream.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// advance emits one tick per elapsed millisecond since the previous call.
// The first call emits a single tick so the loop runs immediately.
func (t *hostTime) advance(now time.Time) {
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.emit(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / hostTickDur)
	if ticks == 0 {
		return
	}
	t.acc %= hostTickDur
	t.emit(ticks)
}

func (t *hostTime) emit(n uint64) {
	// Only the latest sequence number matters to consumers.
	t.seq += n
	select {
	case t.ch <- t.seq:
	default:
	}
}
