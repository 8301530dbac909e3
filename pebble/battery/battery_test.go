package battery

import (
	"errors"
	"testing"

	"watchface/hal"
)

type fakeSource struct {
	sample hal.BatterySample
	err    error
	ch     chan hal.BatterySample
}

func newFakeSource(percent uint8) *fakeSource {
	return &fakeSource{
		sample: hal.BatterySample{Percent: percent},
		ch:     make(chan hal.BatterySample, 8),
	}
}

func (s *fakeSource) Peek() (hal.BatterySample, error)  { return s.sample, s.err }
func (s *fakeSource) Changes() <-chan hal.BatterySample { return s.ch }

func TestPeek(t *testing.T) {
	src := newFakeSource(42)
	src.sample.Charging = true
	s := New(src)

	got, err := s.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	want := ChargeState{ChargePercent: 42, IsCharging: true}
	if got != want {
		t.Fatalf("Peek = %+v, want %+v", got, want)
	}
}

func TestPeekClampsPercent(t *testing.T) {
	s := New(newFakeSource(180))
	got, err := s.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if got.ChargePercent != 100 {
		t.Fatalf("ChargePercent = %d, want 100", got.ChargePercent)
	}
}

func TestPeekErrorKeepsLastState(t *testing.T) {
	src := newFakeSource(42)
	s := New(src)
	if _, err := s.Peek(); err != nil {
		t.Fatalf("Peek: %v", err)
	}

	src.err = hal.ErrBatteryUnavailable
	got, err := s.Peek()
	if !errors.Is(err, hal.ErrBatteryUnavailable) {
		t.Fatalf("Peek err = %v, want ErrBatteryUnavailable", err)
	}
	if got.ChargePercent != 42 {
		t.Fatalf("ChargePercent = %d, want 42", got.ChargePercent)
	}
}

func TestPeekWithoutSource(t *testing.T) {
	s := New(nil)
	if _, err := s.Peek(); !errors.Is(err, hal.ErrBatteryUnavailable) {
		t.Fatalf("Peek err = %v, want ErrBatteryUnavailable", err)
	}
	s.Poll()
}

func TestPollDeliversNewestChange(t *testing.T) {
	src := newFakeSource(80)
	s := New(src)

	var got []ChargeState
	s.Subscribe(func(c ChargeState) { got = append(got, c) })

	src.ch <- hal.BatterySample{Percent: 79}
	src.ch <- hal.BatterySample{Percent: 78}
	s.Poll()
	if len(got) != 1 || got[0].ChargePercent != 78 {
		t.Fatalf("notifications = %+v, want one at 78%%", got)
	}

	src.ch <- hal.BatterySample{Percent: 78}
	s.Poll()
	if len(got) != 1 {
		t.Fatalf("notifications = %d, want 1 after duplicate sample", len(got))
	}

	src.ch <- hal.BatterySample{Percent: 78, Plugged: true}
	s.Poll()
	if len(got) != 2 || !got[1].IsPlugged {
		t.Fatalf("notifications = %+v, want plug change reported", got)
	}
}

func TestPollAfterUnsubscribe(t *testing.T) {
	src := newFakeSource(80)
	s := New(src)

	calls := 0
	s.Subscribe(func(ChargeState) { calls++ })
	s.Unsubscribe()
	if s.Subscribed() {
		t.Fatal("expected unsubscribed")
	}
	src.ch <- hal.BatterySample{Percent: 10}
	s.Poll()
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}
