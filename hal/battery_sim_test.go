package hal

import (
	"testing"
	"time"
)

func TestSimBatteryDrainsThenCharges(t *testing.T) {
	b := newSimBattery(2, 0)
	defer b.Close()

	want := []BatterySample{
		{Percent: 1},
		{Percent: 0},
		{Percent: 0, Charging: true, Plugged: true},
		{Percent: 1, Charging: true, Plugged: true},
	}
	for i, w := range want {
		if got := b.advance(); got != w {
			t.Fatalf("advance %d = %+v, want %+v", i, got, w)
		}
	}
	s, err := b.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if s != want[len(want)-1] {
		t.Fatalf("Peek = %+v, want %+v", s, want[len(want)-1])
	}
}

func TestSimBatteryStopsChargingAtFull(t *testing.T) {
	b := newSimBattery(100, 0)
	defer b.Close()
	b.charging = true

	if got := b.advance(); got != (BatterySample{Percent: 99}) {
		t.Fatalf("advance = %+v, want discharging at 99", got)
	}
}

func TestSimBatteryClampsStart(t *testing.T) {
	b := newSimBattery(250, 0)
	defer b.Close()
	if s, _ := b.Peek(); s.Percent != 100 {
		t.Fatalf("Percent = %d, want 100", s.Percent)
	}
}

func TestSimBatteryPublishes(t *testing.T) {
	b := newSimBattery(50, time.Millisecond)
	defer closeBattery(b)

	select {
	case s := <-b.Changes():
		if s.Percent >= 50 {
			t.Fatalf("Percent = %d, want below 50", s.Percent)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no sample published")
	}
}

func TestSimBatteryPublishDoesNotBlock(t *testing.T) {
	b := newSimBattery(50, 0)
	defer b.Close()
	for i := 0; i < cap(b.ch)+3; i++ {
		b.publish(b.advance())
	}
	if len(b.ch) != cap(b.ch) {
		t.Fatalf("queued = %d, want %d", len(b.ch), cap(b.ch))
	}
}

func TestRAMFramebufferClear(t *testing.T) {
	fb := NewRAMFramebuffer(3, 2)
	fb.ClearRGB(0xFF, 0, 0)
	p, ok := PixelAt(fb, 2, 1)
	if !ok || p != RGB565(0xFF, 0, 0) {
		t.Fatalf("PixelAt = %#04x, %v, want red", p, ok)
	}
	if _, ok := PixelAt(fb, 3, 0); ok {
		t.Fatal("expected out of range")
	}
	if r, g, b := RGB888From565(p); r != 0xFF || g != 0 || b != 0 {
		t.Fatalf("RGB888From565 = %d,%d,%d, want 255,0,0", r, g, b)
	}
}
