//go:build !tinygo

package hal

import (
	"fmt"
	"math"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	upowerDest          = "org.freedesktop.UPower"
	upowerDeviceIface   = "org.freedesktop.UPower.Device"
	upowerDisplayDevice = dbus.ObjectPath("/org/freedesktop/UPower/devices/DisplayDevice")
	dbusPropertiesIface = "org.freedesktop.DBus.Properties"
)

// UPower device states.
const (
	upowerStateCharging      uint32 = 1
	upowerStateDischarging   uint32 = 2
	upowerStateFullyCharged  uint32 = 4
	upowerStatePendingCharge uint32 = 5
)

// upowerBattery reads the aggregate "display device" that desktop panels use.
type upowerBattery struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	signals chan *dbus.Signal
	ch      chan BatterySample

	closeOnce sync.Once
}

func newUPowerBattery() (*upowerBattery, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}

	b := &upowerBattery{
		conn:    conn,
		obj:     conn.Object(upowerDest, upowerDisplayDevice),
		signals: make(chan *dbus.Signal, 10),
		ch:      make(chan BatterySample, 4),
	}

	// A desktop without a battery still exposes DisplayDevice with
	// IsPresent=false; treat it like a missing service.
	present, err := b.property("IsPresent")
	if err != nil {
		conn.Close()
		return nil, err
	}
	if ok, _ := present.Value().(bool); !ok {
		conn.Close()
		return nil, ErrBatteryUnavailable
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(upowerDisplayDevice),
		dbus.WithMatchInterface(dbusPropertiesIface),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("match upower signals: %w", err)
	}
	conn.Signal(b.signals)

	go b.run()
	return b, nil
}

func (b *upowerBattery) Peek() (BatterySample, error) {
	pct, err := b.property("Percentage")
	if err != nil {
		return BatterySample{}, err
	}
	state, err := b.property("State")
	if err != nil {
		return BatterySample{}, err
	}
	percent, ok := pct.Value().(float64)
	if !ok {
		return BatterySample{}, fmt.Errorf("upower Percentage: unexpected type %s", pct.Signature())
	}
	st, _ := state.Value().(uint32)
	return upowerSample(percent, st), nil
}

func (b *upowerBattery) Changes() <-chan BatterySample { return b.ch }

// Close drops the bus connection, which also closes the signal channel and
// ends run.
func (b *upowerBattery) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = b.conn.Close()
	})
	return err
}

func (b *upowerBattery) property(name string) (dbus.Variant, error) {
	v, err := b.obj.GetProperty(upowerDeviceIface + "." + name)
	if err != nil {
		return dbus.Variant{}, fmt.Errorf("upower %s: %w", name, err)
	}
	return v, nil
}

// run re-reads the device on every PropertiesChanged signal. The signal body
// only carries the changed subset, so a full Peek keeps Percent and State
// consistent.
func (b *upowerBattery) run() {
	for sig := range b.signals {
		if sig == nil || sig.Name != dbusPropertiesIface+".PropertiesChanged" {
			continue
		}
		s, err := b.Peek()
		if err != nil {
			continue
		}
		select {
		case b.ch <- s:
		default:
		}
	}
}

func upowerSample(percent float64, state uint32) BatterySample {
	if math.IsNaN(percent) || percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	charging := state == upowerStateCharging || state == upowerStatePendingCharge
	return BatterySample{
		Percent:  uint8(math.Floor(percent)),
		Charging: charging,
		Plugged:  charging || state == upowerStateFullyCharged,
	}
}
