// Package battery exposes the power subsystem as a peekable state plus a
// change notification.
package battery

import (
	"fmt"

	"watchface/hal"
)

// ChargeState is the battery state as seen by apps.
type ChargeState struct {
	ChargePercent uint8
	IsCharging    bool
	IsPlugged     bool
}

func fromSample(s hal.BatterySample) ChargeState {
	p := s.Percent
	if p > 100 {
		p = 100
	}
	return ChargeState{ChargePercent: p, IsCharging: s.Charging, IsPlugged: s.Plugged}
}

// Handler receives a new charge state.
type Handler func(ChargeState)

// Service polls a hal.Battery from the event loop and notifies on change.
type Service struct {
	src     hal.Battery
	handler Handler

	last ChargeState
	have bool
}

func New(src hal.Battery) *Service {
	return &Service{src: src}
}

// Peek reads the current state synchronously. When the source fails the last
// known state is returned together with the error.
func (s *Service) Peek() (ChargeState, error) {
	if s.src == nil {
		return s.last, hal.ErrBatteryUnavailable
	}
	sample, err := s.src.Peek()
	if err != nil {
		return s.last, fmt.Errorf("battery peek: %w", err)
	}
	s.last = fromSample(sample)
	s.have = true
	return s.last, nil
}

// Subscribe replaces any existing subscription.
func (s *Service) Subscribe(h Handler) { s.handler = h }

func (s *Service) Unsubscribe() { s.handler = nil }

func (s *Service) Subscribed() bool { return s.handler != nil }

// Poll drains pending samples and calls the handler once with the newest one
// if it differs from the last state seen.
func (s *Service) Poll() {
	if s.src == nil {
		return
	}
	ch := s.src.Changes()
	if ch == nil {
		return
	}
	var (
		latest hal.BatterySample
		got    bool
	)
	for drained := false; !drained; {
		select {
		case sample := <-ch:
			latest = sample
			got = true
		default:
			drained = true
		}
	}
	if !got {
		return
	}
	state := fromSample(latest)
	if s.have && state == s.last {
		return
	}
	s.last = state
	s.have = true
	if s.handler != nil {
		s.handler(state)
	}
}
