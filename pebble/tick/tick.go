// Package tick delivers wall-clock tick notifications to subscribers.
package tick

import "time"

// TimeUnits is a bitmask of calendar fields.
type TimeUnits uint8

const (
	SecondUnit TimeUnits = 1 << iota
	MinuteUnit
	HourUnit
	DayUnit
	MonthUnit
	YearUnit
)

func (u TimeUnits) Has(o TimeUnits) bool { return u&o != 0 }

// Handler receives the current local time and the units that changed since
// the previous notification.
type Handler func(now time.Time, changed TimeUnits)

// Clock is the wall-clock source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the local wall clock.
var SystemClock Clock = systemClock{}

// Service fires the subscribed handler when a watched unit of the wall clock
// changes. It is polled by the event loop and never calls the handler from
// any other goroutine.
type Service struct {
	clock   Clock
	units   TimeUnits
	handler Handler
	last    time.Time
}

// New returns a service reading clock (SystemClock if nil).
func New(clock Clock) *Service {
	if clock == nil {
		clock = SystemClock
	}
	return &Service{clock: clock}
}

// Subscribe replaces any existing subscription. The first notification comes
// at the next change of a unit in units, not immediately.
func (s *Service) Subscribe(units TimeUnits, h Handler) {
	s.units = units
	s.handler = h
	s.last = s.clock.Now()
}

func (s *Service) Unsubscribe() {
	s.units = 0
	s.handler = nil
}

func (s *Service) Subscribed() bool { return s.handler != nil }

// Now reads the service clock.
func (s *Service) Now() time.Time { return s.clock.Now() }

// Poll compares the clock with the previous observation and notifies the
// subscriber if a watched unit changed.
func (s *Service) Poll() {
	if s.handler == nil {
		return
	}
	now := s.clock.Now()
	changed := Changed(s.last, now)
	if changed == 0 {
		return
	}
	s.last = now
	if changed&s.units == 0 {
		return
	}
	s.handler(now, changed)
}

// Changed returns the units that differ between prev and now, cascading
// downwards: a new minute also reports a new second, a new day also reports
// new hour, minute and second, and so on.
func Changed(prev, now time.Time) TimeUnits {
	py, pmo, pd := prev.Date()
	ny, nmo, nd := now.Date()
	ph, pm, ps := prev.Clock()
	nh, nm, ns := now.Clock()

	var u TimeUnits
	switch {
	case py != ny:
		u = YearUnit | MonthUnit | DayUnit | HourUnit | MinuteUnit | SecondUnit
	case pmo != nmo:
		u = MonthUnit | DayUnit | HourUnit | MinuteUnit | SecondUnit
	case pd != nd:
		u = DayUnit | HourUnit | MinuteUnit | SecondUnit
	case ph != nh:
		u = HourUnit | MinuteUnit | SecondUnit
	case pm != nm:
		u = MinuteUnit | SecondUnit
	case ps != ns:
		u = SecondUnit
	}
	return u
}
