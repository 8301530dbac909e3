package app

import (
	"io"
	"time"

	"watchface/face"

	"github.com/goccy/go-json"
)

// frameReport is one rendered frame as seen by an outside observer.
type frameReport struct {
	Frame   uint64    `json:"frame"`
	At      time.Time `json:"at"`
	Time    string    `json:"time"`
	Date    string    `json:"date"`
	Battery int       `json:"battery"`
}

// reporter writes a JSON line per frame, for headless runs piped into other
// tools. Write errors disable it; the watchface keeps running.
type reporter struct {
	enc  *json.Encoder
	face *face.Face
	now  func() time.Time
	off  bool
}

func newReporter(w io.Writer, f *face.Face) *reporter {
	return &reporter{enc: json.NewEncoder(w), face: f, now: time.Now}
}

func (r *reporter) frame(n uint64) {
	if r.off {
		return
	}
	err := r.enc.Encode(frameReport{
		Frame:   n,
		At:      r.now().UTC(),
		Time:    r.face.TimeText(),
		Date:    r.face.DateText(),
		Battery: r.face.BatteryLevel(),
	})
	if err != nil {
		r.off = true
	}
}
