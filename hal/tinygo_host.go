//go:build tinygo && !baremetal

package hal

import "time"

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	fb     *RAMFramebuffer
	t      *tinyGoTime
	bat    *simBattery
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU pin mapping.
func New() HAL {
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		fb:     NewRAMFramebuffer(144, 168),
		t:      newTinyGoTime(),
		bat:    newSimBattery(100, time.Minute),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Time() Time       { return h.t }
func (h *tinyGoHostHAL) Battery() Battery { return h.bat }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
