//go:build !tinygo

package hal

// stepper drives an App until its first Step error, then stops stepping and
// keeps that error. The framebuffer is left holding whatever the app drew
// last, which for a failed app is its diagnostic screen.
type stepper struct {
	app App
	err error
}

func (s *stepper) step() {
	if s.err != nil {
		return
	}
	s.err = s.app.Step()
}

func (s *stepper) failed() bool { return s.err != nil }
