//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow needs ebiten, which needs cgo on desktop platforms. Use -headless
// instead.
func RunWindow(HostConfig, func(HAL) App) error {
	return errors.New("window mode requires cgo (rebuild with CGO_ENABLED=1 or run with -headless)")
}
