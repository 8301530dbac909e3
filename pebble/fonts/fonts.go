// Package fonts maps build-time resource identifiers to tinyfont faces and
// tracks which ones are loaded.
package fonts

import (
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// ResourceID identifies an embedded font resource.
type ResourceID uint16

const (
	ResourceHour24 ResourceID = iota + 1
	ResourceMin16
)

func (id ResourceID) String() string {
	switch id {
	case ResourceHour24:
		return "HOUR_24"
	case ResourceMin16:
		return "MIN_16"
	default:
		return fmt.Sprintf("resource(%d)", uint16(id))
	}
}

var (
	ErrUnknownResource = errors.New("unknown font resource")
	ErrNotLoaded       = errors.New("font not loaded")
)

var resources = map[ResourceID]tinyfont.Fonter{
	ResourceHour24: &freemono.Bold9pt7b,
	ResourceMin16:  &freemono.Regular9pt7b,
}

// Font is a loaded custom font. It is valid until Unload.
type Font struct {
	id     ResourceID
	face   tinyfont.Fonter
	loaded bool
}

var (
	mu     sync.Mutex
	loaded int
)

// Load returns a handle for the resource. Every successful Load must be
// paired with exactly one Unload.
func Load(id ResourceID) (*Font, error) {
	face, ok := resources[id]
	if !ok {
		return nil, fmt.Errorf("load %s: %w", id, ErrUnknownResource)
	}
	mu.Lock()
	loaded++
	mu.Unlock()
	return &Font{id: id, face: face, loaded: true}, nil
}

// Unload releases f. Unloading nil or an already released font is an error.
func Unload(f *Font) error {
	if f == nil {
		return ErrNotLoaded
	}
	mu.Lock()
	defer mu.Unlock()
	if !f.loaded {
		return fmt.Errorf("unload %s: %w", f.id, ErrNotLoaded)
	}
	f.loaded = false
	loaded--
	return nil
}

// Loaded returns the number of fonts currently loaded.
func Loaded() int {
	mu.Lock()
	defer mu.Unlock()
	return loaded
}

func (f *Font) ID() ResourceID { return f.id }

// Face returns the tinyfont face, or nil once the font is unloaded.
func (f *Font) Face() tinyfont.Fonter {
	if f == nil {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	if !f.loaded {
		return nil
	}
	return f.face
}

// System is the always-available fallback face used for diagnostics.
func System() tinyfont.Fonter {
	return &proggy.TinySZ8pt7b
}
