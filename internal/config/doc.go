// Package config loads the host-side watchface configuration.
//
// The file is TOML and optional. Load resolves the path (default
// ~/.config/watchface/config.toml, with tilde expansion) and falls back to
// Default for a missing file or for any key that is absent or empty.
//
// Example:
//
//	[display]
//	width = 144
//	height = 168
//
//	[window]
//	scale = 3
//
//	[battery]
//	source = "sim"        # "upower" (default) or "sim"
//	sim_interval = "5s"
//
//	[date]
//	ordinals = "english"  # "last-digit" (default) renders 11st, 12nd, 13rd
//
// Load returns an error for unreadable files, TOML syntax errors, an unknown
// battery source and a non-positive or malformed sim_interval. The ordinals
// value is validated by the face package when the app starts.
package config
