package formrules

import "errors"

var (
	ErrUnknownPreset  = errors.New("unknown rules preset")
	ErrInvalidPresets = errors.New("invalid rules presets")
	ErrReadingPresets = errors.New("failed to read rules presets")

	// ErrWatcherRunning is returned by Watcher.Run when it is already running.
	ErrWatcherRunning = errors.New("presets watcher already running")
)
