package application

import "errors"

var (
	// ErrNotLoaded is returned when commands run before the meeting book is loaded.
	ErrNotLoaded = errors.New("application: meeting book not loaded")
	// ErrSaveFailed is returned when a command succeeded but its changes could not be stored.
	ErrSaveFailed = errors.New("application: failed to save changes")
)
