package constants

import "errors"

// Configuration errors.
var (
	ErrConfigPathRequired = errors.New("config file path is required")
	ErrNoConsoleURL       = errors.New("no console URL configured, set console_url or CONSOLE_CONSOLE_URL")
)

// Mirror errors.
var (
	ErrMirrorUnavailable = errors.New("status mirror unavailable")
)
