package config

import "errors"

// Sentinel errors for configuration failure modes.
// Callers should use errors.Is() to check for these.
var (
	// ErrInvalidConfig indicates a configuration value is out of range or
	// not a member of its allowed set.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnreadableFile indicates the optional config file exists but
	// could not be read or parsed.
	ErrUnreadableFile = errors.New("config: unreadable config file")
)
