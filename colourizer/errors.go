package colourizer

import "errors"

// Errors returned by the engine. All validation failures surface
// synchronously from the call that triggered them and never leave a
// partial parameter or state update behind.
var (
	// ErrInvalidParameter marks an out-of-range or non-finite parameter
	// or configuration value.
	ErrInvalidParameter = errors.New("colourizer: invalid parameter")

	// ErrNotConfigured is returned by Process before a valid Configure
	// call. It is fatal to the call, not to the engine.
	ErrNotConfigured = errors.New("colourizer: engine not configured")

	// ErrUnsupportedChannelCount is returned when a topology cannot
	// service the requested channel count.
	ErrUnsupportedChannelCount = errors.New("colourizer: unsupported channel count")

	// ErrUnknownParameter is returned for a parameter name the surface
	// does not declare.
	ErrUnknownParameter = errors.New("colourizer: unknown parameter")
)
