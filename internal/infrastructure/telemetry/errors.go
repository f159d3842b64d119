package telemetry

import "errors"

// Domain-specific errors for telemetry operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrDisabled is returned when connecting while telemetry is disabled in config.
	ErrDisabled = errors.New("telemetry: disabled in configuration")

	// ErrNotConnected is returned when attempting operations on a closed client.
	ErrNotConnected = errors.New("telemetry: client not connected")

	// ErrConnectionFailed is returned when the initial connection attempt fails.
	ErrConnectionFailed = errors.New("telemetry: connection failed")
)
