package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrNotAuthorized) {
//	    // handle rejected command
//	}
var (
	// ErrUnknownDeviceKind is returned by the catalog when a kind has no factory.
	ErrUnknownDeviceKind = errors.New("device: unknown kind")

	// ErrNotAuthorized is returned by the security wrapper when a
	// restricted command is issued while the device is armed.
	ErrNotAuthorized = errors.New("device: not authorised")

	// ErrInvalidState is returned when a state change violates a device constraint.
	ErrInvalidState = errors.New("device: invalid state")

	// ErrInvalidName is returned when a device name is empty or too long.
	ErrInvalidName = errors.New("device: invalid name")

	// ErrInvalidConfig is returned when construction parameters are malformed.
	ErrInvalidConfig = errors.New("device: invalid config")

	// ErrScheduleInPast is returned when scheduling a state change for a
	// time that is not in the future.
	ErrScheduleInPast = errors.New("device: schedule time not in the future")

	// ErrDeviceNotFound is returned when a device ID does not exist in the registry.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDeviceExists is returned when adding a device with an ID already registered.
	ErrDeviceExists = errors.New("device: already exists")
)
