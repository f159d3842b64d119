package device

import (
	"fmt"

	"github.com/google/uuid"
)

// maxNameLength bounds device names.
const maxNameLength = 100

// ValidateName checks that a device name is non-empty and within bounds.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

// GenerateID creates a new UUID for a device.
func GenerateID() string {
	return uuid.New().String()
}
