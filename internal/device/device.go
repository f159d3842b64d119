package device

// Device is the capability surface every simulated device exposes.
//
// It serves double duty: concrete devices (Light, Thermostat, ...) implement
// it directly, and behaviour wrappers wrap one Device while satisfying the same
// interface, so wrapped and bare devices are interchangeable everywhere.
type Device interface {
	// ID returns the unique identifier for this device.
	ID() string

	// Name returns the friendly name of this device.
	Name() string

	// Kind returns the device kind.
	Kind() Kind

	// Capabilities returns the capabilities this device supports.
	Capabilities() []Capability

	// Supports reports whether the device has the given capability.
	Supports(Capability) bool

	// State returns a snapshot of the current device state.
	// The snapshot is a deep copy; callers can safely modify it.
	State() State

	// Apply merges the given changes into the device state.
	// Keys the device does not know are ignored; devices may reject
	// changes that violate their constraints (wrapped ErrInvalidState).
	Apply(changes State) error
}

// PowerOn turns a device on.
func PowerOn(d Device) error {
	return d.Apply(State{"power": true})
}

// PowerOff turns a device off.
func PowerOff(d Device) error {
	return d.Apply(State{"power": false})
}

// IsOn reports whether the device is currently powered on.
func IsOn(d Device) bool {
	on, _ := d.State()["power"].(bool)
	return on
}
