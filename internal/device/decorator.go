package device

// Wrapper forwards every Device operation to the device it wraps. Behaviour
// extensions embed Wrapper and override only the methods they change, so a
// wrapped device satisfies Device and can be wrapped again in any order.
type Wrapper struct {
	inner Device
}

// Wrap returns a Wrapper around d.
func Wrap(d Device) Wrapper {
	return Wrapper{inner: d}
}

func (w Wrapper) ID() string                 { return w.inner.ID() }
func (w Wrapper) Name() string               { return w.inner.Name() }
func (w Wrapper) Kind() Kind                 { return w.inner.Kind() }
func (w Wrapper) Capabilities() []Capability { return w.inner.Capabilities() }
func (w Wrapper) Supports(c Capability) bool { return w.inner.Supports(c) }
func (w Wrapper) State() State               { return w.inner.State() }
func (w Wrapper) Apply(changes State) error  { return w.inner.Apply(changes) }

// Unwrap returns the wrapped device, one layer down.
func (w Wrapper) Unwrap() Device { return w.inner }

// Unwrap peels every wrapping layer off d and returns the underlying
// device. Devices that are not wrapped are returned as-is.
func Unwrap(d Device) Device {
	for {
		u, ok := d.(interface{ Unwrap() Device })
		if !ok {
			return d
		}
		d = u.Unwrap()
	}
}
