package device

import (
	"fmt"
	"sync"
)

// Logger is the minimal logging surface the registry needs. The
// infrastructure logging package satisfies it.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger discards all log output. Used when no logger is provided.
type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry holds the live devices of a site, keyed by ID. Listing returns
// devices in registration order.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]Device
	order   []string
	logger  Logger
}

// NewRegistry creates an empty registry. logger may be nil.
func NewRegistry(logger Logger) *Registry {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Registry{
		devices: make(map[string]Device),
		logger:  logger,
	}
}

// Add registers a device. Fails if the ID is already taken.
func (r *Registry) Add(d Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := d.ID()
	if _, exists := r.devices[id]; exists {
		return fmt.Errorf("%w: %s", ErrDeviceExists, id)
	}
	r.devices[id] = d
	r.order = append(r.order, id)
	r.logger.Info("device registered", "device_id", id, "kind", d.Kind(), "name", d.Name())
	return nil
}

// Get returns the device with the given ID.
func (r *Registry) Get(id string) (Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	return d, nil
}

// Remove unregisters a device by ID.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[id]; !ok {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	delete(r.devices, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Info("device removed", "device_id", id)
	return nil
}

// List returns all devices in registration order.
func (r *Registry) List() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Device, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.devices[id])
	}
	return out
}

// ListByKind returns devices of the given kind, in registration order.
func (r *Registry) ListByKind(kind Kind) []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Device
	for _, id := range r.order {
		if d := r.devices[id]; d.Kind() == kind {
			out = append(out, d)
		}
	}
	return out
}

// ListByCapability returns devices supporting the given capability, in
// registration order.
func (r *Registry) ListByCapability(c Capability) []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Device
	for _, id := range r.order {
		if d := r.devices[id]; d.Supports(c) {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the number of registered devices.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// ApplyState applies changes to the device with the given ID.
func (r *Registry) ApplyState(id string, changes State) error {
	d, err := r.Get(id)
	if err != nil {
		return err
	}
	if err := d.Apply(changes); err != nil {
		r.logger.Warn("state change rejected", "device_id", id, "error", err)
		return err
	}
	return nil
}
