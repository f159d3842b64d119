package device

import "fmt"

// Factory creates devices of the kinds it supports. Each product family
// (lighting, climate, security, sensors) has its own factory so callers
// never construct concrete device types directly.
type Factory interface {
	// Create builds a device of the given kind. cfg carries optional
	// construction parameters; unknown kinds return ErrUnknownDeviceKind.
	Create(kind Kind, name string, cfg Config) (Device, error)

	// Kinds lists the device kinds this factory can create.
	Kinds() []Kind
}

// LightingFactory creates lights.
type LightingFactory struct{}

func (LightingFactory) Kinds() []Kind { return []Kind{KindLight} }

// Create builds a light. Config keys: "dimmable" (bool, default true),
// "color_adjustable" (bool, default false), "id" (string, generated when
// empty).
func (LightingFactory) Create(kind Kind, name string, cfg Config) (Device, error) {
	if kind != KindLight {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeviceKind, kind)
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	dimmable := cfg.Bool("dimmable", true)
	colorAdjustable := cfg.Bool("color_adjustable", false)
	return NewLight(cfg.String("id", ""), name, dimmable, colorAdjustable), nil
}

// ClimateFactory creates thermostats.
type ClimateFactory struct{}

func (ClimateFactory) Kinds() []Kind { return []Kind{KindThermostat} }

// Create builds a thermostat. Config keys: "min_temp" (default 10.0),
// "max_temp" (default 32.0), "id".
func (ClimateFactory) Create(kind Kind, name string, cfg Config) (Device, error) {
	if kind != KindThermostat {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeviceKind, kind)
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	minTemp := cfg.Float("min_temp", 10.0)
	maxTemp := cfg.Float("max_temp", 32.0)
	if minTemp >= maxTemp {
		return nil, fmt.Errorf("%w: min_temp %.1f must be below max_temp %.1f",
			ErrInvalidConfig, minTemp, maxTemp)
	}
	return NewThermostat(cfg.String("id", ""), name, minTemp, maxTemp), nil
}

// SecurityFactory creates locks and cameras.
type SecurityFactory struct{}

func (SecurityFactory) Kinds() []Kind { return []Kind{KindLock, KindCamera} }

// Create builds a lock or a camera. Camera config keys: "motion_detection"
// (bool, default true), "audio" (bool, default false).
func (SecurityFactory) Create(kind Kind, name string, cfg Config) (Device, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	switch kind {
	case KindLock:
		return NewLock(cfg.String("id", ""), name), nil
	case KindCamera:
		motion := cfg.Bool("motion_detection", true)
		audio := cfg.Bool("audio", false)
		return NewCamera(cfg.String("id", ""), name, motion, audio), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeviceKind, kind)
	}
}

// SensorFactory creates motion sensors.
type SensorFactory struct{}

func (SensorFactory) Kinds() []Kind { return []Kind{KindMotionSensor} }

func (SensorFactory) Create(kind Kind, name string, cfg Config) (Device, error) {
	if kind != KindMotionSensor {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeviceKind, kind)
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return NewMotionSensor(cfg.String("id", ""), name), nil
}

// Catalog dispatches creation requests to the factory registered for each
// kind. It is itself a Factory, so callers that only need one entry point
// can hold a Catalog where a single family factory would otherwise go.
type Catalog struct {
	factories map[Kind]Factory
}

// NewCatalog builds a catalog over the given factories. Later factories
// win when two claim the same kind.
func NewCatalog(factories ...Factory) *Catalog {
	c := &Catalog{factories: make(map[Kind]Factory)}
	for _, f := range factories {
		for _, kind := range f.Kinds() {
			c.factories[kind] = f
		}
	}
	return c
}

// DefaultCatalog returns a catalog covering every built-in device kind.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		LightingFactory{},
		ClimateFactory{},
		SecurityFactory{},
		SensorFactory{},
	)
}

// Create dispatches to the factory registered for kind.
func (c *Catalog) Create(kind Kind, name string, cfg Config) (Device, error) {
	f, ok := c.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeviceKind, kind)
	}
	return f.Create(kind, name, cfg)
}

// Kinds lists every kind the catalog can create, in enum order.
func (c *Catalog) Kinds() []Kind {
	var kinds []Kind
	for _, k := range AllKinds() {
		if _, ok := c.factories[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
