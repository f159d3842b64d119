package device

import "fmt"

// base provides the common implementation shared by all concrete devices.
// Devices are simulated: state is attribute mutation in memory, and all
// access is single-goroutine per the pipeline's synchronous model.
type base struct {
	id    string
	name  string
	kind  Kind
	caps  []Capability
	state State
}

func newBase(id, name string, kind Kind, caps []Capability, state State) base {
	if id == "" {
		id = GenerateID()
	}
	if state == nil {
		state = State{}
	}
	// Every device starts powered off
	if _, ok := state["power"]; !ok {
		state["power"] = false
	}
	return base{
		id:    id,
		name:  name,
		kind:  kind,
		caps:  caps,
		state: state,
	}
}

func (b *base) ID() string   { return b.id }
func (b *base) Name() string { return b.name }
func (b *base) Kind() Kind   { return b.kind }

func (b *base) Capabilities() []Capability {
	caps := make([]Capability, len(b.caps))
	copy(caps, b.caps)
	return caps
}

func (b *base) Supports(c Capability) bool {
	for _, have := range b.caps {
		if have == c {
			return true
		}
	}
	return false
}

func (b *base) State() State {
	return b.state.DeepCopy()
}

// Apply merges changes into the device state. Only keys the device already
// tracks are updated; unknown keys are ignored so a POWER command can be
// broadcast to heterogeneous devices without special-casing.
func (b *base) Apply(changes State) error {
	for key, value := range changes {
		if _, known := b.state[key]; known {
			b.state[key] = deepCopyValue(value)
		}
	}
	return nil
}

// Light is a simulated smart light.
type Light struct {
	base
	dimmable        bool
	colorAdjustable bool
}

// NewLight creates a light. Dimmable lights track brightness (0-100,
// default 100); colour-adjustable lights additionally track colour as a
// hex string and colour temperature in Kelvin.
func NewLight(id, name string, dimmable, colorAdjustable bool) *Light {
	caps := []Capability{CapPower}
	state := State{}

	if dimmable {
		caps = append(caps, CapBrightness)
		state["brightness"] = 100
	}
	if colorAdjustable {
		caps = append(caps, CapColor)
		state["color"] = "#FFFFFF"
		state["color_temperature"] = 2700
	}

	return &Light{
		base:            newBase(id, name, KindLight, caps, state),
		dimmable:        dimmable,
		colorAdjustable: colorAdjustable,
	}
}

// Apply rejects out-of-range brightness values.
func (l *Light) Apply(changes State) error {
	if raw, ok := changes["brightness"]; ok && l.dimmable {
		level, isNum := toFloat(raw)
		if !isNum || level < 0 || level > 100 {
			return fmt.Errorf("%w: brightness must be 0-100, got %v", ErrInvalidState, raw)
		}
	}
	return l.base.Apply(changes)
}

// Thermostat is a simulated climate controller with a clamped setpoint.
type Thermostat struct {
	base
	minTemp float64
	maxTemp float64
}

// NewThermostat creates a thermostat. Target temperature changes outside
// [minTemp, maxTemp] are rejected.
func NewThermostat(id, name string, minTemp, maxTemp float64) *Thermostat {
	state := State{
		"current_temperature": 21.0,
		"target_temperature":  21.0,
		"mode":                "off", // off, heat, cool, auto
		"humidity":            50.0,
	}
	return &Thermostat{
		base:    newBase(id, name, KindThermostat, []Capability{CapPower, CapTemperature}, state),
		minTemp: minTemp,
		maxTemp: maxTemp,
	}
}

// Range returns the supported setpoint range.
func (t *Thermostat) Range() (min, max float64) {
	return t.minTemp, t.maxTemp
}

// Apply enforces the setpoint range before delegating.
func (t *Thermostat) Apply(changes State) error {
	if raw, ok := changes["target_temperature"]; ok {
		temp, isNum := toFloat(raw)
		if !isNum {
			return fmt.Errorf("%w: target_temperature must be numeric, got %v", ErrInvalidState, raw)
		}
		if temp < t.minTemp || temp > t.maxTemp {
			return fmt.Errorf("%w: target_temperature %.1f outside range %.1f-%.1f",
				ErrInvalidState, temp, t.minTemp, t.maxTemp)
		}
	}
	return t.base.Apply(changes)
}

// Lock is a simulated door lock.
type Lock struct {
	base
}

// NewLock creates a lock, locked by default.
func NewLock(id, name string) *Lock {
	state := State{
		"locked":        true,
		"battery_level": 100,
		"last_user":     nil,
	}
	return &Lock{
		base: newBase(id, name, KindLock, []Capability{CapLockUnlock}, state),
	}
}

// Camera is a simulated camera.
type Camera struct {
	base
}

// NewCamera creates a camera. Motion detection and audio are optional
// hardware features reflected in the capability set.
func NewCamera(id, name string, motionDetection, audio bool) *Camera {
	caps := []Capability{CapPower, CapVideo}
	if motionDetection {
		caps = append(caps, CapMotion)
	}
	if audio {
		caps = append(caps, CapAudio)
	}
	state := State{
		"recording":       false,
		"motion_detected": false,
		"resolution":      "1080p",
	}
	return &Camera{
		base: newBase(id, name, KindCamera, caps, state),
	}
}

// MotionSensor is a simulated motion sensor.
type MotionSensor struct {
	base
}

// NewMotionSensor creates a motion sensor with default sensitivity 5 (1-10).
func NewMotionSensor(id, name string) *MotionSensor {
	state := State{
		"motion_detected": false,
		"sensitivity":     5,
		"battery_level":   100,
	}
	return &MotionSensor{
		base: newBase(id, name, KindMotionSensor, []Capability{CapPower, CapMotion}, state),
	}
}

// toFloat widens any numeric value to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
