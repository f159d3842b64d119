package device

// Kind represents the kind of simulated device.
type Kind string

// Kind constants.
const (
	KindLight        Kind = "light"
	KindThermostat   Kind = "thermostat"
	KindLock         Kind = "lock"
	KindCamera       Kind = "camera"
	KindMotionSensor Kind = "motion_sensor"
)

// AllKinds returns all valid device kinds.
func AllKinds() []Kind {
	return []Kind{
		KindLight, KindThermostat, KindLock, KindCamera, KindMotionSensor,
	}
}

// Capability represents what a device can do.
type Capability string

// Capability constants.
const (
	CapPower       Capability = "power"       // Can be turned on/off
	CapBrightness  Capability = "brightness"  // Has adjustable brightness
	CapColor       Capability = "color"       // Has adjustable colour
	CapTemperature Capability = "temperature" // Can sense or set temperature
	CapMotion      Capability = "motion"      // Can detect motion
	CapAudio       Capability = "audio"       // Can play or record audio
	CapVideo       Capability = "video"       // Can capture video
	CapLockUnlock  Capability = "lock_unlock" // Can lock/unlock
)

// AllCapabilities returns all valid capability values.
func AllCapabilities() []Capability {
	return []Capability{
		CapPower, CapBrightness, CapColor, CapTemperature,
		CapMotion, CapAudio, CapVideo, CapLockUnlock,
	}
}

// State holds device state as a JSON-style map.
//
// Examples:
//   - Light: {"power": true, "brightness": 75}
//   - Thermostat: {"power": true, "target_temperature": 21.5, "mode": "heat"}
type State map[string]any

// DeepCopy creates an independent copy of the state.
// Nested maps and slices are recursively copied so modifications to the
// copy do not affect the original.
func (s State) DeepCopy() State {
	return State(deepCopyMap(s))
}

// Config holds factory construction parameters as a JSON-style map.
type Config map[string]any

// Bool reads a boolean config key, returning def when absent or mistyped.
func (c Config) Bool(key string, def bool) bool {
	if v, ok := c[key].(bool); ok {
		return v
	}
	return def
}

// Float reads a numeric config key, returning def when absent or mistyped.
// Integers are accepted and widened, matching YAML/JSON decoding behaviour.
func (c Config) Float(key string, def float64) float64 {
	switch v := c[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// String reads a string config key, returning def when absent or mistyped.
func (c Config) String(key string, def string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return def
}

// deepCopyMap creates a deep copy of a map[string]any.
func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cpy := make(map[string]any, len(m))
	for k, v := range m {
		cpy[k] = deepCopyValue(v)
	}
	return cpy
}

// deepCopyValue recursively copies a value, handling nested maps and slices.
func deepCopyValue(v any) any {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		cpy := make([]any, len(val))
		for i, elem := range val {
			cpy[i] = deepCopyValue(elem)
		}
		return cpy
	default:
		return v // Primitives are immutable
	}
}
