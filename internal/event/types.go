package event

// Type classifies events on the bus.
type Type string

// Event type constants.
const (
	TypeDeviceStateChanged   Type = "device_state_changed"
	TypeMotionDetected       Type = "motion_detected"
	TypeDoorOpened           Type = "door_opened"
	TypeDoorClosed           Type = "door_closed"
	TypeTemperatureThreshold Type = "temperature_threshold"
	TypeHumidityThreshold    Type = "humidity_threshold"
	TypeLightLevelChanged    Type = "light_level_changed"
	TypeSystemAlert          Type = "system_alert"
	TypeUserPresence         Type = "user_presence"
	TypeUserAbsence          Type = "user_absence"
	TypeScheduled            Type = "scheduled"
)

// AllTypes returns all valid event types.
func AllTypes() []Type {
	return []Type{
		TypeDeviceStateChanged, TypeMotionDetected,
		TypeDoorOpened, TypeDoorClosed,
		TypeTemperatureThreshold, TypeHumidityThreshold,
		TypeLightLevelChanged, TypeSystemAlert,
		TypeUserPresence, TypeUserAbsence, TypeScheduled,
	}
}

// IsValid reports whether t is a known event type.
func (t Type) IsValid() bool {
	for _, known := range AllTypes() {
		if t == known {
			return true
		}
	}
	return false
}
