package event

import "github.com/rowanveitch/ember-core/internal/device"

// SecuritySystem raises security events onto the bus on behalf of
// perimeter devices: motion sensors, door contacts, and alarms.
type SecuritySystem struct {
	bus  *Bus
	name string
}

// NewSecuritySystem creates a security publisher. name is the event source
// recorded on everything it raises.
func NewSecuritySystem(bus *Bus, name string) *SecuritySystem {
	return &SecuritySystem{bus: bus, name: name}
}

// ReportMotion publishes a motion_detected event for the given device.
func (s *SecuritySystem) ReportMotion(deviceID string) int {
	return s.bus.Publish(New(TypeMotionDetected, s.name, Payload{
		"device_id": deviceID,
	}))
}

// ReportDoorOpened publishes a door_opened event for the given device.
func (s *SecuritySystem) ReportDoorOpened(deviceID string) int {
	return s.bus.Publish(New(TypeDoorOpened, s.name, Payload{
		"device_id": deviceID,
	}))
}

// ReportDoorClosed publishes a door_closed event for the given device.
func (s *SecuritySystem) ReportDoorClosed(deviceID string) int {
	return s.bus.Publish(New(TypeDoorClosed, s.name, Payload{
		"device_id": deviceID,
	}))
}

// RaiseAlert publishes a system_alert event with a human-readable message
// and severity ("info", "warning", "critical").
func (s *SecuritySystem) RaiseAlert(message, severity string) int {
	return s.bus.Publish(New(TypeSystemAlert, s.name, Payload{
		"message":  message,
		"severity": severity,
	}))
}

// EnvironmentMonitor raises climate events onto the bus. Readings are only
// published as threshold events when they cross the configured bounds.
type EnvironmentMonitor struct {
	bus         *Bus
	name        string
	tempLow     float64
	tempHigh    float64
	humidityMax float64
}

// NewEnvironmentMonitor creates an environment publisher with temperature
// bounds [tempLow, tempHigh] and a maximum humidity percentage.
func NewEnvironmentMonitor(bus *Bus, name string, tempLow, tempHigh, humidityMax float64) *EnvironmentMonitor {
	return &EnvironmentMonitor{
		bus:         bus,
		name:        name,
		tempLow:     tempLow,
		tempHigh:    tempHigh,
		humidityMax: humidityMax,
	}
}

// ReportTemperature publishes a temperature_threshold event when the
// reading falls outside the configured bounds. In-range readings are
// silent and the method reports false.
func (m *EnvironmentMonitor) ReportTemperature(deviceID string, celsius float64) bool {
	if celsius >= m.tempLow && celsius <= m.tempHigh {
		return false
	}
	direction := "above"
	if celsius < m.tempLow {
		direction = "below"
	}
	m.bus.Publish(New(TypeTemperatureThreshold, m.name, Payload{
		"device_id":   deviceID,
		"temperature": celsius,
		"direction":   direction,
	}))
	return true
}

// ReportHumidity publishes a humidity_threshold event when the reading
// exceeds the configured maximum.
func (m *EnvironmentMonitor) ReportHumidity(deviceID string, percent float64) bool {
	if percent <= m.humidityMax {
		return false
	}
	m.bus.Publish(New(TypeHumidityThreshold, m.name, Payload{
		"device_id": deviceID,
		"humidity":  percent,
	}))
	return true
}

// StatePublisher adapts the bus to the device layer's announcement
// interface, publishing device_state_changed events.
type StatePublisher struct {
	bus *Bus
}

// NewStatePublisher creates the adapter.
func NewStatePublisher(bus *Bus) *StatePublisher {
	return &StatePublisher{bus: bus}
}

// PublishStateChange publishes a device_state_changed event sourced from
// the device itself.
func (p *StatePublisher) PublishStateChange(deviceID string, kind device.Kind, before, after device.State) {
	p.bus.Publish(New(TypeDeviceStateChanged, deviceID, Payload{
		"device_id": deviceID,
		"kind":      string(kind),
		"before":    map[string]any(before),
		"after":     map[string]any(after),
	}))
}
