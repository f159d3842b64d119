package event

import "fmt"

// Notification is one rendered message held by the Notifier.
type Notification struct {
	Event   Event
	Message string
}

// Notifier renders events into human-readable notifications and keeps a
// bounded history of them, newest last.
type Notifier struct {
	name     string
	capacity int
	history  []Notification
}

// NewNotifier creates a notifier retaining up to capacity messages.
func NewNotifier(name string, capacity int) *Notifier {
	return &Notifier{name: name, capacity: capacity}
}

// Name implements Subscriber.
func (n *Notifier) Name() string { return n.name }

// Handle renders the event and appends it to the history, evicting the
// oldest message when full.
func (n *Notifier) Handle(e Event) error {
	n.history = append(n.history, Notification{
		Event:   e,
		Message: renderMessage(e),
	})
	if n.capacity > 0 && len(n.history) > n.capacity {
		n.history = n.history[len(n.history)-n.capacity:]
	}
	return nil
}

// Notifications returns the retained messages, oldest first.
func (n *Notifier) Notifications() []Notification {
	out := make([]Notification, len(n.history))
	copy(out, n.history)
	return out
}

// Clear drops all retained messages.
func (n *Notifier) Clear() { n.history = nil }

// renderMessage produces the per-type notification text.
func renderMessage(e Event) string {
	switch e.Type {
	case TypeDeviceStateChanged:
		id, _ := e.Payload.String("device_id")
		return fmt.Sprintf("Device %s changed state", id)
	case TypeMotionDetected:
		id, _ := e.Payload.String("device_id")
		return fmt.Sprintf("Motion detected by %s", id)
	case TypeDoorOpened:
		id, _ := e.Payload.String("device_id")
		return fmt.Sprintf("Door opened: %s", id)
	case TypeDoorClosed:
		id, _ := e.Payload.String("device_id")
		return fmt.Sprintf("Door closed: %s", id)
	case TypeTemperatureThreshold:
		temp, _ := e.Payload.Float("temperature")
		direction, _ := e.Payload.String("direction")
		return fmt.Sprintf("Temperature %.1f°C is %s the configured range", temp, direction)
	case TypeHumidityThreshold:
		humidity, _ := e.Payload.Float("humidity")
		return fmt.Sprintf("Humidity %.0f%% exceeds the configured maximum", humidity)
	case TypeSystemAlert:
		msg, _ := e.Payload.String("message")
		severity, _ := e.Payload.String("severity")
		return fmt.Sprintf("ALERT [%s]: %s", severity, msg)
	case TypeUserPresence:
		return fmt.Sprintf("User arrived (%s)", e.Source)
	case TypeUserAbsence:
		return fmt.Sprintf("User left (%s)", e.Source)
	case TypeScheduled:
		return fmt.Sprintf("Scheduled action ran (%s)", e.Source)
	default:
		return fmt.Sprintf("%s from %s", e.Type, e.Source)
	}
}
