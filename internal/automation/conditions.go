package automation

import (
	"github.com/rowanveitch/ember-core/internal/device"
	"github.com/rowanveitch/ember-core/internal/event"
)

// OnType matches events of the given type.
func OnType(t event.Type) Condition {
	return func(e event.Event) bool {
		return e.Type == t
	}
}

// FromSource matches events raised by the given source.
func FromSource(source string) Condition {
	return func(e event.Event) bool {
		return e.Source == source
	}
}

// PayloadAbove matches events whose numeric payload key exceeds threshold.
// Events without the key (or with a non-numeric value) never match.
func PayloadAbove(key string, threshold float64) Condition {
	return func(e event.Event) bool {
		v, ok := e.Payload.Float(key)
		return ok && v > threshold
	}
}

// PayloadBelow matches events whose numeric payload key is under threshold.
func PayloadBelow(key string, threshold float64) Condition {
	return func(e event.Event) bool {
		v, ok := e.Payload.Float(key)
		return ok && v < threshold
	}
}

// PayloadEquals matches events whose string payload key equals value.
func PayloadEquals(key, value string) Condition {
	return func(e event.Event) bool {
		v, ok := e.Payload.String(key)
		return ok && v == value
	}
}

// And matches only when every condition matches.
func And(conditions ...Condition) Condition {
	return func(e event.Event) bool {
		for _, c := range conditions {
			if !c(e) {
				return false
			}
		}
		return true
	}
}

// Or matches when any condition matches.
func Or(conditions ...Condition) Condition {
	return func(e event.Event) bool {
		for _, c := range conditions {
			if c(e) {
				return true
			}
		}
		return false
	}
}

// Not inverts a condition.
func Not(c Condition) Condition {
	return func(e event.Event) bool {
		return !c(e)
	}
}

// ApplyState returns an action that applies changes to a device in the
// registry.
func ApplyState(registry *device.Registry, deviceID string, changes device.State) Action {
	return func(event.Event) error {
		return registry.ApplyState(deviceID, changes)
	}
}

// ApplyStateByKind returns an action that applies changes to every
// registered device of the given kind.
func ApplyStateByKind(registry *device.Registry, kind device.Kind, changes device.State) Action {
	return func(event.Event) error {
		for _, d := range registry.ListByKind(kind) {
			if err := d.Apply(changes); err != nil {
				return err
			}
		}
		return nil
	}
}
