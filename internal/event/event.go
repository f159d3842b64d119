package event

import (
	"fmt"
	"time"
)

// Payload carries event-specific data as a JSON-style map.
type Payload map[string]any

// Event is a single occurrence in the system: who raised it, what kind of
// occurrence it was, when, and any type-specific data.
type Event struct {
	Type    Type
	Source  string
	Time    time.Time
	Payload Payload
}

// New creates an event stamped with the current time. The payload is
// copied so later mutation by the caller cannot alter a published event.
func New(t Type, source string, payload Payload) Event {
	return Event{
		Type:    t,
		Source:  source,
		Time:    time.Now().UTC(),
		Payload: copyPayload(payload),
	}
}

// String renders the event for logs and the CLI.
func (e Event) String() string {
	return fmt.Sprintf("[%s] %s from %s", e.Time.Format(time.RFC3339), e.Type, e.Source)
}

// Float reads a numeric payload key, widening integers.
func (p Payload) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// String reads a string payload key.
func (p Payload) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

func copyPayload(p Payload) Payload {
	if p == nil {
		return nil
	}
	cpy := make(Payload, len(p))
	for k, v := range p {
		cpy[k] = copyValue(v)
	}
	return cpy
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		cpy := make(map[string]any, len(val))
		for k, nested := range val {
			cpy[k] = copyValue(nested)
		}
		return cpy
	case []any:
		cpy := make([]any, len(val))
		for i, elem := range val {
			cpy[i] = copyValue(elem)
		}
		return cpy
	default:
		return v
	}
}
