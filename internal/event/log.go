package event

// Log is a bounded in-memory record of every event it sees, in arrival
// order. It backs the CLI's event log view.
type Log struct {
	capacity int
	events   []Event
}

// NewLog creates a log retaining up to capacity events.
func NewLog(capacity int) *Log {
	return &Log{capacity: capacity}
}

// Name implements Subscriber.
func (l *Log) Name() string { return "event-log" }

// Handle appends the event, evicting the oldest when full.
func (l *Log) Handle(e Event) error {
	l.events = append(l.events, e)
	if l.capacity > 0 && len(l.events) > l.capacity {
		l.events = l.events[len(l.events)-l.capacity:]
	}
	return nil
}

// Events returns the retained events, oldest first.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// ByType returns retained events of the given type, oldest first.
func (l *Log) ByType(t Type) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of retained events.
func (l *Log) Len() int { return len(l.events) }

// Clear drops all retained events.
func (l *Log) Clear() { l.events = nil }
