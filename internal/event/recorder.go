package event

import "context"

// Recorder persists every event it sees through a Repository. It sits on
// the bus like any other subscriber; persistence failures surface through
// the bus's error handling and never block other subscribers.
type Recorder struct {
	repo Repository
}

// NewRecorder creates a recorder writing to repo.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Name implements Subscriber.
func (r *Recorder) Name() string { return "event-recorder" }

// Handle persists the event.
func (r *Recorder) Handle(e Event) error {
	return r.repo.Create(context.Background(), &Record{
		Type:    e.Type,
		Source:  e.Source,
		Time:    e.Time,
		Payload: e.Payload,
	})
}
