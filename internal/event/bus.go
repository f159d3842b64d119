package event

import "fmt"

// Subscriber receives events from the Bus. Handle runs on the publisher's
// goroutine; a returned error is logged and does not stop delivery to
// later subscribers.
type Subscriber interface {
	// Name identifies the subscriber in logs.
	Name() string

	// Handle processes one event.
	Handle(e Event) error
}

// Logger is the minimal logging surface the bus needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// subscription pairs a subscriber with its optional type filter.
type subscription struct {
	subscriber Subscriber
	types      map[Type]struct{} // nil means all types
}

func (s subscription) wants(t Type) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// Bus delivers events to subscribers synchronously, in subscription order.
// Publish returns only after every interested subscriber has run, so a
// publisher can rely on all effects of its event having happened.
//
// The bus is deliberately not safe for concurrent use: the pipeline is
// single-goroutine and delivery order must be deterministic.
type Bus struct {
	subscriptions []subscription
	logger        Logger
}

// NewBus creates an empty bus. logger may be nil.
func NewBus(logger Logger) *Bus {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Bus{logger: logger}
}

// Subscribe attaches sub to the bus. When types is empty the subscriber
// receives every event; otherwise only the listed types. Subscribing the
// same subscriber twice delivers events twice.
func (b *Bus) Subscribe(sub Subscriber, types ...Type) {
	var filter map[Type]struct{}
	if len(types) > 0 {
		filter = make(map[Type]struct{}, len(types))
		for _, t := range types {
			filter[t] = struct{}{}
		}
	}
	b.subscriptions = append(b.subscriptions, subscription{
		subscriber: sub,
		types:      filter,
	})
}

// Unsubscribe removes every subscription held by sub. It reports whether
// anything was removed; detached subscribers simply receive nothing more.
//
// The kept subscriptions go into a fresh slice rather than compacting in
// place: a subscriber may detach itself from inside Handle, and an
// in-flight Publish must keep walking the list it started with so every
// other subscriber is still delivered exactly once.
func (b *Bus) Unsubscribe(sub Subscriber) bool {
	removed := false
	kept := make([]subscription, 0, len(b.subscriptions))
	for _, s := range b.subscriptions {
		if s.subscriber == sub {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	b.subscriptions = kept
	return removed
}

// Publish delivers e to every interested subscriber in subscription order.
// A subscriber that fails or panics is logged and skipped; the remaining
// subscribers are still notified. The returned count is the number of
// subscribers that handled the event without error.
func (b *Bus) Publish(e Event) int {
	delivered := 0
	for _, s := range b.subscriptions {
		if !s.wants(e.Type) {
			continue
		}
		if err := b.deliver(s.subscriber, e); err != nil {
			b.logger.Error("subscriber failed",
				"subscriber", s.subscriber.Name(),
				"event_type", e.Type,
				"source", e.Source,
				"error", err)
			continue
		}
		delivered++
	}
	return delivered
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	return len(b.subscriptions)
}

// deliver runs one subscriber, converting a panic into an error so one
// broken handler cannot take down the pipeline.
func (b *Bus) deliver(sub Subscriber, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event: subscriber panic: %v", r)
		}
	}()
	return sub.Handle(e)
}
