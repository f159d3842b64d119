package device

import "reflect"

// Publisher receives state-change announcements from a Notifier. The event
// pipeline provides the concrete implementation; defining the interface
// here keeps this package free of a dependency on it.
type Publisher interface {
	PublishStateChange(deviceID string, kind Kind, before, after State)
}

// Notifier announces state changes on a device to a Publisher. An optional
// criteria predicate filters which changes are announced.
type Notifier struct {
	Wrapper
	publisher Publisher
	criteria  func(before, after State) bool
}

// NewNotifier wraps d, announcing changes to pub. criteria may be nil, in
// which case every actual change is announced.
func NewNotifier(d Device, pub Publisher, criteria func(before, after State) bool) *Notifier {
	return &Notifier{
		Wrapper:   Wrap(d),
		publisher: pub,
		criteria:  criteria,
	}
}

// Apply delegates the change and announces it when state moved and the
// criteria (if any) accepts the transition.
func (n *Notifier) Apply(changes State) error {
	before := n.Wrapper.State()
	if err := n.Wrapper.Apply(changes); err != nil {
		return err
	}
	after := n.Wrapper.State()
	if reflect.DeepEqual(before, after) {
		return nil
	}
	if n.criteria != nil && !n.criteria(before, after) {
		return nil
	}
	if n.publisher != nil {
		n.publisher.PublishStateChange(n.ID(), n.Kind(), before, after)
	}
	return nil
}
